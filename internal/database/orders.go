package database

import (
	"context"

	"yasmin-alsham-backend/internal/models"
)

type OrderService struct {
	t table[models.Order]
}

func NewOrderService(b Backend) *OrderService {
	return &OrderService{t: table[models.Order]{backend: b, name: "orders"}}
}

func (s *OrderService) GetAll(ctx context.Context) ([]models.Order, error) {
	return s.t.list(ctx, Query{Order: newestFirst})
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *OrderService) GetByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return s.t.list(ctx, Query{Filters: []Filter{Eq("status", status)}, Order: newestFirst})
}

func (s *OrderService) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	stamp(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	return s.t.create(ctx, o)
}

func (s *OrderService) Update(ctx context.Context, id string, patch map[string]any) (*models.Order, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, Eq("id", id))
}
