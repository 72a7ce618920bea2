package database

import (
	"context"

	"yasmin-alsham-backend/internal/models"
)

type ProductService struct {
	t table[models.Product]
}

func NewProductService(b Backend) *ProductService {
	return &ProductService{t: table[models.Product]{backend: b, name: "products"}}
}

// GetAll lists products that are currently available, newest first.
func (s *ProductService) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.t.list(ctx, Query{Filters: []Filter{available}, Order: newestFirst})
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return s.t.create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, id string, patch map[string]any) (*models.Product, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, Eq("id", id))
}

type DesignService struct {
	t table[models.Design]
}

func NewDesignService(b Backend) *DesignService {
	return &DesignService{t: table[models.Design]{backend: b, name: "designs"}}
}

func (s *DesignService) GetAll(ctx context.Context) ([]models.Design, error) {
	return s.t.list(ctx, Query{Filters: []Filter{available}, Order: newestFirst})
}

func (s *DesignService) Get(ctx context.Context, id int) (*models.Design, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *DesignService) GetByCategory(ctx context.Context, category string) ([]models.Design, error) {
	return s.t.list(ctx, Query{
		Filters: []Filter{Eq("category", category), available},
		Order:   newestFirst,
	})
}

// Create leaves the integer id to the database sequence.
func (s *DesignService) Create(ctx context.Context, d *models.Design) (*models.Design, error) {
	stamp(nil, &d.CreatedAt, &d.UpdatedAt)
	return s.t.create(ctx, d)
}

func (s *DesignService) Update(ctx context.Context, id int, patch map[string]any) (*models.Design, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

func (s *DesignService) Delete(ctx context.Context, id int) error {
	return s.t.delete(ctx, Eq("id", id))
}

type FabricService struct {
	t table[models.Fabric]
}

func NewFabricService(b Backend) *FabricService {
	return &FabricService{t: table[models.Fabric]{backend: b, name: "fabrics"}}
}

func (s *FabricService) GetAll(ctx context.Context) ([]models.Fabric, error) {
	return s.t.list(ctx, Query{Filters: []Filter{available}, Order: newestFirst})
}

func (s *FabricService) Get(ctx context.Context, id string) (*models.Fabric, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *FabricService) Create(ctx context.Context, f *models.Fabric) (*models.Fabric, error) {
	stamp(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	return s.t.create(ctx, f)
}

func (s *FabricService) Update(ctx context.Context, id string, patch map[string]any) (*models.Fabric, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

func (s *FabricService) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, Eq("id", id))
}
