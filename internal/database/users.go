package database

import (
	"context"

	"yasmin-alsham-backend/internal/models"
)

type UserService struct {
	t table[models.User]
}

func NewUserService(b Backend) *UserService {
	return &UserService{t: table[models.User]{backend: b, name: "users"}}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *UserService) Create(ctx context.Context, u *models.User) (*models.User, error) {
	stamp(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return s.t.create(ctx, u)
}

func (s *UserService) Update(ctx context.Context, id string, patch map[string]any) (*models.User, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

type WorkerService struct {
	t table[models.Worker]
}

func NewWorkerService(b Backend) *WorkerService {
	return &WorkerService{t: table[models.Worker]{backend: b, name: "workers"}}
}

func (s *WorkerService) GetAll(ctx context.Context) ([]models.Worker, error) {
	return s.t.list(ctx, Query{Order: newestFirst})
}

func (s *WorkerService) Get(ctx context.Context, id string) (*models.Worker, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *WorkerService) Create(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	stamp(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if w.Role == "" {
		w.Role = models.RoleWorker
	}
	return s.t.create(ctx, w)
}

func (s *WorkerService) Update(ctx context.Context, id string, patch map[string]any) (*models.Worker, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

func (s *WorkerService) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, Eq("id", id))
}
