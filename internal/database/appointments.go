package database

import (
	"context"

	"yasmin-alsham-backend/internal/models"
)

type AppointmentService struct {
	t table[models.Appointment]
}

func NewAppointmentService(b Backend) *AppointmentService {
	return &AppointmentService{t: table[models.Appointment]{backend: b, name: "appointments"}}
}

// GetAll lists every appointment in calendar order.
func (s *AppointmentService) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return s.t.list(ctx, Query{Order: []OrderBy{
		{Column: "appointment_date", Ascending: true},
		{Column: "appointment_time", Ascending: true},
	}})
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	return s.t.get(ctx, Eq("id", id))
}

func (s *AppointmentService) GetByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return s.t.list(ctx, Query{
		Filters: []Filter{Eq("appointment_date", date)},
		Order:   []OrderBy{{Column: "appointment_time", Ascending: true}},
	})
}

func (s *AppointmentService) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return s.t.create(ctx, a)
}

func (s *AppointmentService) Update(ctx context.Context, id string, patch map[string]any) (*models.Appointment, error) {
	return s.t.update(ctx, patch, Eq("id", id))
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, Eq("id", id))
}
