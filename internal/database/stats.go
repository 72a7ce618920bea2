package database

import (
	"context"

	"yasmin-alsham-backend/internal/models"
)

// StatsService reads the aggregate views maintained by the database.
type StatsService struct {
	backend Backend
}

func NewStatsService(b Backend) *StatsService {
	return &StatsService{backend: b}
}

func (s *StatsService) GetOrderStats(ctx context.Context) (*models.OrderStats, error) {
	return selectOne[models.OrderStats](ctx, s.backend, "order_stats")
}

func (s *StatsService) GetAppointmentStats(ctx context.Context) (*models.AppointmentStats, error) {
	return selectOne[models.AppointmentStats](ctx, s.backend, "appointment_stats")
}

// Services groups one access service per entity over a single backend.
type Services struct {
	Users        *UserService
	Workers      *WorkerService
	Products     *ProductService
	Designs      *DesignService
	Appointments *AppointmentService
	Orders       *OrderService
	Fabrics      *FabricService
	Favorites    *FavoriteService
	Cart         *CartService
	Stats        *StatsService
}

func NewServices(b Backend) *Services {
	return &Services{
		Users:        NewUserService(b),
		Workers:      NewWorkerService(b),
		Products:     NewProductService(b),
		Designs:      NewDesignService(b),
		Appointments: NewAppointmentService(b),
		Orders:       NewOrderService(b),
		Fabrics:      NewFabricService(b),
		Favorites:    NewFavoriteService(b),
		Cart:         NewCartService(b),
		Stats:        NewStatsService(b),
	}
}
