package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/store"
)

type StatsHandler struct {
	data   *store.DataStore
	views  *database.StatsService
	logger *slog.Logger
}

func NewStatsHandler(data *store.DataStore, views *database.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{data: data, views: views, logger: logger}
}

// StatsResponse pairs the figures computed from memory with the database
// views. Either view is omitted when it could not be read.
type StatsResponse struct {
	Dashboard    store.Stats              `json:"dashboard"`
	Orders       *models.OrderStats       `json:"orders,omitempty"`
	Appointments *models.AppointmentStats `json:"appointments,omitempty"`
}

// Get godoc
// @Summary     Dashboard statistics
// @Tags        stats
// @Produce     json
// @Security    Bearer
// @Success     200 {object} handlers.StatsResponse
// @Router      /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	resp := StatsResponse{Dashboard: h.data.Stats()}

	var g errgroup.Group
	g.Go(func() error {
		s, err := h.views.GetOrderStats(c.Request.Context())
		if err != nil {
			h.logger.Warn("order_stats unavailable", "error", err)
			return nil
		}
		resp.Orders = s
		return nil
	})
	g.Go(func() error {
		s, err := h.views.GetAppointmentStats(c.Request.Context())
		if err != nil {
			h.logger.Warn("appointment_stats unavailable", "error", err)
			return nil
		}
		resp.Appointments = s
		return nil
	})
	_ = g.Wait()

	c.JSON(http.StatusOK, resp)
}
