package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/store"
)

type AppointmentsHandler struct {
	data *store.DataStore
}

func NewAppointmentsHandler(data *store.DataStore) *AppointmentsHandler {
	return &AppointmentsHandler{data: data}
}

// Book godoc
// @Summary     Book an appointment
// @Description Public booking form. New bookings always start as pending.
// @Tags        appointments
// @Accept      json
// @Produce     json
// @Param       request body store.AppointmentDraft true "Booking"
// @Success     201 {object} store.Appointment
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /appointments [post]
func (h *AppointmentsHandler) Book(c *gin.Context) {
	var draft store.AppointmentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid appointment", err)
		return
	}
	draft.Status = ""

	a, err := h.data.AddAppointment(c.Request.Context(), draft)
	if err != nil {
		respondError(c, "failed to book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List returns the in-memory appointments; date=YYYY-MM-DD narrows them to
// one day.
func (h *AppointmentsHandler) List(c *gin.Context) {
	list := h.data.Appointments()
	if date := c.Query("date"); date != "" {
		day := make([]store.Appointment, 0, len(list))
		for _, a := range list {
			if a.AppointmentDate == date {
				day = append(day, a)
			}
		}
		list = day
	}
	c.JSON(http.StatusOK, list)
}

func (h *AppointmentsHandler) Get(c *gin.Context) {
	a, ok := h.data.Appointment(c.Param("id"))
	if !ok {
		notFound(c, "appointment not found")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AppointmentsHandler) Update(c *gin.Context) {
	var patch store.AppointmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid appointment patch", err)
		return
	}
	a, err := h.data.UpdateAppointment(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, "failed to update appointment", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AppointmentsHandler) Delete(c *gin.Context) {
	if err := h.data.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete appointment", err)
		return
	}
	c.Status(http.StatusNoContent)
}
