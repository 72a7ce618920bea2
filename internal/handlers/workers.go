package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/store"
)

type WorkersHandler struct {
	data *store.DataStore
}

func NewWorkersHandler(data *store.DataStore) *WorkersHandler {
	return &WorkersHandler{data: data}
}

func (h *WorkersHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Workers())
}

func (h *WorkersHandler) Get(c *gin.Context) {
	w, ok := h.data.Worker(c.Param("id"))
	if !ok {
		notFound(c, "worker not found")
		return
	}
	c.JSON(http.StatusOK, w)
}

// Create godoc
// @Summary     Add a worker
// @Description The password is stored as a bcrypt hash and never returned.
// @Tags        workers
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body store.WorkerDraft true "Worker"
// @Success     201 {object} store.Worker
// @Failure     400 {object} models.ErrorResponse
// @Router      /workers [post]
func (h *WorkersHandler) Create(c *gin.Context) {
	var draft store.WorkerDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid worker", err)
		return
	}
	w, err := h.data.AddWorker(c.Request.Context(), draft)
	if err != nil {
		respondError(c, "failed to add worker", err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *WorkersHandler) Update(c *gin.Context) {
	var patch store.WorkerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid worker patch", err)
		return
	}
	w, err := h.data.UpdateWorker(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, "failed to update worker", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkersHandler) Delete(c *gin.Context) {
	if err := h.data.DeleteWorker(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete worker", err)
		return
	}
	c.Status(http.StatusNoContent)
}
