package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/middleware"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/store"
)

// ImageStore keeps order photos and returns their public URLs.
type ImageStore interface {
	UploadOrderImage(ctx context.Context, orderID, filename, contentType string, data []byte) (string, error)
}

type OrdersHandler struct {
	data   *store.DataStore
	images ImageStore
	logger *slog.Logger
}

// NewOrdersHandler builds the handler. images may be nil when no bucket is
// configured; uploads then answer 503.
func NewOrdersHandler(data *store.DataStore, images ImageStore, logger *slog.Logger) *OrdersHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrdersHandler{data: data, images: images, logger: logger}
}

// List returns the in-memory orders; status narrows them, and workers only
// see orders assigned to them.
func (h *OrdersHandler) List(c *gin.Context) {
	status := c.Query("status")
	isWorker := c.GetString(middleware.RoleKey) == models.RoleWorker
	worker, _ := h.ownWorker(c)

	all := h.data.Orders()
	orders := make([]store.Order, 0, len(all))
	for _, o := range all {
		if status != "" && o.Status != status {
			continue
		}
		if isWorker && (worker.ID == "" || o.AssignedWorker != worker.ID) {
			continue
		}
		orders = append(orders, o)
	}
	c.JSON(http.StatusOK, orders)
}

// Create godoc
// @Summary     Create an order
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body store.OrderDraft true "Order"
// @Success     201 {object} store.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var draft store.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid order", err)
		return
	}
	o, err := h.data.AddOrder(c.Request.Context(), draft)
	if err != nil {
		respondError(c, "failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	o, ok := h.visibleOrder(c, c.Param("id"))
	if !ok {
		notFound(c, "order not found")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrdersHandler) Update(c *gin.Context) {
	var patch store.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid order patch", err)
		return
	}
	o, err := h.data.UpdateOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, "failed to update order", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrdersHandler) Delete(c *gin.Context) {
	if err := h.data.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete order", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Start assigns the order to a worker and moves it to in progress. Workers
// always start orders for themselves.
func (h *OrdersHandler) Start(c *gin.Context) {
	var req models.StartOrderRequest
	_ = c.ShouldBindJSON(&req)

	workerID, ok := h.workerFor(c, req.WorkerID)
	if !ok {
		return
	}
	if workerID == "" {
		badRequest(c, "worker_id is required", nil)
		return
	}
	o, err := h.data.StartOrderWork(c.Request.Context(), c.Param("id"), workerID)
	if err != nil {
		respondError(c, "failed to start order", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Complete godoc
// @Summary     Complete an order
// @Description Marks the order completed and attaches photos of the finished work.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                      true  "Order ID"
// @Param       request body models.CompleteOrderRequest false "Completion"
// @Success     200 {object} store.Order
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /orders/{id}/complete [post]
func (h *OrdersHandler) Complete(c *gin.Context) {
	var req models.CompleteOrderRequest
	_ = c.ShouldBindJSON(&req)

	workerID, ok := h.workerFor(c, req.WorkerID)
	if !ok {
		return
	}
	o, err := h.data.CompleteOrder(c.Request.Context(), c.Param("id"), workerID, req.CompletedImages)
	if err != nil {
		respondError(c, "failed to complete order", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// UploadImages godoc
// @Summary     Upload order images
// @Description Stores photos in the order-images bucket and appends their URLs
// @Description to the order's images, or to completed_images when kind=completed.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       id     path     string true  "Order ID"
// @Param       images formData file   true  "Images (multiple files allowed)"
// @Param       kind   formData string false "reference (default) or completed"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /orders/{id}/images [post]
func (h *OrdersHandler) UploadImages(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "image storage not configured"})
		return
	}

	orderID := c.Param("id")
	workerID, ok := h.workerFor(c, "")
	if !ok {
		return
	}
	if _, ok := h.visibleOrder(c, orderID); !ok {
		notFound(c, "order not found")
		return
	}

	// Set max memory for multipart form (32MB)
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		badRequest(c, "failed to parse multipart form", err)
		return
	}
	form := c.Request.MultipartForm

	var files []*multipart.FileHeader
	fieldNames := []string{"images", "image", "files", "file"}
	for _, name := range fieldNames {
		if f := form.File[name]; len(f) > 0 {
			files = f
			break
		}
	}
	if len(files) == 0 {
		badRequest(c, "no files uploaded", fmt.Errorf("please provide files with one of these field names: %v", fieldNames))
		return
	}

	resp := models.UploadResponse{OrderID: orderID, URLs: []string{}}
	for _, file := range files {
		url, err := h.upload(c.Request.Context(), orderID, file)
		if err != nil {
			h.logger.Warn("order image upload failed", "order_id", orderID, "filename", file.Filename, "error", err)
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", file.Filename, err))
			continue
		}
		resp.URLs = append(resp.URLs, url)
	}
	if len(resp.URLs) == 0 {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "no images uploaded", Message: resp.Errors[0]})
		return
	}

	completed := c.PostForm("kind") == "completed"
	if _, err := h.data.AttachOrderImages(c.Request.Context(), orderID, workerID, resp.URLs, completed); err != nil {
		respondError(c, "failed to attach images", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) upload(ctx context.Context, orderID string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return h.images.UploadOrderImage(ctx, orderID, file.Filename, contentType, data)
}

// ownWorker finds the worker record of a signed-in worker through the
// auth account id in the token.
func (h *OrdersHandler) ownWorker(c *gin.Context) (store.Worker, bool) {
	return h.data.WorkerForUser(c.GetString(middleware.UserIDKey))
}

// workerFor returns the caller's own worker id for workers, else requested.
// A worker account without a worker record gets a 403 and false.
func (h *OrdersHandler) workerFor(c *gin.Context, requested string) (string, bool) {
	if c.GetString(middleware.RoleKey) != models.RoleWorker {
		return requested, true
	}
	w, ok := h.ownWorker(c)
	if !ok {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "no worker profile for this account"})
		return "", false
	}
	return w.ID, true
}

// visibleOrder returns the order when the caller may see it. Workers only
// see orders assigned to them.
func (h *OrdersHandler) visibleOrder(c *gin.Context, id string) (store.Order, bool) {
	o, ok := h.data.Order(id)
	if !ok {
		return store.Order{}, false
	}
	if c.GetString(middleware.RoleKey) != models.RoleWorker {
		return o, true
	}
	w, ok := h.ownWorker(c)
	if !ok || o.AssignedWorker != w.ID {
		return store.Order{}, false
	}
	return o, true
}
