package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/store"
)

// CatalogHandler serves the public product, design and fabric listings
// straight from the backend.
type CatalogHandler struct {
	services *database.Services
}

func NewCatalogHandler(services *database.Services) *CatalogHandler {
	return &CatalogHandler{services: services}
}

// ListProducts godoc
// @Summary     List products
// @Tags        catalog
// @Produce     json
// @Success     200 {array} store.Product
// @Router      /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	rows, err := h.services.Products.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list products", err)
		return
	}
	products := make([]store.Product, len(rows))
	for i, r := range rows {
		products[i] = store.ProductFromRow(r)
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	row, err := h.services.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "product not found", err)
		return
	}
	c.JSON(http.StatusOK, store.ProductFromRow(*row))
}

// ListDesigns godoc
// @Summary     List designs
// @Description Lists available designs, optionally filtered by category
// @Tags        catalog
// @Produce     json
// @Param       category query string false "Design category"
// @Success     200 {array} models.Design
// @Router      /designs [get]
func (h *CatalogHandler) ListDesigns(c *gin.Context) {
	ctx := c.Request.Context()
	if category := c.Query("category"); category != "" {
		designs, err := h.services.Designs.GetByCategory(ctx, category)
		if err != nil {
			respondError(c, "failed to list designs", err)
			return
		}
		c.JSON(http.StatusOK, designs)
		return
	}

	designs, err := h.services.Designs.GetAll(ctx)
	if err != nil {
		respondError(c, "failed to list designs", err)
		return
	}
	c.JSON(http.StatusOK, designs)
}

func (h *CatalogHandler) GetDesign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid design id", err)
		return
	}
	design, err := h.services.Designs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "design not found", err)
		return
	}
	c.JSON(http.StatusOK, design)
}

func (h *CatalogHandler) ListFabrics(c *gin.Context) {
	fabrics, err := h.services.Fabrics.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list fabrics", err)
		return
	}
	c.JSON(http.StatusOK, fabrics)
}
