package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"yasmin-alsham-backend/internal/store"
)

// Reloader refreshes every in-memory collection from the backend.
type Reloader struct {
	data *store.DataStore
	shop *store.ShopStore
}

func NewReloader(data *store.DataStore, shop *store.ShopStore) *Reloader {
	return &Reloader{data: data, shop: shop}
}

// Reload godoc
// @Summary     Reload from the backend
// @Description Replaces the in-memory collections, and the cart and favorites
// @Description of every user held in memory, with fresh backend reads.
// @Tags        admin
// @Security    Bearer
// @Success     204
// @Failure     500 {object} models.ErrorResponse
// @Router      /reload [post]
func (r *Reloader) Reload(c *gin.Context) {
	ctx := c.Request.Context()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.data.LoadAll(gctx) })
	g.Go(func() error { return r.shop.ReloadAll(gctx) })
	if err := g.Wait(); err != nil {
		respondError(c, "reload failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
