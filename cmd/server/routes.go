package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/config"
	"yasmin-alsham-backend/internal/handlers"
	"yasmin-alsham-backend/internal/middleware"
	"yasmin-alsham-backend/internal/models"
)

type routes struct {
	health       gin.HandlerFunc
	catalog      *handlers.CatalogHandler
	appointments *handlers.AppointmentsHandler
	orders       *handlers.OrdersHandler
	workers      *handlers.WorkersHandler
	stats        *handlers.StatsHandler
	shop         *handlers.ShopHandler
	auth         *handlers.AuthHandler
	reload       *handlers.Reloader
}

func newRouter(cfg *config.Config, logger *slog.Logger, r routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(), middleware.RequestLog(logger))

	// Health check (no auth)
	router.GET("/health", r.health)

	api := router.Group("/api/v1")

	// Public storefront
	api.GET("/products", r.catalog.ListProducts)
	api.GET("/products/:id", r.catalog.GetProduct)
	api.GET("/designs", r.catalog.ListDesigns)
	api.GET("/designs/:id", r.catalog.GetDesign)
	api.GET("/fabrics", r.catalog.ListFabrics)
	api.POST("/appointments", r.appointments.Book)

	api.POST("/auth/sign-in", r.auth.SignIn)

	// Signed-in user: session, favorites and cart
	user := api.Group("", middleware.AuthMiddleware(cfg))
	user.POST("/auth/sign-out", r.auth.SignOut)
	user.GET("/auth/me", r.auth.Me)

	user.GET("/favorites", r.shop.ListFavorites)
	user.POST("/favorites", r.shop.AddFavorite)
	user.DELETE("/favorites", r.shop.ClearFavorites)
	user.DELETE("/favorites/:product_id", r.shop.RemoveFavorite)
	user.GET("/cart", r.shop.GetCart)
	user.POST("/cart", r.shop.AddToCart)
	user.DELETE("/cart", r.shop.ClearCart)
	user.GET("/cart/message", r.shop.CartMessage)
	user.PATCH("/cart/:product_id", r.shop.UpdateCartQuantity)
	user.DELETE("/cart/:product_id", r.shop.RemoveFromCart)

	// Dashboard (bearer token)
	staff := api.Group("", middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin, models.RoleWorker))
	staff.GET("/orders", r.orders.List)
	staff.GET("/orders/:id", r.orders.Get)
	staff.POST("/orders/:id/start", r.orders.Start)
	staff.POST("/orders/:id/complete", r.orders.Complete)
	staff.POST("/orders/:id/images", r.orders.UploadImages)

	admin := api.Group("", middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	admin.GET("/appointments", r.appointments.List)
	admin.GET("/appointments/:id", r.appointments.Get)
	admin.PATCH("/appointments/:id", r.appointments.Update)
	admin.DELETE("/appointments/:id", r.appointments.Delete)

	admin.POST("/orders", r.orders.Create)
	admin.PATCH("/orders/:id", r.orders.Update)
	admin.DELETE("/orders/:id", r.orders.Delete)

	admin.GET("/workers", r.workers.List)
	admin.POST("/workers", r.workers.Create)
	admin.GET("/workers/:id", r.workers.Get)
	admin.PATCH("/workers/:id", r.workers.Update)
	admin.DELETE("/workers/:id", r.workers.Delete)

	admin.GET("/stats", r.stats.Get)
	admin.POST("/reload", r.reload.Reload)

	return router
}
