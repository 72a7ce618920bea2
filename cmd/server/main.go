package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"yasmin-alsham-backend/internal/config"
	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/handlers"
	"yasmin-alsham-backend/internal/identity"
	"yasmin-alsham-backend/internal/logging"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/store"
	"yasmin-alsham-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Init(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sb, err := newSupabase(cfg)
	if err != nil {
		return err
	}

	backend, closeBackend, err := openBackend(ctx, cfg, sb, logger)
	if err != nil {
		return err
	}
	defer closeBackend()
	services := database.NewServices(backend)

	mirror, closeMirror, err := openMirror(cfg)
	if err != nil {
		return err
	}
	defer closeMirror()

	// Auth and image storage need the hosted project regardless of the row
	// backend.
	var (
		auth   *supabase.AuthClient
		images handlers.ImageStore
	)
	if sb != nil {
		auth = supabase.NewAuthClient(cfg)
		key := cfg.SupabaseServiceRoleKey
		if key == "" {
			key = cfg.SupabaseAnonKey
		}
		images = supabase.NewStorageClient(cfg.SupabaseURL, key, cfg.SupabaseStorageBucket)
	} else {
		logger.Warn("Supabase not configured; sign-in and image uploads are disabled")
	}

	resolver := identity.NewResolver(mirror, logger)
	if auth != nil {
		unsubscribe := auth.OnAuthStateChange(func(event supabase.AuthEvent, user *models.Identity) {
			resolver.Track(event == supabase.SignedIn, user)
		})
		defer unsubscribe()
	}

	data := store.NewDataStore(services, mirror, logger)
	shop := store.NewShopStore(services, resolver, mirror, logger)

	if err := data.Restore(ctx); err != nil {
		logger.Warn("failed to restore dashboard snapshot", "error", err)
	}
	if err := shop.Restore(ctx); err != nil {
		logger.Warn("failed to restore shop snapshot", "error", err)
	}
	if err := data.LoadAll(ctx); err != nil {
		logger.Warn("initial load failed; serving restored state", "error", err)
	}
	warmBasket(ctx, shop, logger)

	router := newRouter(cfg, logger, routes{
		health:       handlers.NewHealthHandler(cfg.Backend),
		catalog:      handlers.NewCatalogHandler(services),
		appointments: handlers.NewAppointmentsHandler(data),
		orders:       handlers.NewOrdersHandler(data, images, logger),
		workers:      handlers.NewWorkersHandler(data),
		stats:        handlers.NewStatsHandler(data, services.Stats, logger),
		shop:         handlers.NewShopHandler(shop, services.Products, cfg.WhatsAppNumber),
		auth:         handlers.NewAuthHandler(authenticator(auth)),
		reload:       handlers.NewReloader(data, shop),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "backend", cfg.Backend, "mirror", cfg.Mirror)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// authenticator keeps a nil *AuthClient from becoming a non-nil interface.
func authenticator(auth *supabase.AuthClient) handlers.Authenticator {
	if auth == nil {
		return nil
	}
	return auth
}

// warmBasket loads the favorites and cart of the user remembered from the
// last sign-in, if any.
func warmBasket(ctx context.Context, shop *store.ShopStore, logger *slog.Logger) {
	for name, load := range map[string]func(context.Context) error{
		"favorites": shop.LoadFavorites,
		"cart":      shop.LoadCart,
	} {
		if err := load(ctx); err != nil && !errors.Is(err, store.ErrNoIdentity) {
			logger.Warn("initial load failed", "collection", name, "error", err)
		}
	}
}
