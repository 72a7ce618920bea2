package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"yasmin-alsham-backend/internal/config"
	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/persist"
	"yasmin-alsham-backend/internal/supabase"
)

// newSupabase returns nil when the hosted project is not configured.
func newSupabase(cfg *config.Config) (*supabase.Client, error) {
	if !cfg.HasSupabase() {
		return nil, nil
	}
	client, err := supabase.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Supabase client: %w", err)
	}
	return client, nil
}

// openBackend picks the row backend named by cfg.Backend. The returned func
// releases it.
func openBackend(ctx context.Context, cfg *config.Config, sb *supabase.Client, logger *slog.Logger) (database.Backend, func(), error) {
	if cfg.RunMigrations && cfg.DatabaseURL != "" {
		if err := migrate(ctx, cfg.DatabaseURL, logger); err != nil {
			return nil, nil, err
		}
	}

	switch cfg.Backend {
	case config.BackendREST:
		if sb == nil {
			return nil, nil, fmt.Errorf("rest backend requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
		return supabase.NewRESTBackend(sb), func() {}, nil

	case config.BackendPostgres:
		db, err := database.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return database.NewGormBackend(db), closeDB(db, logger), nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return database.NewGormBackend(db), closeDB(db, logger), nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func migrate(ctx context.Context, dbURL string, logger *slog.Logger) error {
	migrator, err := database.NewMigrator(dbURL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Migrations completed successfully")
	return nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) func() {
	return func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
}

func openMirror(cfg *config.Config) (persist.Mirror, func(), error) {
	switch cfg.Mirror {
	case config.MirrorRedis:
		client, err := persist.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		m := persist.NewRedisMirror(client, "")
		return m, func() { _ = m.Close() }, nil
	default:
		m, err := persist.NewFileMirror(cfg.StateDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state directory: %w", err)
		}
		return m, func() {}, nil
	}
}
