// Command cli runs one-off administrative tasks against the configured
// backend.
//
//	cli add-worker -email noor@example.com -password secret -name Noor
//	cli stats
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"yasmin-alsham-backend/internal/config"
	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/logging"
	"yasmin-alsham-backend/internal/persist"
	"yasmin-alsham-backend/internal/store"
	"yasmin-alsham-backend/internal/supabase"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	services, closeFn, err := openServices(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeFn()

	mirror, err := persist.NewFileMirror(cfg.StateDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	data := store.NewDataStore(services, mirror, logger)

	switch os.Args[1] {
	case "add-worker":
		err = addWorker(ctx, data, os.Args[2:])
	case "stats":
		err = printStats(ctx, data)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cli <add-worker|stats> [flags]")
}

func openServices(cfg *config.Config) (*database.Services, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres, config.BackendSQLite:
		open := database.OpenPostgres
		dsn := cfg.DatabaseURL
		if cfg.Backend == config.BackendSQLite {
			open, dsn = database.OpenSQLite, cfg.SQLitePath
		}
		db, err := open(dsn)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return database.NewServices(database.NewGormBackend(db)), closeFn, nil
	default:
		client, err := supabase.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return database.NewServices(supabase.NewRESTBackend(client)), func() {}, nil
	}
}

func addWorker(ctx context.Context, data *store.DataStore, args []string) error {
	fs := flag.NewFlagSet("add-worker", flag.ExitOnError)
	email := fs.String("email", "", "worker email (required)")
	password := fs.String("password", "", "initial password (required)")
	name := fs.String("name", "", "full name (required)")
	phone := fs.String("phone", "", "phone number")
	specialty := fs.String("specialty", "", "specialty, e.g. embroidery")
	userID := fs.String("user-id", "", "auth account the worker signs in with")
	inactive := fs.Bool("inactive", false, "create the worker as inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" || *name == "" {
		fs.Usage()
		return fmt.Errorf("-email, -password and -name are required")
	}

	w, err := data.AddWorker(ctx, store.WorkerDraft{
		UserID:    *userID,
		Email:     *email,
		Password:  *password,
		FullName:  *name,
		Phone:     *phone,
		Specialty: *specialty,
		IsActive:  !*inactive,
	})
	if err != nil {
		return err
	}
	fmt.Printf("worker %s created (%s)\n", w.ID, w.Email)
	return nil
}

func printStats(ctx context.Context, data *store.DataStore) error {
	if err := data.LoadAll(ctx); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data.Stats())
}
