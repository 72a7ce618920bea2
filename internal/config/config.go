package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"

	MirrorFile  = "file"
	MirrorRedis = "redis"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Backend selects how rows are read and written: through PostgREST
	// (rest), or directly with gorm (postgres, sqlite).
	Backend       string
	DatabaseURL   string
	SQLitePath    string
	RunMigrations bool

	// State mirror
	Mirror   string
	StateDir string
	RedisURL string

	// Shop
	WhatsAppNumber string

	// Server
	Port        string
	Environment string
	LogLevel    string
}

// fileConfig is the optional YAML file named by CONFIG_PATH. Environment
// variables take precedence over anything set here.
type fileConfig struct {
	SupabaseURL            string `yaml:"supabaseURL"`
	SupabaseAnonKey        string `yaml:"supabaseAnonKey"`
	SupabaseServiceRoleKey string `yaml:"supabaseServiceRoleKey"`
	SupabaseJWTSecret      string `yaml:"supabaseJWTSecret"`
	SupabaseStorageBucket  string `yaml:"supabaseStorageBucket"`
	Backend                string `yaml:"backend"`
	DatabaseURL            string `yaml:"databaseURL"`
	SQLitePath             string `yaml:"sqlitePath"`
	RunMigrations          *bool  `yaml:"runMigrations"`
	Mirror                 string `yaml:"mirror"`
	StateDir               string `yaml:"stateDir"`
	RedisURL               string `yaml:"redisURL"`
	WhatsAppNumber         string `yaml:"whatsAppNumber"`
	Port                   string `yaml:"port"`
	Environment            string `yaml:"environment"`
	LogLevel               string `yaml:"logLevel"`
}

func Load() (*Config, error) {
	file, err := readFile(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	runMigrations := false
	if file.RunMigrations != nil {
		runMigrations = *file.RunMigrations
	}

	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", file.SupabaseURL),
		SupabaseAnonKey:        getEnv("SUPABASE_ANON_KEY", file.SupabaseAnonKey),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", file.SupabaseServiceRoleKey),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", file.SupabaseJWTSecret),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", orDefault(file.SupabaseStorageBucket, "order-images")),

		Backend:       getEnv("BACKEND", orDefault(file.Backend, BackendREST)),
		DatabaseURL:   getEnv("DATABASE_URL", file.DatabaseURL),
		SQLitePath:    getEnv("SQLITE_PATH", orDefault(file.SQLitePath, "yasmin-alsham.db")),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", runMigrations),

		Mirror:   getEnv("MIRROR", orDefault(file.Mirror, MirrorFile)),
		StateDir: getEnv("STATE_DIR", orDefault(file.StateDir, "state")),
		RedisURL: getEnv("REDIS_URL", file.RedisURL),

		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", orDefault(file.WhatsAppNumber, "966598862609")),

		Port:        getEnv("PORT", orDefault(file.Port, "8080")),
		Environment: getEnv("ENVIRONMENT", orDefault(file.Environment, "development")),
		LogLevel:    getEnv("LOG_LEVEL", orDefault(file.LogLevel, "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_ANON_KEY is required")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}

	switch c.Mirror {
	case MirrorFile:
		if c.StateDir == "" {
			return fmt.Errorf("STATE_DIR is required for the file mirror")
		}
	case MirrorRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis mirror")
		}
	default:
		return fmt.Errorf("unknown MIRROR %q", c.Mirror)
	}

	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return nil
}

// HasSupabase reports whether the hosted project is configured, which auth
// and image storage depend on regardless of the row backend.
func (c *Config) HasSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func orDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
