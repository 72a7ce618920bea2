package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"yasmin-alsham-backend/internal/models"
)

// GormBackend talks to the database directly, bypassing PostgREST. It is used
// with DATABASE_URL in self-hosted setups and with SQLite for local runs.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// OpenPostgres opens a pooled connection using a postgres:// URL or DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// OpenSQLite opens (and creates) a SQLite database and brings its schema up
// to date with the models. Use ":memory:" for throwaway databases.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db.DB(): %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	for _, stmt := range sqliteViews {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("create view: %w", err)
		}
	}
	return db, nil
}

// sqliteViews are the SQLite renditions of migrations/002_stats_views.sql.
var sqliteViews = []string{
	`CREATE VIEW IF NOT EXISTS order_stats AS
	SELECT
		COUNT(*) AS total_orders,
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_orders,
		COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress_orders,
		COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_orders,
		COALESCE(SUM(CASE WHEN status = 'delivered' THEN 1 ELSE 0 END), 0) AS delivered_orders,
		COALESCE(SUM(CASE WHEN status IN ('completed', 'delivered') THEN price ELSE 0 END), 0) AS total_revenue
	FROM orders`,
	`CREATE VIEW IF NOT EXISTS appointment_stats AS
	SELECT
		COUNT(*) AS total_appointments,
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_appointments,
		COALESCE(SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END), 0) AS confirmed_appointments,
		COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_appointments,
		COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled_appointments,
		COALESCE(SUM(CASE WHEN appointment_date = date('now') THEN 1 ELSE 0 END), 0) AS today_appointments
	FROM appointments`,
}

// AutoMigrate creates the storefront tables from the models. Postgres
// deployments use the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.Product{},
		&models.Design{},
		&models.Fabric{},
		&models.Appointment{},
		&models.Order{},
		&models.Favorite{},
		&models.CartItem{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (b *GormBackend) where(tx *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return tx
}

func (b *GormBackend) Select(ctx context.Context, table string, q Query, dest any) error {
	tx := b.where(b.db.WithContext(ctx).Table(table), q.Filters)
	for _, e := range q.Embeds {
		tx = tx.Preload(e.Field)
	}
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: !o.Ascending})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

func (b *GormBackend) Insert(ctx context.Context, table string, row any) error {
	if err := b.db.WithContext(ctx).Table(table).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (b *GormBackend) Update(ctx context.Context, table string, filters []Filter, patch map[string]any, dest any) error {
	if len(filters) == 0 {
		return fmt.Errorf("update %s: refusing to update without filters", table)
	}
	res := b.where(b.db.WithContext(ctx).Table(table), filters).Updates(patch)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	if dest == nil {
		return nil
	}
	err := b.where(b.db.WithContext(ctx).Table(table), filters).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reload %s: %w", table, err)
	}
	return nil
}

func (b *GormBackend) Delete(ctx context.Context, table string, filters []Filter) error {
	if len(filters) == 0 {
		return fmt.Errorf("delete %s: refusing to delete without filters", table)
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		conds = append(conds, b.db.Statement.Quote(f.Column)+" = ?")
		args = append(args, f.Value)
	}
	stmt := "DELETE FROM " + b.db.Statement.Quote(table) + " WHERE " + strings.Join(conds, " AND ")
	if err := b.db.WithContext(ctx).Exec(stmt, args...).Error; err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
