package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"yasmin-alsham-backend/internal/database"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/persist"
)

var errBackendDown = errors.New("backend unavailable")

// flakyBackend fails every call while fail is set.
type flakyBackend struct {
	database.Backend
	fail atomic.Bool
}

func (f *flakyBackend) Select(ctx context.Context, table string, q database.Query, dest any) error {
	if f.fail.Load() {
		return errBackendDown
	}
	return f.Backend.Select(ctx, table, q, dest)
}

func (f *flakyBackend) Insert(ctx context.Context, table string, row any) error {
	if f.fail.Load() {
		return errBackendDown
	}
	return f.Backend.Insert(ctx, table, row)
}

func (f *flakyBackend) Update(ctx context.Context, table string, filters []database.Filter, patch map[string]any, dest any) error {
	if f.fail.Load() {
		return errBackendDown
	}
	return f.Backend.Update(ctx, table, filters, patch, dest)
}

func (f *flakyBackend) Delete(ctx context.Context, table string, filters []database.Filter) error {
	if f.fail.Load() {
		return errBackendDown
	}
	return f.Backend.Delete(ctx, table, filters)
}

// slowMirror holds up its first Save, giving later saves the chance to
// finish first.
type slowMirror struct {
	persist.Mirror
	saves atomic.Int32
}

func (m *slowMirror) Save(ctx context.Context, key string, value any) error {
	if m.saves.Add(1) == 1 {
		time.Sleep(50 * time.Millisecond)
	}
	return m.Mirror.Save(ctx, key, value)
}

type fixture struct {
	backend  *flakyBackend
	services *database.Services
	mirror   persist.Mirror
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mirror, err := persist.NewFileMirror(t.TempDir())
	require.NoError(t, err)

	backend := &flakyBackend{Backend: database.NewGormBackend(db)}
	return &fixture{
		backend:  backend,
		services: database.NewServices(backend),
		mirror:   mirror,
	}
}

// staticIdentity always resolves to the same user; a nil user means nobody
// is signed in.
type staticIdentity struct {
	user *models.Identity
}

func (s staticIdentity) Resolve(context.Context) (*models.Identity, error) {
	return s.user, nil
}

func ptr[T any](v T) *T { return &v }
