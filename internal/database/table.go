package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var (
	newestFirst = []OrderBy{{Column: "created_at", Ascending: false}}
	available   = Eq("is_available", true)
)

// table binds a model type to a backend table so each entity service only
// spells out its filters and ordering.
type table[T any] struct {
	backend Backend
	name    string
}

func (t table[T]) list(ctx context.Context, q Query) ([]T, error) {
	rows := []T{}
	if err := t.backend.Select(ctx, t.name, q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T]) get(ctx context.Context, filters ...Filter) (*T, error) {
	return selectOne[T](ctx, t.backend, t.name, filters...)
}

func (t table[T]) create(ctx context.Context, row *T) (*T, error) {
	if err := t.backend.Insert(ctx, t.name, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (t table[T]) update(ctx context.Context, patch map[string]any, filters ...Filter) (*T, error) {
	if _, ok := patch["updated_at"]; !ok {
		patch["updated_at"] = now()
	}
	var row T
	if err := t.backend.Update(ctx, t.name, filters, patch, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// updateAll patches every matching row in one request.
func (t table[T]) updateAll(ctx context.Context, patch map[string]any, filters ...Filter) error {
	if _, ok := patch["updated_at"]; !ok {
		patch["updated_at"] = now()
	}
	return t.backend.Update(ctx, t.name, filters, patch, nil)
}

func (t table[T]) delete(ctx context.Context, filters ...Filter) error {
	return t.backend.Delete(ctx, t.name, filters)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// stamp fills the identity and timestamps of a new row when the caller left
// them empty. id and updatedAt may be nil for tables without them.
func stamp(id *string, createdAt, updatedAt *time.Time) {
	if id != nil && *id == "" {
		*id = uuid.NewString()
	}
	ts := now()
	if createdAt.IsZero() {
		*createdAt = ts
	}
	if updatedAt != nil && updatedAt.IsZero() {
		*updatedAt = ts
	}
}
