package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a single-row read or write matches no row.
var ErrNotFound = errors.New("record not found")

// Filter is an equality condition on one column.
type Filter struct {
	Column string
	Value  any
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

type OrderBy struct {
	Column    string
	Ascending bool
}

// Embed pulls a to-one related row into the named struct field, e.g.
// {Table: "products", Field: "Product"} for favorites and cart items.
type Embed struct {
	Table string
	Field string
}

type Query struct {
	Filters []Filter
	Order   []OrderBy
	Embeds  []Embed
	Limit   int
}

// Backend is the row-oriented boundary to the hosted relational store. Every
// call issues exactly one request (plus a re-read for updates on backends that
// cannot return the row).
type Backend interface {
	// Select decodes matching rows into dest, a pointer to a slice.
	Select(ctx context.Context, table string, q Query, dest any) error
	// Insert writes row and overwrites it with the stored representation.
	Insert(ctx context.Context, table string, row any) error
	// Update applies patch to the rows matched by filters. When dest is
	// non-nil exactly one row must match, and it is decoded into dest.
	Update(ctx context.Context, table string, filters []Filter, patch map[string]any, dest any) error
	// Delete removes every row matched by filters.
	Delete(ctx context.Context, table string, filters []Filter) error
}

func selectOne[T any](ctx context.Context, b Backend, table string, filters ...Filter) (*T, error) {
	var rows []T
	if err := b.Select(ctx, table, Query{Filters: filters, Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
