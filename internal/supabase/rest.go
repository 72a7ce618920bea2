package supabase

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"yasmin-alsham-backend/internal/database"
)

// noRowsCode is what PostgREST answers when a single-object request matched
// nothing.
const noRowsCode = "(PGRST116)"

// RESTBackend implements database.Backend over PostgREST. The transport does
// not take a context, so ctx is only checked before each request.
type RESTBackend struct {
	client *Client
}

var _ database.Backend = (*RESTBackend)(nil)

func NewRESTBackend(client *Client) *RESTBackend {
	return &RESTBackend{client: client}
}

func columns(embeds []database.Embed) string {
	cols := []string{"*"}
	for _, e := range embeds {
		cols = append(cols, e.Table+"(*)")
	}
	return strings.Join(cols, ",")
}

func applyFilters(fb *postgrest.FilterBuilder, filters []database.Filter) *postgrest.FilterBuilder {
	for _, f := range filters {
		fb = fb.Eq(f.Column, fmt.Sprint(f.Value))
	}
	return fb
}

func wrap(op, table string, err error) error {
	if strings.Contains(err.Error(), noRowsCode) {
		return database.ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}

func (b *RESTBackend) Select(ctx context.Context, table string, q database.Query, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fb := applyFilters(b.client.from(table).Select(columns(q.Embeds), "", false), q.Filters)
	for _, o := range q.Order {
		fb = fb.Order(o.Column, &postgrest.OrderOpts{Ascending: o.Ascending})
	}
	if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}
	if _, err := fb.ExecuteTo(dest); err != nil {
		return wrap("select", table, err)
	}
	return nil
}

func (b *RESTBackend) Insert(ctx context.Context, table string, row any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.client.from(table).
		Insert(row, false, "", "representation", "").
		Single().
		ExecuteTo(row)
	if err != nil {
		return wrap("insert", table, err)
	}
	return nil
}

func (b *RESTBackend) Update(ctx context.Context, table string, filters []database.Filter, patch map[string]any, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("update %s: refusing to update without filters", table)
	}
	if dest == nil {
		fb := applyFilters(b.client.from(table).Update(patch, "minimal", ""), filters)
		if _, _, err := fb.Execute(); err != nil {
			return wrap("update", table, err)
		}
		return nil
	}
	fb := applyFilters(b.client.from(table).Update(patch, "representation", ""), filters).Single()
	if _, err := fb.ExecuteTo(dest); err != nil {
		return wrap("update", table, err)
	}
	return nil
}

func (b *RESTBackend) Delete(ctx context.Context, table string, filters []database.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("delete %s: refusing to delete without filters", table)
	}
	fb := applyFilters(b.client.from(table).Delete("minimal", ""), filters)
	if _, _, err := fb.Execute(); err != nil {
		return wrap("delete", table, err)
	}
	return nil
}
