package supabase

import (
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"yasmin-alsham-backend/internal/config"
)

// Client wraps the hosted project client used for row requests. It always
// authenticates with the project key; user sessions live in AuthClient.
type Client struct {
	supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, projectKey(cfg), nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		supabase: client,
		Config:   cfg,
	}, nil
}

// projectKey prefers the service role key so dashboard reads are not
// narrowed by row level security.
func projectKey(cfg *config.Config) string {
	if cfg.SupabaseServiceRoleKey != "" {
		return cfg.SupabaseServiceRoleKey
	}
	return cfg.SupabaseAnonKey
}

func (c *Client) from(table string) *postgrest.QueryBuilder {
	return c.supabase.From(table)
}
