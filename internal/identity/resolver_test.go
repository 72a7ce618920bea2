package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yasmin-alsham-backend/internal/identity"
	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/persist"
)

func newResolver(t *testing.T) *identity.Resolver {
	t.Helper()
	m, err := persist.NewFileMirror(t.TempDir())
	require.NoError(t, err)
	return identity.NewResolver(m, nil)
}

func TestResolve_PrefersRequestUser(t *testing.T) {
	r := newResolver(t)
	require.NoError(t, r.Remember(context.Background(), &models.Identity{ID: "remembered"}))

	ctx := identity.WithUser(context.Background(), &models.Identity{ID: "request-user"})
	got, err := r.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "request-user", got.ID)
}

func TestResolve_FallsBackToRemembered(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no user in context", context.Background()},
		{"empty user in context", identity.WithUser(context.Background(), &models.Identity{})},
		{"nil user in context", identity.WithUser(context.Background(), nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t)
			require.NoError(t, r.Remember(context.Background(), &models.Identity{ID: "remembered", Email: "a@b.c"}))

			got, err := r.Resolve(tt.ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "remembered", got.ID)
			assert.Equal(t, "a@b.c", got.Email)
		})
	}
}

func TestResolve_NobodyIsNotAnError(t *testing.T) {
	got, err := newResolver(t).Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFromContext(t *testing.T) {
	assert.Nil(t, identity.FromContext(context.Background()))

	user := &models.Identity{ID: "u1", Role: models.RoleWorker}
	assert.Equal(t, user, identity.FromContext(identity.WithUser(context.Background(), user)))
}

func TestTrack(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	r.Track(true, &models.Identity{ID: "u1"})
	got, err := r.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	// somebody else signing out leaves u1 remembered
	r.Track(false, &models.Identity{ID: "u2"})
	got, err = r.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	r.Track(false, &models.Identity{ID: "u1"})
	got, err = r.Resolve(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
