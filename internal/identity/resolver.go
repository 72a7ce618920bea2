package identity

import (
	"context"
	"log/slog"

	"yasmin-alsham-backend/internal/models"
	"yasmin-alsham-backend/internal/persist"
)

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user of a request.
func WithUser(ctx context.Context, user *models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the user stored by WithUser, or nil.
func FromContext(ctx context.Context) *models.Identity {
	user, _ := ctx.Value(ctxKey{}).(*models.Identity)
	return user
}

// Resolver answers "who is the current user": the user carried by the
// context when there is one, else the identity remembered from the last
// sign-in, else nobody. HTTP requests always carry their own user; the
// remembered identity only serves work started outside a request.
type Resolver struct {
	mirror persist.Mirror
	logger *slog.Logger
}

func NewResolver(mirror persist.Mirror, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{mirror: mirror, logger: logger}
}

// Resolve returns nil with no error when nobody can be identified.
func (r *Resolver) Resolve(ctx context.Context) (*models.Identity, error) {
	if user := FromContext(ctx); user != nil && user.ID != "" {
		return user, nil
	}
	return r.Remembered(ctx)
}

func (r *Resolver) Remembered(ctx context.Context) (*models.Identity, error) {
	var remembered models.Identity
	ok, err := r.mirror.Load(ctx, persist.UserKey, &remembered)
	if err != nil {
		return nil, err
	}
	if !ok || remembered.ID == "" {
		return nil, nil
	}
	return &remembered, nil
}

// Remember persists id so it survives restarts.
func (r *Resolver) Remember(ctx context.Context, id *models.Identity) error {
	return r.mirror.Save(ctx, persist.UserKey, id)
}

func (r *Resolver) Forget(ctx context.Context) error {
	return r.mirror.Clear(ctx, persist.UserKey)
}

// Track keeps the remembered identity in step with sign-in and sign-out. A
// sign-out only forgets the remembered user when it is the one signing out.
// It has the shape of an auth state listener.
func (r *Resolver) Track(signedIn bool, user *models.Identity) {
	ctx := context.Background()
	var err error
	switch {
	case signedIn && user != nil:
		err = r.Remember(ctx, user)
	case !signedIn:
		var remembered *models.Identity
		remembered, err = r.Remembered(ctx)
		if err == nil && remembered != nil && (user == nil || user.ID == remembered.ID) {
			err = r.Forget(ctx)
		}
	}
	if err != nil {
		r.logger.Error("failed to persist identity", "error", err)
	}
}
