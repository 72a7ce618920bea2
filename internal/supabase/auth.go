package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"yasmin-alsham-backend/internal/config"
	"yasmin-alsham-backend/internal/models"
)

type AuthEvent string

const (
	SignedIn  AuthEvent = "SIGNED_IN"
	SignedOut AuthEvent = "SIGNED_OUT"
)

// AuthListener is called after every sign-in and sign-out.
type AuthListener func(event AuthEvent, user *models.Identity)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthClient signs users in and out against GoTrue and fans out the changes
// to subscribers. It has its own GoTrue client, so sessions never touch the
// row client's credentials.
type AuthClient struct {
	auth gotrue.Client

	mu        sync.Mutex
	listeners map[int]AuthListener
	nextID    int
}

func NewAuthClient(cfg *config.Config) *AuthClient {
	baseURL := strings.TrimSuffix(cfg.SupabaseURL, "/")
	return &AuthClient{
		auth:      gotrue.New(baseURL, cfg.SupabaseAnonKey).WithCustomGoTrueURL(baseURL + "/auth/v1"),
		listeners: make(map[int]AuthListener),
	}
}

func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, err := a.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	session := sessionFrom(token.Session)
	a.notify(SignedIn, &session.User)
	return session, nil
}

// SignOut revokes the refresh tokens behind accessToken. Listeners are told
// even when the remote logout fails; the remote error is still returned.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string, user *models.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if accessToken == "" {
		return nil
	}

	err := a.auth.WithToken(accessToken).Logout()
	a.notify(SignedOut, user)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// OnAuthStateChange registers fn and returns a func that removes it.
func (a *AuthClient) OnAuthStateChange(fn AuthListener) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *AuthClient) notify(event AuthEvent, user *models.Identity) {
	a.mu.Lock()
	listeners := make([]AuthListener, 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(event, user)
	}
}

func sessionFrom(s types.Session) *models.AuthSession {
	return &models.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresIn:    s.ExpiresIn,
		ExpiresAt:    s.ExpiresAt,
		User:         *identityFromUser(s.User),
	}
}

func identityFromUser(u types.User) *models.Identity {
	return &models.Identity{
		ID:    u.ID.String(),
		Email: u.Email,
		Role:  RoleFromMetadata(u.AppMetadata, u.UserMetadata),
	}
}

// RoleFromMetadata reads the storefront role from app metadata, falling back
// to user metadata, then to client.
func RoleFromMetadata(sources ...map[string]any) string {
	for _, md := range sources {
		if role, ok := md["role"].(string); ok && role != "" {
			return role
		}
	}
	return models.RoleClient
}
