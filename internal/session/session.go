// Package session holds the authenticated identity and the bearer token it
// derives from. The session doubles as the API client's token source:
// requests read the current token at call time, so login and logout take
// effect immediately without rebuilding the client.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nhatminh/vifin/internal/model"
	"github.com/nhatminh/vifin/internal/service"
)

// Status distinguishes "still restoring" from "definitely unauthenticated".
// Protected views must treat the two differently.
type Status int

// Session states.
const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

// Session tracks the current user and token. Safe for concurrent use; a
// request racing a logout may be sent with a stale token, which surfaces as
// an auth failure on that one request.
type Session struct {
	mu     sync.RWMutex
	token  string
	user   *model.User
	status Status
	store  *Store
	auth   service.AuthService
}

// New creates a session backed by the given durable store and auth service.
func New(store *Store, auth service.AuthService) *Session {
	return &Session{
		store:  store,
		auth:   auth,
		status: StatusLoading,
	}
}

// SetAuth binds the auth service. The session and the API client reference
// each other (the client reads its token from the session), so the auth
// dependency is attached after both exist.
func (s *Session) SetAuth(auth service.AuthService) {
	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated identity, or nil.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Status reports the current session state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Login exchanges credentials for a token, persists it, and sets the
// identity. Invalid credentials surface as an api.AuthError.
func (s *Session) Login(ctx context.Context, username, password string) (*model.User, error) {
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	slog.Info("logged in", "username", resp.User.Username)
	return &resp.User, nil
}

// Register creates an account; on success the contract is identical to
// Login. Field problems surface as an api.ValidationError.
func (s *Session) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	resp, err := s.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.establish(resp); err != nil {
		return nil, err
	}
	slog.Info("registered", "username", resp.User.Username)
	return &resp.User, nil
}

// Restore loads a persisted token and validates it by fetching the profile.
// Any failure clears the token and resets the identity; this is the sole
// automatic-invalidation path.
func (s *Session) Restore(ctx context.Context) error {
	state, err := s.store.Load()
	if err != nil {
		s.reset()
		return err
	}
	if state.Token == "" {
		s.reset()
		return nil
	}

	s.mu.Lock()
	s.token = state.Token
	s.mu.Unlock()

	user, err := s.auth.Profile(ctx)
	if err != nil {
		slog.Debug("persisted token rejected, clearing session", "error", err)
		if clearErr := s.store.Clear(); clearErr != nil {
			slog.Warn("failed to clear session state", "error", clearErr)
		}
		s.reset()
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.status = StatusAuthenticated
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted token and identity synchronously. No network
// call is required for it to succeed.
func (s *Session) Logout() error {
	err := s.store.Clear()
	s.reset()
	if err != nil {
		return fmt.Errorf("logged out locally but state file not removed: %w", err)
	}
	return nil
}

func (s *Session) establish(resp *model.AuthResponse) error {
	if err := s.store.Save(&State{Token: resp.Token, SavedAt: time.Now()}); err != nil {
		return fmt.Errorf("authenticated but failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.status = StatusAuthenticated
	s.mu.Unlock()
	return nil
}

func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
}
