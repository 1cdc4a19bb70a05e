package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatminh/vifin/internal/api"
	"github.com/nhatminh/vifin/internal/model"
)

type mockAuth struct {
	loginFn    func(ctx context.Context, username, password string) (*model.AuthResponse, error)
	registerFn func(ctx context.Context, reg model.Registration) (*model.AuthResponse, error)
	profileFn  func(ctx context.Context) (*model.User, error)

	profileCalls int
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return &model.AuthResponse{Token: "tok", User: model.User{Username: username}}, nil
}

func (m *mockAuth) Register(ctx context.Context, reg model.Registration) (*model.AuthResponse, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, reg)
	}
	return &model.AuthResponse{Token: "tok", User: model.User{Username: reg.Username}}, nil
}

func (m *mockAuth) Profile(ctx context.Context) (*model.User, error) {
	m.profileCalls++
	if m.profileFn != nil {
		return m.profileFn(ctx)
	}
	return &model.User{Username: "alice"}, nil
}

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return store
}

func TestLoginEstablishesSession(t *testing.T) {
	store := tempStore(t)
	auth := &mockAuth{}
	sess := New(store, auth)

	user, err := sess.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, StatusAuthenticated, sess.Status())
	assert.Equal(t, "tok", sess.Token())

	// The token must survive the process: a fresh store reads it back.
	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", state.Token)
	assert.False(t, state.SavedAt.IsZero())
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	store := tempStore(t)
	auth := &mockAuth{
		loginFn: func(context.Context, string, string) (*model.AuthResponse, error) {
			return nil, &api.AuthError{Message: "bad credentials"}
		},
	}
	sess := New(store, auth)

	_, err := sess.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Empty(t, sess.Token())

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
}

func TestRestoreValidTokenSetsIdentity(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(&State{Token: "persisted"}))

	auth := &mockAuth{}
	sess := New(store, auth)

	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StatusAuthenticated, sess.Status())
	assert.Equal(t, "persisted", sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "alice", sess.User().Username)
	assert.Equal(t, 1, auth.profileCalls)
}

func TestRestoreRejectedTokenClearsState(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(&State{Token: "stale"}))

	auth := &mockAuth{
		profileFn: func(context.Context) (*model.User, error) {
			return nil, &api.AuthError{Message: "Invalid token."}
		},
	}
	sess := New(store, auth)

	// Rejection is not an error; the session just ends up unauthenticated.
	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StatusUnauthenticated, sess.Status())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
}

func TestRestoreWithoutPersistedToken(t *testing.T) {
	store := tempStore(t)
	auth := &mockAuth{}
	sess := New(store, auth)

	require.NoError(t, sess.Restore(context.Background()))
	assert.Equal(t, StatusUnauthenticated, sess.Status())
	// No token means no validation round trip.
	assert.Equal(t, 0, auth.profileCalls)
}

func TestLogoutClearsEverything(t *testing.T) {
	store := tempStore(t)
	sess := New(store, &mockAuth{})

	_, err := sess.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, sess.Logout())
	assert.Equal(t, StatusUnauthenticated, sess.Status())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
}

func TestRegisterContractMatchesLogin(t *testing.T) {
	store := tempStore(t)
	sess := New(store, &mockAuth{})

	user, err := sess.Register(context.Background(), model.Registration{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "secret",
		PasswordConfirm: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, StatusAuthenticated, sess.Status())
	assert.Equal(t, "tok", sess.Token())
}

func TestStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(&State{Token: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := tempStore(t)
	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "parse")
}
