package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/api/client"
)

// newManager wires a file-backed store into a client pointed at url.
func newManager(t *testing.T, url string) (*Manager, *Store) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	api := client.New(url, client.WithTokenSource(store))
	return NewManager(api, store), store
}

func TestManager_LoginStoresTokens(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user_id": "u-1",
			"email": "jdoe@gmu.edu",
			"full_name": "John Doe",
			"access_token": "at-123",
			"refresh_token": "rt-456",
			"expires_in": 3600,
			"token_type": "bearer"
		}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	resp, err := m.Login(context.Background(), "jdoe@gmu.edu", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.UserID)

	tok, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "at-123", tok)
	rt, ok := store.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "rt-456", rt)
}

func TestManager_LoginFailureLeavesStore(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid email or password"}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	require.NoError(t, store.Set("old-at", "old-rt"))

	_, err := m.Login(context.Background(), "jdoe@gmu.edu", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	tok, ok := store.Token()
	require.True(t, ok, "a failed login must not touch the existing session")
	assert.Equal(t, "old-at", tok)
}

func TestManager_LogoutClears(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Logged out successfully","user_id":"u-1"}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	require.NoError(t, store.Set("at-123", "rt-456"))

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, "Bearer at-123", gotAuth)

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestManager_LogoutClearsOnTransportFailure(t *testing.T) {
	t.Parallel()

	m, store := newManager(t, "http://127.0.0.1:1") // nothing listening
	require.NoError(t, store.Set("at-123", "rt-456"))

	err := m.Logout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")

	_, ok := store.Token()
	assert.False(t, ok, "logout must drop tokens even when the server is unreachable")
	_, ok = store.RefreshToken()
	assert.False(t, ok)
}

func TestManager_RefreshRotatesPair(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "at-789",
			"refresh_token": "rt-790",
			"expires_in": 3600,
			"token_type": "bearer"
		}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	require.NoError(t, store.Set("at-123", "rt-456"))

	pair, err := m.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-789", pair.AccessToken)

	tok, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "at-789", tok)
	rt, ok := store.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "rt-790", rt)
}

func TestManager_RefreshFailureClears(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid or expired refresh token"}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	require.NoError(t, store.Set("at-123", "rt-456"))

	_, err := m.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	_, ok := store.Token()
	assert.False(t, ok, "a rejected refresh must drop the stored pair")
}

func TestManager_RefreshWithoutSession(t *testing.T) {
	t.Parallel()

	// Unreachable URL proves no request is attempted.
	m, _ := newManager(t, "http://127.0.0.1:1")
	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_SignUpDoesNotStore(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "Signup successful! Please check your GMU email to verify your account.",
			"user_id": "u-new",
			"email": "asmith@gmu.edu",
			"email_confirmed": false
		}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	resp, err := m.SignUp(context.Background(), &client.SignupRequest{
		Email:    "asmith@gmu.edu",
		Password: "hunter22",
		FullName: "Alice Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-new", resp.UserID)

	_, ok := store.Token()
	assert.False(t, ok, "signup must not authenticate the session")
}

func TestManager_CurrentUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user_id": "u-1",
			"email": "jdoe@gmu.edu",
			"full_name": "John Doe",
			"email_confirmed": true,
			"created_at": "2026-01-10T09:00:00Z"
		}`))
	}))
	defer srv.Close()

	m, store := newManager(t, srv.URL)
	require.NoError(t, store.Set("at-123", "rt-456"))

	user, err := m.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jdoe@gmu.edu", user.Email)
	assert.True(t, user.EmailConfirmed)
}
