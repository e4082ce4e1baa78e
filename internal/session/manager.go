package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/api/client"
	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// ErrNoSession indicates no refresh token is stored locally.
var ErrNoSession = errors.New("no active session")

// Manager drives the auth lifecycle against the store: login persists
// the pair, logout always drops it, refresh rotates or drops it.
type Manager struct {
	api   *client.Client
	store *Store
}

// NewManager returns a Manager over the given API client and store.
// The client should use the same store as its token source so requests
// carry the session's access token.
func NewManager(api *client.Client, store *Store) *Manager {
	return &Manager{api: api, store: store}
}

// SignUp registers an account. It never stores tokens; the account
// verifies its email and logs in explicitly.
func (m *Manager) SignUp(ctx context.Context, req *client.SignupRequest) (*client.SignupResponse, error) {
	return m.api.SignUp(ctx, req)
}

// Login authenticates and persists the returned token pair.
func (m *Manager) Login(ctx context.Context, email, password string) (*client.LoginResponse, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.store.Set(resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return resp, nil
}

// Logout revokes the session server-side and drops the local tokens.
// The local tokens are cleared even when the revoke call fails.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.Logout(ctx)
	if clearErr := m.store.Clear(); clearErr != nil {
		err = errors.Join(err, clearErr)
	}
	return err
}

// CurrentUser fetches the profile for the stored access token.
func (m *Manager) CurrentUser(ctx context.Context) (*domain.User, error) {
	return m.api.Me(ctx)
}

// Refresh exchanges the stored refresh token for a new pair. Success
// replaces the stored pair; any failure drops it, so the caller must
// log in again. Returns ErrNoSession when nothing is stored.
func (m *Manager) Refresh(ctx context.Context) (*domain.TokenPair, error) {
	rt, ok := m.store.RefreshToken()
	if !ok {
		return nil, ErrNoSession
	}
	pair, err := m.api.Refresh(ctx, rt)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			err = errors.Join(err, clearErr)
		}
		return nil, err
	}
	if err := m.store.Set(pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return pair, nil
}
