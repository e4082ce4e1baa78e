package client

import (
	"context"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// SignupRequest is the account registration payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// SignupResponse is the account registration result.
type SignupResponse struct {
	Message        string `json:"message"`
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// LoginResponse is a successful login: the user identity plus the
// issued token pair.
type LoginResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	domain.TokenPair
}

// SignUp registers a new account. It does not authenticate; the user
// must verify their email and log in.
func (c *Client) SignUp(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	var resp SignupResponse
	if err := c.post(ctx, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the current session on the server. The bearer
// token comes from the client's token source.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Refresh rotates a refresh token into a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var pair domain.TokenPair
	if err := c.post(ctx, "/auth/refresh", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
