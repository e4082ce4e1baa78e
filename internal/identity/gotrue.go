package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/metrics"
)

const (
	signupPath = "/signup"
	tokenPath  = "/token"
	logoutPath = "/logout"
	userPath   = "/user"
)

// GoTrueClient implements Gateway against the GoTrue REST API.
type GoTrueClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the GoTrueClient.
type Option func(*GoTrueClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GoTrueClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a limiter applied before every provider call.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *GoTrueClient) {
		c.limiter = l
	}
}

// NewGoTrueClient creates a client for the GoTrue instance at baseURL.
// The API key is sent as the apikey header on every request and doubles
// as the bearer credential on calls made without a user token.
func NewGoTrueClient(baseURL, apiKey string, opts ...Option) *GoTrueClient {
	c := &GoTrueClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type userPayload struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

func (p *userPayload) toUser() *User {
	name, _ := p.UserMetadata["full_name"].(string)
	return &User{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       name,
		EmailConfirmed: p.EmailConfirmedAt != "",
		CreatedAt:      p.CreatedAt,
	}
}

type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         *userPayload `json:"user"`
}

func (p *sessionPayload) toSession() *Session {
	s := &Session{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    p.ExpiresIn,
		TokenType:    p.TokenType,
	}
	if p.User != nil {
		s.User = p.User.toUser()
	}
	return s
}

// SignUp registers a new account. The provider sends the verification
// email; the returned user reports whether the address is confirmed.
func (c *GoTrueClient) SignUp(ctx context.Context, email, password, fullName string) (*User, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": fullName},
	}

	// Confirmation-required instances return the user at the top level;
	// auto-confirm instances return a session wrapping it.
	var resp struct {
		userPayload
		User *userPayload `json:"user"`
	}
	if err := c.do(ctx, "signup", http.MethodPost, signupPath, "", payload, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.User != nil && resp.User.ID != "":
		return resp.User.toUser(), nil
	case resp.ID != "":
		return resp.userPayload.toUser(), nil
	default:
		return nil, ErrUserMissing
	}
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *GoTrueClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp sessionPayload
	if err := c.do(ctx, "login", http.MethodPost, tokenPath+"?grant_type=password", "", payload, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrSessionMissing
	}
	if resp.User == nil || resp.User.ID == "" {
		return nil, ErrUserMissing
	}
	return resp.toSession(), nil
}

// RefreshSession exchanges a refresh token for a fresh session.
func (c *GoTrueClient) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	payload := map[string]string{"refresh_token": refreshToken}

	var resp sessionPayload
	if err := c.do(ctx, "refresh", http.MethodPost, tokenPath+"?grant_type=refresh_token", "", payload, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrSessionMissing
	}
	return resp.toSession(), nil
}

// SignOut revokes the session behind the given access token.
func (c *GoTrueClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, "logout", http.MethodPost, logoutPath, accessToken, nil, nil)
}

// GetUser validates an access token and returns the account it belongs to.
func (c *GoTrueClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var resp userPayload
	if err := c.do(ctx, "get_user", http.MethodGet, userPath, accessToken, nil, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, ErrUserMissing
	}
	return resp.toUser(), nil
}

func (c *GoTrueClient) do(ctx context.Context, op, method, path, bearer string, payload, out any) error {
	start := time.Now()
	err := c.doRequest(ctx, method, path, bearer, payload, out)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.IdentityRequestsTotal.WithLabelValues(op, outcome).Inc()
	metrics.IdentityRequestDuration.Observe(time.Since(start).Seconds())

	return err
}

func (c *GoTrueClient) doRequest(ctx context.Context, method, path, bearer string, payload, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return classify(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parsing response body: %w", err)
		}
	}
	return nil
}
