package identity_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/identity"
)

const testUserID = "5f2e8c1a-9b4d-4e3f-8a6b-1c2d3e4f5a6b"

// userJSON returns a GoTrue user object, confirmed or not.
func userJSON(confirmed bool) string {
	confirmedAt := "null"
	if confirmed {
		confirmedAt = `"2026-01-10T09:30:00Z"`
	}
	return fmt.Sprintf(`{
		"id": %q,
		"aud": "authenticated",
		"email": "jdoe@gmu.edu",
		"email_confirmed_at": %s,
		"created_at": "2026-01-10T09:00:00Z",
		"user_metadata": {"full_name": "Jane Doe"}
	}`, testUserID, confirmedAt)
}

// sessionJSON returns a GoTrue session wrapping a user object.
func sessionJSON(confirmed bool) string {
	return fmt.Sprintf(`{
		"access_token": "at-123",
		"refresh_token": "rt-456",
		"expires_in": 3600,
		"token_type": "bearer",
		"user": %s
	}`, userJSON(confirmed))
}

func newTestClient(t *testing.T, status int, body string) *identity.GoTrueClient {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return identity.NewGoTrueClient(srv.URL, "anon-key")
}

func TestGoTrueClient_SignUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		body          string
		wantErr       error
		wantConfirmed bool
	}{
		{
			name:   "pending confirmation returns top-level user",
			status: http.StatusOK,
			body:   userJSON(false),
		},
		{
			name:          "autoconfirm returns session-wrapped user",
			status:        http.StatusOK,
			body:          sessionJSON(true),
			wantConfirmed: true,
		},
		{
			name:    "duplicate email current error shape",
			status:  http.StatusUnprocessableEntity,
			body:    `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`,
			wantErr: identity.ErrAlreadyRegistered,
		},
		{
			name:    "duplicate email legacy error shape",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid_request","error_description":"A user with this email address has already been registered"}`,
			wantErr: identity.ErrAlreadyRegistered,
		},
		{
			name:    "empty response body",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: identity.ErrUserMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, tt.status, tt.body)
			user, err := client.SignUp(context.Background(), "jdoe@gmu.edu", "hunter22", "Jane Doe")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testUserID, user.ID)
			assert.Equal(t, "jdoe@gmu.edu", user.Email)
			assert.Equal(t, "Jane Doe", user.FullName)
			assert.Equal(t, tt.wantConfirmed, user.EmailConfirmed)
		})
	}
}

func TestGoTrueClient_SignInWithPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:   "successful login",
			status: http.StatusOK,
			body:   sessionJSON(true),
		},
		{
			name:    "invalid credentials current error shape",
			status:  http.StatusBadRequest,
			body:    `{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`,
			wantErr: identity.ErrInvalidCredentials,
		},
		{
			name:    "invalid credentials legacy error shape",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid_grant","error_description":"Invalid login credentials"}`,
			wantErr: identity.ErrInvalidCredentials,
		},
		{
			name:    "email not confirmed",
			status:  http.StatusBadRequest,
			body:    `{"code":400,"error_code":"email_not_confirmed","msg":"Email not confirmed"}`,
			wantErr: identity.ErrEmailNotConfirmed,
		},
		{
			name:    "missing session",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: identity.ErrSessionMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, tt.status, tt.body)
			session, err := client.SignInWithPassword(context.Background(), "jdoe@gmu.edu", "hunter22")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "at-123", session.AccessToken)
			assert.Equal(t, "rt-456", session.RefreshToken)
			assert.Equal(t, int64(3600), session.ExpiresIn)
			assert.Equal(t, "bearer", session.TokenType)
			require.NotNil(t, session.User)
			assert.Equal(t, testUserID, session.User.ID)
			assert.True(t, session.User.EmailConfirmed)
		})
	}
}

func TestGoTrueClient_RefreshSession(t *testing.T) {
	t.Parallel()

	t.Run("successful refresh", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusOK, sessionJSON(true))
		session, err := client.RefreshSession(context.Background(), "rt-old")
		require.NoError(t, err)
		assert.Equal(t, "at-123", session.AccessToken)
		assert.Equal(t, "rt-456", session.RefreshToken)
	})

	t.Run("reused refresh token", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusBadRequest,
			`{"error":"invalid_grant","error_description":"Invalid Refresh Token: Already Used"}`)
		_, err := client.RefreshSession(context.Background(), "rt-old")
		require.Error(t, err)
		assert.Equal(t, "Invalid Refresh Token: Already Used", identity.Detail(err))
	})

	t.Run("missing session", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusOK, `{}`)
		_, err := client.RefreshSession(context.Background(), "rt-old")
		assert.ErrorIs(t, err, identity.ErrSessionMissing)
	})
}

func TestGoTrueClient_SignOut(t *testing.T) {
	t.Parallel()

	t.Run("successful sign-out", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusNoContent, "")
		assert.NoError(t, client.SignOut(context.Background(), "at-123"))
	})

	t.Run("rejected token", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusUnauthorized, `{"code":401,"msg":"invalid JWT"}`)
		err := client.SignOut(context.Background(), "at-123")
		require.Error(t, err)

		var pe *identity.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
		assert.Equal(t, "invalid JWT", pe.Message)
	})
}

func TestGoTrueClient_GetUser(t *testing.T) {
	t.Parallel()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusOK, userJSON(true))
		user, err := client.GetUser(context.Background(), "at-123")
		require.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
		assert.Equal(t, "Jane Doe", user.FullName)
		assert.True(t, user.EmailConfirmed)
		assert.Equal(t, time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), user.CreatedAt.UTC())
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusForbidden, `{"code":403,"msg":"invalid JWT: token is expired"}`)
		_, err := client.GetUser(context.Background(), "at-123")
		require.Error(t, err)
		assert.Equal(t, "invalid JWT: token is expired", identity.Detail(err))
	})

	t.Run("empty response body", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.StatusOK, `{}`)
		_, err := client.GetUser(context.Background(), "at-123")
		assert.ErrorIs(t, err, identity.ErrUserMissing)
	})
}

func TestGoTrueClient_RequestFormat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		switch r.URL.Path {
		case "/token":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			// Unauthenticated calls carry the API key as the bearer.
			assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(sessionJSON(true)))
		case "/user":
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(userJSON(true)))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := identity.NewGoTrueClient(srv.URL, "anon-key")

	_, err := client.SignInWithPassword(context.Background(), "jdoe@gmu.edu", "hunter22")
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "user-token")
	require.NoError(t, err)
}

func TestGoTrueClient_RateLimiter(t *testing.T) {
	t.Parallel()

	client := identity.NewGoTrueClient("http://localhost:1", "anon-key",
		identity.WithRateLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))

	// First call consumes the only token; the transport error proves the
	// limiter let it through.
	_, err := client.GetUser(context.Background(), "at-123")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "rate limit")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.GetUser(ctx, "at-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestDetail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "boom", identity.Detail(errors.New("boom")))
}
