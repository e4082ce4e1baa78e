package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/identity"
)

// AuthHandler handles account endpoints by delegating to the identity
// provider. It holds no state of its own; tokens live with the caller.
type AuthHandler struct {
	identity identity.Gateway
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gw identity.Gateway) *AuthHandler {
	return &AuthHandler{identity: gw}
}

// --- Input/Output types ---

// SignupInput is the request body for account registration.
type SignupInput struct {
	Body struct {
		Email    string `json:"email"     pattern:"^[a-zA-Z0-9._%+-]+@gmu\.edu$" doc:"GMU email address"`
		Password string `json:"password"  minLength:"6"                          doc:"Password, at least 6 characters"`
		FullName string `json:"full_name" minLength:"1" maxLength:"100"          doc:"Display name"`
	}
}

// SignupOutput is the response for account registration.
type SignupOutput struct {
	Body struct {
		Message        string `json:"message"`
		UserID         string `json:"user_id"`
		Email          string `json:"email"`
		EmailConfirmed bool   `json:"email_confirmed"`
	}
}

// LoginInput is the request body for password login.
type LoginInput struct {
	Body struct {
		Email    string `json:"email"    minLength:"1"`
		Password string `json:"password" minLength:"1"`
	}
}

// LoginOutput is the response for a successful login.
type LoginOutput struct {
	Body struct {
		UserID       string `json:"user_id"`
		Email        string `json:"email"`
		FullName     string `json:"full_name"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
		TokenType    string `json:"token_type"`
	}
}

// LogoutInput carries the bearer token to invalidate.
type LogoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
}

// LogoutOutput is the response for a successful logout.
type LogoutOutput struct {
	Body struct {
		Message string `json:"message"`
		UserID  string `json:"user_id"`
	}
}

// MeInput carries the bearer token identifying the caller.
type MeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
}

// MeOutput is the response describing the authenticated user.
type MeOutput struct {
	Body struct {
		UserID         string    `json:"user_id"`
		Email          string    `json:"email"`
		FullName       string    `json:"full_name"`
		EmailConfirmed bool      `json:"email_confirmed"`
		CreatedAt      time.Time `json:"created_at"`
	}
}

// RefreshInput is the request body for rotating a session.
type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" doc:"Refresh token from a previous login"`
	}
}

// RefreshOutput is the response carrying the rotated token pair.
type RefreshOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
		TokenType    string `json:"token_type"`
	}
}

// --- Handlers ---

// Signup registers a new account. The provider sends the verification
// email; the account stays unconfirmed until the link is followed.
func (h *AuthHandler) Signup(
	ctx context.Context,
	input *SignupInput,
) (*SignupOutput, error) {
	user, err := h.identity.SignUp(ctx, input.Body.Email, input.Body.Password, input.Body.FullName)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrAlreadyRegistered):
			return nil, huma.Error400BadRequest("This email is already registered")
		case errors.Is(err, identity.ErrUserMissing):
			return nil, huma.Error400BadRequest("Signup failed. Email may already be registered.")
		default:
			return nil, huma.Error400BadRequest("Signup failed: " + identity.Detail(err))
		}
	}

	resp := &SignupOutput{}
	resp.Body.Message = "Signup successful! Please check your GMU email to verify your account."
	resp.Body.UserID = user.ID
	resp.Body.Email = user.Email
	resp.Body.EmailConfirmed = user.EmailConfirmed

	return resp, nil
}

// Login exchanges credentials for a token pair. Unverified accounts are
// rejected even when the provider issues a session.
func (h *AuthHandler) Login(
	ctx context.Context,
	input *LoginInput,
) (*LoginOutput, error) {
	sess, err := h.identity.SignInWithPassword(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredentials),
			errors.Is(err, identity.ErrSessionMissing),
			errors.Is(err, identity.ErrUserMissing):
			return nil, huma.Error401Unauthorized("Invalid email or password")
		case errors.Is(err, identity.ErrEmailNotConfirmed):
			return nil, huma.Error403Forbidden(verifyEmailDetail)
		default:
			return nil, huma.Error500InternalServerError("Login failed: " + identity.Detail(err))
		}
	}

	if !sess.User.EmailConfirmed {
		return nil, huma.Error403Forbidden(verifyEmailDetail)
	}

	resp := &LoginOutput{}
	resp.Body.UserID = sess.User.ID
	resp.Body.Email = sess.User.Email
	resp.Body.FullName = sess.User.FullName
	resp.Body.AccessToken = sess.AccessToken
	resp.Body.RefreshToken = sess.RefreshToken
	resp.Body.ExpiresIn = sess.ExpiresIn
	resp.Body.TokenType = "bearer"

	return resp, nil
}

const verifyEmailDetail = "Please verify your email address before logging in. " +
	"Check your inbox for the verification link."

// Logout invalidates the caller's session at the provider.
func (h *AuthHandler) Logout(
	ctx context.Context,
	input *LogoutInput,
) (*LogoutOutput, error) {
	user, token, err := authenticate(ctx, h.identity, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := h.identity.SignOut(ctx, token); err != nil {
		return nil, huma.Error500InternalServerError("Logout failed: " + identity.Detail(err))
	}

	resp := &LogoutOutput{}
	resp.Body.Message = "Logged out successfully"
	resp.Body.UserID = user.ID

	return resp, nil
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(
	ctx context.Context,
	input *MeInput,
) (*MeOutput, error) {
	user, _, err := authenticate(ctx, h.identity, input.Authorization)
	if err != nil {
		return nil, err
	}

	resp := &MeOutput{}
	resp.Body.UserID = user.ID
	resp.Body.Email = user.Email
	resp.Body.FullName = user.FullName
	resp.Body.EmailConfirmed = user.EmailConfirmed
	resp.Body.CreatedAt = user.CreatedAt

	return resp, nil
}

// Refresh rotates a refresh token into a fresh token pair.
func (h *AuthHandler) Refresh(
	ctx context.Context,
	input *RefreshInput,
) (*RefreshOutput, error) {
	sess, err := h.identity.RefreshSession(ctx, input.Body.RefreshToken)
	if err != nil {
		if errors.Is(err, identity.ErrSessionMissing) {
			return nil, huma.Error401Unauthorized("Invalid or expired refresh token")
		}
		return nil, huma.Error401Unauthorized("Token refresh failed: " + identity.Detail(err))
	}

	resp := &RefreshOutput{}
	resp.Body.AccessToken = sess.AccessToken
	resp.Body.RefreshToken = sess.RefreshToken
	resp.Body.ExpiresIn = sess.ExpiresIn
	resp.Body.TokenType = "bearer"

	return resp, nil
}

// RegisterAuthRoutes registers auth endpoints with the Huma API.
func RegisterAuthRoutes(api huma.API, h *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/auth/signup",
		Summary:     "Register a new account",
		Description: "Registers a GMU email account. A verification email is sent automatically.",
		Tags:        []string{"Authentication"},
		Errors:      []int{http.StatusBadRequest},
	}, h.Signup)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for a bearer token pair. Requires a verified email.",
		Tags:        []string{"Authentication"},
		Errors:      []int{http.StatusUnauthorized, http.StatusForbidden},
	}, h.Login)

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/auth/logout",
		Summary:     "Log out",
		Description: "Invalidates the caller's session at the identity provider.",
		Tags:        []string{"Authentication"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.Logout)

	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Get the current user",
		Description: "Returns the profile of the authenticated user.",
		Tags:        []string{"Authentication"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.Me)

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh a session",
		Description: "Rotates a refresh token into a new access and refresh token pair.",
		Tags:        []string{"Authentication"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.Refresh)
}
