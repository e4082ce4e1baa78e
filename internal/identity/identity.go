// Package identity provides a client for the hosted identity provider's
// REST API (Supabase GoTrue) abstracted behind an interface for
// testability.
package identity

import (
	"context"
	"time"
)

// Gateway defines the identity provider operations the API depends on.
type Gateway interface {
	SignUp(ctx context.Context, email, password, fullName string) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*User, error)
}

// User is an account held by the identity provider.
type User struct {
	ID             string
	Email          string
	FullName       string
	EmailConfirmed bool
	CreatedAt      time.Time
}

// Session is a token pair issued for an authenticated user.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	TokenType    string
	User         *User
}
