package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/identity"
)

// bearerToken extracts the credential from an Authorization header value.
// The scheme comparison is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// authenticate resolves an Authorization header to a verified user by
// asking the identity provider who the token belongs to. It returns the
// user together with the raw token so callers can forward it on
// follow-up calls such as sign-out.
func authenticate(
	ctx context.Context,
	gw identity.Gateway,
	authorization string,
) (*identity.User, string, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, "", huma.Error401Unauthorized("Authentication required. Please log in.")
	}

	user, err := gw.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrUserMissing) {
			return nil, "", huma.Error401Unauthorized("Invalid or expired token")
		}
		return nil, "", huma.Error401Unauthorized("Authentication failed: " + identity.Detail(err))
	}

	return user, token, nil
}
