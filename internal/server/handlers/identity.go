package handlers

import (
	"net/http"
	"strings"

	"github.com/skillsage/backend/internal/server/token"
)

type contextKey string

const (
	// UserIDKey holds the verified user_id in the request context
	UserIDKey contextKey = "user_id"
	// UsernameKey holds the verified username in the request context
	UsernameKey contextKey = "username"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// identity recovers the claimed identity from the request's bearer token by
// decoding it without verification. Routes reaching this have already had the
// signature verified by the access middleware; this is the cheap second read
// of the same token, not an auth check. Calling it on an ungated route trusts
// the claims as presented.
func identity(r *http.Request) (*token.Claims, error) {
	return token.Decode(bearerToken(r))
}
