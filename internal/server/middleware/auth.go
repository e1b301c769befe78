package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skillsage/backend/internal/server/handlers"
	"github.com/skillsage/backend/internal/server/token"
)

// AuthMiddleware gates a route behind a verified access token. This is the
// single point where the token signature is checked; handlers downstream
// re-read identity by decoding the same header without verifying again.
func AuthMiddleware(logger *slog.Logger, accessKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeAuthError(w, "A token is required for authentication", http.StatusForbidden)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format")
				writeAuthError(w, "Invalid Token", http.StatusUnauthorized)
				return
			}

			claims, err := token.Verify(accessKey, parts[1])
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				writeAuthError(w, "Invalid Token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)

			logger.Debug("user authenticated",
				"user_id", claims.UserID,
				"username", claims.Username,
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(`{"message":"` + message + `"}`))
}
