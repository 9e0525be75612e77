package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/response"
	"github.com/fiitrack/fii-portfolio-backend/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth validates the Bearer access token on every request and stores
// the authenticated user's ID in the request context. Requests without a
// valid token are rejected with 401 before reaching any handler.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.RespondError(w, http.StatusUnauthorized, "authorization header required", nil)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "authorization header must be a Bearer token", nil)
				return
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired token", err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user's ID from the request context.
// The empty string means the request did not pass through RequireAuth.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user ID, as RequireAuth
// would set it. Intended for tests that call handlers directly.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
