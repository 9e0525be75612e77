package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiitrack/fii-portfolio-backend/internal/auth"
)

func newAuthTestHandler(t *testing.T) (http.Handler, *auth.JWTManager, *string) {
	t.Helper()

	manager := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return RequireAuth(manager)(next), manager, &seenUserID
}

func TestRequireAuth(t *testing.T) {
	t.Run("passes a valid bearer token through", func(t *testing.T) {
		handler, manager, seenUserID := newAuthTestHandler(t)

		token, err := manager.GenerateAccessToken("user-1", "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateAccessToken failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/fiis", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if *seenUserID != "user-1" {
			t.Errorf("Expected user-1 in context, got %q", *seenUserID)
		}
	})

	t.Run("rejects a missing Authorization header", func(t *testing.T) {
		handler, _, _ := newAuthTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/fiis", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		handler, _, _ := newAuthTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/fiis", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		handler, _, _ := newAuthTestHandler(t)

		other := auth.NewJWTManager("other-secret", 15*time.Minute, 24*time.Hour)
		token, err := other.GenerateAccessToken("user-1", "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateAccessToken failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/fiis", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}
