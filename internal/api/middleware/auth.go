package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth resolves the Authorization header to a session and stores it in the
// request context. The header may carry "Bearer <token>" or a bare token.
// Requests without a resolvable session get the 401 error envelope.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := authService.ResolveToken(r.Context(), r.Header.Get("Authorization"))
			if session == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the caller session stored by Auth, or nil on routes that
// did not pass through it.
func Identity(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(identityKey).(*domain.Session)
	return session
}
