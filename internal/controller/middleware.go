// internal/controller/middleware.go
package controller

import (
	"context"
	"net/http"

	"github.com/erickrivasgomez/bidxaagui-backend-worker/internal/auth"
)

type contextKey string

const sessionKey contextKey = "session"

// CORS attaches the cross-origin headers to every response and short-circuits
// preflight requests with a bare 204. Production pins the origin to the admin
// panel; everything else is wide open for local development.
func CORS(production bool, adminURL string) func(http.Handler) http.Handler {
	origin := "*"
	if production {
		origin = adminURL
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth gates admin routes behind a valid bearer session token and
// stashes the verified claims in the request context.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := tokens.FromRequest(r)
			if claims == nil {
				respondError(w, http.StatusUnauthorized, "Unauthorized. Please login.")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the claims RequireAuth stored, or nil on
// unauthenticated routes.
func SessionFromContext(ctx context.Context) *auth.SessionClaims {
	claims, _ := ctx.Value(sessionKey).(*auth.SessionClaims)
	return claims
}
