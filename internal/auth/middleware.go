package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
)

type contextKey struct{}

var identityKey contextKey

// IdentityFromContext returns the identity stored by Middleware, or nil
// when the request never went through it.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return nil
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || scheme != "Bearer" {
		return ""
	}
	return token
}

// Middleware verifies the bearer token and stores the caller identity in
// the request context. requiredRole gates the whole subtree it wraps.
func (s *Service) Middleware(requiredRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := s.VerifyToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := Authorize(identity.Role, requiredRole); err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
