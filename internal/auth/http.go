package auth

import (
	"net/http"
	"strings"

	"libraryManagement/repository"
)

// Middleware guards HTTP handlers with Bearer-token authentication.
// A missing token yields 401; an invalid or expired one yields 403.
type Middleware struct {
	Secret string
	Users  *repository.UserRepository
}

// Authenticate extracts and validates the Bearer JWT from the Authorization
// header and injects the Principal into the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid authorization header", http.StatusForbidden)
			return
		}
		p, err := ParseToken(strings.TrimSpace(parts[1]), m.Secret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAdmin ensures the principal claims admin AND that the underlying
// user record still has the admin flag. This prevents spoofing with a stale
// token after privileges were revoked. Must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "missing principal", http.StatusUnauthorized)
			return
		}
		if !p.Admin {
			http.Error(w, "admin privileges required", http.StatusForbidden)
			return
		}
		if m.Users == nil {
			http.Error(w, "users repository not configured", http.StatusInternalServerError)
			return
		}
		u, err := m.Users.GetByUsername(r.Context(), p.Username)
		if err != nil {
			http.Error(w, "get user failed", http.StatusInternalServerError)
			return
		}
		if u == nil || !u.Admin {
			http.Error(w, "admin privileges required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
