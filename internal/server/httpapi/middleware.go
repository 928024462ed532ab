package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/docshare/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// userFromContext returns the authenticated user placed by authenticate.
func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// authenticate resolves the Authorization bearer token to a user and stores
// it in the request context. Any failure is a plain 401; the response never
// says which check failed.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		user, err := s.users.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireOps admits only accounts with the ops capability.
func (s *Server) requireOps(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if !user.IsOps {
			writeError(w, http.StatusForbidden, "ops access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireVerified admits only verified accounts.
func (s *Server) requireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if !user.Verified {
			writeError(w, http.StatusForbidden, "email not verified")
			return
		}
		next.ServeHTTP(w, r)
	})
}
