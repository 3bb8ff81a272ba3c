package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

// adminIDKey carries the authenticated admin's id through the request
// context once the middleware has validated the session.
const adminIDKey contextKey = "adminID"

// requireAdmin validates the credential cookie against the stored session.
// Failures all look the same to the client: a 401 with a generic body.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, token := adminCookieValue(r)
		if err := s.auth.Authenticate(r.Context(), adminID, token); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
			return
		}
		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminIDFromContext returns the id stored by requireAdmin.
func adminIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(adminIDKey).(string)
	return id
}
