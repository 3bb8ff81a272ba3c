package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ppandzharov/blogadmin/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin verifies the credentials and, on success, places the fresh
// session into the credential cookie. Every failure — malformed body,
// unknown email, wrong password, storage trouble — produces the same
// response body, so the endpoint cannot be used to probe for accounts.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}

	s.setAdminCookie(w, res.AdminID, res.Token, res.Expiry)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleAuthenticate reports whether the credential cookie still names a
// valid session.
func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	adminID, token := adminCookieValue(r)
	if err := s.auth.Authenticate(r.Context(), adminID, token); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleLogout invalidates the server-side session. It sits behind
// requireAdmin: a session must be proven before it can be revoked.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())
	if err := s.auth.Logout(r.Context(), adminID); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}
	s.clearAdminCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleRemoveCookie expires the credential cookie client-side without
// touching the server session. The admin frontend calls it when a stale
// cookie needs clearing.
func (s *Server) handleRemoveCookie(w http.ResponseWriter, r *http.Request) {
	s.clearAdminCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// handleChangePassword maps the service's three outcomes onto the response
// shapes the frontend distinguishes: success, a wrong current password, or a
// generic submit error.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}

	adminID := adminIDFromContext(r.Context())
	err := s.auth.ChangePassword(r.Context(), adminID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case errors.Is(err, common.ErrInvalidCurrentPassword):
		writeJSON(w, http.StatusOK, map[string]any{"invalidPasswordCredentialError": true})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"submitError": true})
	}
}
