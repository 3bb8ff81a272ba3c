package httpapi

import (
	"net/http"
	"strings"
	"time"
)

// adminCookieName is the cookie carrying the admin's credential as
// "<admin id>&<session token>".
const adminCookieName = "adminUser"

// adminCookieValue splits the credential cookie into its id and token
// halves. Missing or malformed cookies yield empty strings, which the
// service rejects before any lookup.
func adminCookieValue(r *http.Request) (adminID, token string) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil {
		return "", ""
	}
	parts := strings.SplitN(cookie.Value, "&", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// setAdminCookie attaches the session credential to the response. The cookie
// expires together with the session token, is HttpOnly to keep scripts away
// from it, and is marked Secure in production.
func (s *Server) setAdminCookie(w http.ResponseWriter, adminID, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    adminID + "&" + token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearAdminCookie expires the credential cookie on the client.
func (s *Server) clearAdminCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}
