package auth

import (
	"crypto/subtle"
	"time"
)

// Authenticate reports whether the supplied token matches the active session
// at the given instant. It is a pure check over a fetched session: no
// session, a token mismatch, or an expired session all collapse to false —
// callers are not told which. The token comparison is constant-time. A
// session is valid through its expiry instant and invalid after it.
func Authenticate(sess *Session, token string, now time.Time) bool {
	if sess == nil || token == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(sess.Token), []byte(token)) != 1 {
		return false
	}
	return !now.After(sess.Expiry)
}
