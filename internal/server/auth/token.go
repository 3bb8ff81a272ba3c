package auth

import (
	"crypto/rand"
	"time"
)

// Session is an issued bearer credential: an opaque token paired with its
// expiry. Modelling the pair as one value makes the both-or-neither rule on
// the stored token/expiry columns structural — an admin either has a
// *Session or nil, never half of one.
type Session struct {
	Token  string
	Expiry time.Time
}

const (
	tokenLength  = 40
	tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Issuer mints session tokens with a fixed lifetime.
type Issuer struct {
	lifetime time.Duration
}

func NewIssuer(lifetime time.Duration) *Issuer {
	return &Issuer{lifetime: lifetime}
}

// Issue generates a fresh session: a 40-character alphanumeric token drawn
// from crypto/rand and an expiry of now+lifetime. Issue has no persistence
// side effect; storing the session is the caller's job.
func (i *Issuer) Issue() (*Session, error) {
	token, err := randString(tokenLength, tokenCharset)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Expiry: time.Now().Add(i.lifetime)}, nil
}

// randString draws n characters from charset using crypto/rand. Bytes at or
// above the largest multiple of len(charset) are discarded to avoid modulo
// bias.
func randString(n int, charset string) (string, error) {
	limit := 256 - 256%len(charset)
	out := make([]byte, 0, n)
	buf := make([]byte, 2*n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, charset[int(b)%len(charset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
