// Package auth implements the credential primitives of the admin backend:
// password hashing, session token issuance, session validation, and signed
// draft-preview tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHash is a salted bcrypt digest of the admin password. The distinct
// type keeps raw plaintext from reaching storage: repositories only accept a
// PasswordHash, and the only way to produce one is HashPassword.
type PasswordHash string

// HashPassword derives a salted hash from plaintext using the given bcrypt
// cost. A fresh salt is generated on every call, so hashing the same
// plaintext twice yields different digests that both verify.
func HashPassword(plaintext string, cost int) (PasswordHash, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return PasswordHash(b), nil
}

// Verify reports whether plaintext reproduces the digest under the salt
// embedded in it. A mismatch yields false, never an error.
func (h PasswordHash) Verify(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(plaintext)) == nil
}
