// Package common defines shared sentinel errors used across the blog admin
// backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ChangePassword is the one operation that exposes a distinct failure:
	// the caller already holds a valid session, so telling it the current
	// password was wrong does not leak anything new.
	ErrInvalidCurrentPassword = errors.New("invalid current password")

	// Preview-token errors (invalid or expired signed token).
	ErrInvalidPreviewToken = errors.New("invalid preview token")
)
