// Package models holds the persisted domain records of the admin backend.
package models

import (
	"time"

	"github.com/ppandzharov/blogadmin/internal/server/auth"
)

// AdminUser is the administrative principal. ID and Email are immutable
// after provisioning; PasswordHash and Session are replaced wholesale by
// change-password and login/logout. Session is nil while no session is
// active.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash auth.PasswordHash
	Session      *auth.Session
	CreatedAt    time.Time
}
