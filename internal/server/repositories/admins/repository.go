// Package admins declares the credential store contract: persistence of the
// admin principal's hashed password and active session.
package admins

import (
	"context"

	"github.com/ppandzharov/blogadmin/internal/server/models"
)

// Repository defines operations over stored admin principals. The store is
// generic over principals even though the surrounding application only ever
// provisions one; uniqueness of id and email is enforced by the schema.
type Repository interface {
	// Create inserts a new admin principal. Used by out-of-band provisioning
	// only; the running service never creates principals.
	Create(ctx context.Context, admin *models.AdminUser) error

	// FindByEmail returns the principal with the given email, or
	// common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)

	// FindByID returns the principal with the given id, or
	// common.ErrorNotFound.
	FindByID(ctx context.Context, id string) (*models.AdminUser, error)

	// Save atomically replaces the principal's mutable fields: password
	// hash, session token, and session expiry. A Save error is a storage
	// fault, never an authentication outcome.
	Save(ctx context.Context, admin *models.AdminUser) error
}
