// Package services contains server-side business logic. This file implements
// AuthService, which handles admin login, session authentication, logout, and
// password changes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ppandzharov/blogadmin/internal/common"
	"github.com/ppandzharov/blogadmin/internal/logging"
	"github.com/ppandzharov/blogadmin/internal/server/auth"
	"github.com/ppandzharov/blogadmin/internal/server/config"
	"github.com/ppandzharov/blogadmin/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login hands to the transport layer, which
// is responsible for placing it into a client-held credential (the cookie).
type LoginResult struct {
	AdminID string
	Token   string
	Expiry  time.Time
}

// AuthService provides authentication operations for the admin principal:
//   - Login: verify the password and issue a fresh session
//   - Authenticate: validate a presented (admin id, token) pair
//   - Logout: invalidate the active session
//   - ChangePassword: replace the stored password hash
//
// Login and Authenticate collapse every failure into ErrorUnauthorized so a
// caller cannot tell an unknown email from a bad password from an expired
// session. Storage and hasher faults are logged internally as distinct,
// actionable errors before being collapsed.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	bcryptCost  int
	logger      logging.Logger
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		issuer:      auth.NewIssuer(cfg.SessionLifetime),
		bcryptCost:  cfg.BcryptCost,
		logger:      l.With("module", "auth_service"),
	}
}

// Login verifies the email/password pair and, on success, issues and persists
// a new session, superseding any previous one. The token counts as issued
// only once persisted: a save failure means the caller gets no token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Admins(s.db)

	admin, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "admin lookup failed", "error", err)
		}
		return nil, common.ErrorUnauthorized
	}

	if !admin.PasswordHash.Verify(password) {
		return nil, common.ErrorUnauthorized
	}

	sess, err := s.issuer.Issue()
	if err != nil {
		s.logger.Error(ctx, "session issuance failed", "error", err)
		return nil, common.ErrorUnauthorized
	}

	admin.Session = sess
	if err := repo.Save(ctx, admin); err != nil {
		s.logger.Error(ctx, "session save failed", "error", err)
		return nil, common.ErrorUnauthorized
	}

	return &LoginResult{AdminID: admin.ID, Token: sess.Token, Expiry: sess.Expiry}, nil
}

// Authenticate validates a presented (admin id, token) pair against the
// stored session at the current time. Empty inputs fail without touching the
// store. It never mutates state.
func (s *AuthService) Authenticate(ctx context.Context, adminID, token string) error {
	if adminID == "" || token == "" {
		return common.ErrorUnauthorized
	}

	repo := s.repomanager.Admins(s.db)
	admin, err := repo.FindByID(ctx, adminID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "admin lookup failed", "error", err)
		}
		return common.ErrorUnauthorized
	}

	if !auth.Authenticate(admin.Session, token, time.Now()) {
		return common.ErrorUnauthorized
	}
	return nil
}

// Logout clears the admin's active session; any previously issued token
// becomes immediately unusable. Callers are expected to have authenticated
// the session first.
func (s *AuthService) Logout(ctx context.Context, adminID string) error {
	repo := s.repomanager.Admins(s.db)

	admin, err := repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "admin lookup failed", "error", err)
		return common.ErrorInternal
	}

	admin.Session = nil
	if err := repo.Save(ctx, admin); err != nil {
		s.logger.Error(ctx, "session clear failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// ChangePassword replaces the stored hash after verifying the current
// password. A wrong current password yields ErrInvalidCurrentPassword — the
// caller already holds a valid session, so this is deliberately more
// specific than login failures. Every other failure collapses into
// ErrorInternal. The active session, if any, stays valid across the change.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	repo := s.repomanager.Admins(s.db)

	admin, err := repo.FindByID(ctx, adminID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "admin lookup failed", "error", err)
		}
		return common.ErrorInternal
	}

	if !admin.PasswordHash.Verify(currentPassword) {
		return common.ErrInvalidCurrentPassword
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return common.ErrorInternal
	}

	admin.PasswordHash = hash
	if err := repo.Save(ctx, admin); err != nil {
		s.logger.Error(ctx, "password save failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}
