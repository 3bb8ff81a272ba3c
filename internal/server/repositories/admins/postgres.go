package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ppandzharov/blogadmin/internal/common"
	"github.com/ppandzharov/blogadmin/internal/dbx"
	"github.com/ppandzharov/blogadmin/internal/server/auth"
	"github.com/ppandzharov/blogadmin/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash, session_token, session_expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	token, expiry := sessionColumns(admin.Session)
	if _, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Email, string(admin.PasswordHash), token, expiry); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, session_token, session_expires_at
		FROM admin_users
		WHERE email = $1
	`
	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, session_token, session_expires_at
		FROM admin_users
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

// Save replaces the mutable columns in a single UPDATE so racing writers are
// serialized by the row: whichever statement commits last wins wholesale.
func (r *PostgresRepository) Save(ctx context.Context, admin *models.AdminUser) error {
	query := `
		UPDATE admin_users
		SET password_hash = $2, session_token = $3, session_expires_at = $4
		WHERE id = $1
	`
	token, expiry := sessionColumns(admin.Session)
	res, err := r.db.ExecContext(ctx, query, admin.ID, string(admin.PasswordHash), token, expiry)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	var hash string
	var token sql.NullString
	var expiry sql.NullTime

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&admin.ID, &admin.Email, &hash, &token, &expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	admin.PasswordHash = auth.PasswordHash(hash)
	if token.Valid && expiry.Valid {
		admin.Session = &auth.Session{Token: token.String, Expiry: expiry.Time}
	}
	return admin, nil
}

// sessionColumns splits an optional session into the two nullable columns.
func sessionColumns(sess *auth.Session) (sql.NullString, sql.NullTime) {
	if sess == nil {
		return sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: sess.Token, Valid: true},
		sql.NullTime{Time: sess.Expiry, Valid: true}
}
