// Package repomanager hands out repositories bound to a DB handle and runs
// schema migrations. Passing a *sql.Tx instead of the *sql.DB yields
// transactional repositories.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/ppandzharov/blogadmin/internal/dbx"
	"github.com/ppandzharov/blogadmin/internal/server/repositories/admins"
	"github.com/ppandzharov/blogadmin/internal/server/repositories/posts"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Admins(db dbx.DBTX) admins.Repository
	Posts(db dbx.DBTX) posts.Repository
}
