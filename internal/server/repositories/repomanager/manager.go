package repomanager

import (
	"context"
	"database/sql"

	"github.com/okomarov/driveup/internal/dbx"
	"github.com/okomarov/driveup/internal/server/repositories/files"
	"github.com/okomarov/driveup/internal/server/repositories/folders"
)

// RepositoryManager vends repositories bound to a DBTX (plain connection or
// transaction) and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Folders(db dbx.DBTX) folders.Repository
	Files(db dbx.DBTX) files.Repository
}
