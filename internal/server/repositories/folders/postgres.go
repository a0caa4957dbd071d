package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okomarov/driveup/internal/common"
	"github.com/okomarov/driveup/internal/dbx"
	"github.com/okomarov/driveup/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Find returns the folder for (ownerID, name), or common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	query := `
		SELECT folder_id, name, owner_id, path, created_at FROM folders
		WHERE owner_id = $1 AND name = $2
	`

	folder := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, ownerID, name).
		Scan(&folder.FolderID, &folder.Name, &folder.OwnerID, &folder.Path, &folder.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

// Create inserts a folder row. The (owner_id, name) uniqueness constraint is
// absorbed via ON CONFLICT DO NOTHING: when a concurrent request won the
// race, no row comes back and common.ErrorConflict is returned instead of
// the driver's uniqueness violation.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	query := `
		INSERT INTO folders (folder_id, name, owner_id, path)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, name) DO NOTHING
		RETURNING created_at
	`

	folder.FolderID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		folder.FolderID, folder.Name, folder.OwnerID, folder.Path).Scan(&folder.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}
