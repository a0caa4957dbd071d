package files

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/okomarov/driveup/internal/common"
	"github.com/okomarov/driveup/internal/dbx"
	"github.com/okomarov/driveup/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file row and returns it with the generated id. The key
// column is unique process-wide; a duplicate key surfaces as a wrapped
// driver error since the key scheme makes honest collisions impossible.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (file_id, name, type, key, size, owner_id, folder_id, access, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	file.FileID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		file.FileID, file.Name, file.Type, file.Key, file.Size,
		file.OwnerID, file.FolderID, file.Access, file.Status).Scan(&file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// MarkUploaded transitions the file to the confirmed state. Repeating the
// call on an already confirmed row matches the same row again, so the
// operation is idempotent; zero matched rows means the id is unknown.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, fileID string) error {
	query := `UPDATE files SET status = 'upload' WHERE file_id = $1`

	result, err := r.db.ExecContext(ctx, query, fileID)
	if err != nil {
		return fmt.Errorf("failed to mark uploaded: %w", err)
	}

	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// SearchByName returns the owner's files whose name contains text,
// case-insensitively, newest first.
func (r *PostgresRepository) SearchByName(ctx context.Context, ownerID, text string) ([]*models.File, error) {
	query := `
		SELECT file_id, name, type, key, size, owner_id, folder_id, access, status, created_at
		FROM files
		WHERE owner_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		var folderID sql.NullString
		if err := rows.Scan(&item.FileID, &item.Name, &item.Type, &item.Key, &item.Size,
			&item.OwnerID, &folderID, &item.Access, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		if folderID.Valid {
			item.FolderID = &folderID.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
