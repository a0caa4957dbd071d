package files

import (
	"context"

	"github.com/okomarov/driveup/internal/server/models"
)

// Repository stores file metadata rows. A row is created before the client
// ever receives a write credential, so every key a client was authorized to
// write to has a record even if the upload is abandoned.
type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	MarkUploaded(ctx context.Context, fileID string) error
	SearchByName(ctx context.Context, ownerID, text string) ([]*models.File, error)
}
