package folders

import (
	"context"

	"github.com/okomarov/driveup/internal/server/models"
)

// Repository stores folder records. Find and Create together implement the
// directory's find-or-create resolution; Create reports common.ErrorConflict
// when another request created the same (owner, name) pair first, so the
// caller can recover by re-reading.
type Repository interface {
	Find(ctx context.Context, ownerID, name string) (*models.Folder, error)
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
}
