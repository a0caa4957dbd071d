package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/okomarov/driveup/internal/common"
	"github.com/okomarov/driveup/internal/dbx"
	"github.com/okomarov/driveup/internal/objectkey"
	"github.com/okomarov/driveup/internal/server/models"
	"github.com/okomarov/driveup/internal/server/repositories/repomanager"
)

// FolderService owns the folder-uniqueness invariant: for a given
// (owner, name) pair at most one folder record exists, whether it was
// created implicitly during an upload or explicitly by the client.
type FolderService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	store ObjectStore
}

func NewFolderService(db *sql.DB, repos repomanager.RepositoryManager, store ObjectStore) *FolderService {
	return &FolderService{
		db:    db,
		repos: repos,
		store: store,
	}
}

// ResolveOrCreate returns the folder for (ownerID, name), creating it when
// absent. Find-then-create runs without a lock, so a concurrent request may
// win the insert; the loser recovers by re-reading instead of surfacing the
// uniqueness violation.
func (s *FolderService) ResolveOrCreate(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	repo := s.repos.Folders(s.db)

	folder, err := repo.Find(ctx, ownerID, name)
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error resolving folder: %w", err)
	}

	folder, err = repo.Create(ctx, &models.Folder{
		Name:    name,
		OwnerID: ownerID,
		Path:    objectkey.FolderPath(ownerID, name),
	})
	if err == nil {
		return folder, nil
	}
	if errors.Is(err, common.ErrorConflict) {
		// lost the race; the winner's row exists now
		return repo.Find(ctx, ownerID, name)
	}

	return nil, fmt.Errorf("error creating folder: %w", err)
}

// CreateExplicit creates the folder record and writes the zero-byte marker
// object denoting the folder in the flat key namespace. The row insert runs
// inside a transaction that only commits after the marker write succeeded,
// so a folder row never exists without its marker. Repeating the call for an
// existing folder returns that folder unchanged.
func (s *FolderService) CreateExplicit(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	if err := objectkey.ValidateComponent(name); err != nil {
		return nil, err
	}

	var folder *models.Folder
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		f, err := s.repos.Folders(tx).Create(ctx, &models.Folder{
			Name:    name,
			OwnerID: ownerID,
			Path:    objectkey.FolderPath(ownerID, name),
		})
		if err != nil {
			return err
		}

		if err := s.store.PutFolderMarker(ctx, objectkey.ForFolderMarker(ownerID, name)); err != nil {
			return err
		}

		folder = f
		return nil
	})
	if errors.Is(err, common.ErrorConflict) {
		return s.repos.Folders(s.db).Find(ctx, ownerID, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}

	return folder, nil
}
