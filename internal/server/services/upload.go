// Package services implements the upload orchestration core: resolving
// folders, deriving object keys, persisting file metadata and issuing scoped
// write credentials.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/okomarov/driveup/internal/common"
	"github.com/okomarov/driveup/internal/objectkey"
	sc "github.com/okomarov/driveup/internal/server/config"
	"github.com/okomarov/driveup/internal/server/models"
	"github.com/okomarov/driveup/internal/server/repositories/repomanager"
)

// ObjectStore is the capability the services need from the object-store
// client: minting time-limited write URLs and writing folder markers.
type ObjectStore interface {
	PresignPutURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PutFolderMarker(ctx context.Context, key string) error
}

// UploadRequest carries the client-declared metadata for an upload.
type UploadRequest struct {
	FileName   string
	FileType   string
	FileSize   int64
	FolderName string
}

// UploadGrant is what the client needs to perform the upload itself:
// the signed URL, the metadata row id to confirm against, and the key.
type UploadGrant struct {
	URL    string
	FileID string
	Key    string
}

// UploadService composes the folder directory, the key namespace, the file
// metadata store and the credential issuer per request.
type UploadService struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	store   ObjectStore
	folders *FolderService
	config  *sc.Config
}

func NewUploadService(db *sql.DB, repos repomanager.RepositoryManager, store ObjectStore, folders *FolderService, config *sc.Config) *UploadService {
	return &UploadService{
		db:      db,
		repos:   repos,
		store:   store,
		folders: folders,
		config:  config,
	}
}

func (s *UploadService) validate(req UploadRequest) error {
	if err := objectkey.ValidateComponent(req.FileName); err != nil {
		return fmt.Errorf("fileName: %w", err)
	}
	if req.FileType == "" {
		return fmt.Errorf("%w: fileType is required", common.ErrorValidation)
	}
	if req.FileSize <= 0 {
		return fmt.Errorf("%w: fileSize is required", common.ErrorValidation)
	}
	if req.FolderName != "" {
		if err := objectkey.ValidateComponent(req.FolderName); err != nil {
			return fmt.Errorf("folderName: %w", err)
		}
	}
	return nil
}

// RequestUpload validates the request, resolves (or lazily creates) the
// folder, persists a pending metadata row and issues the write credential.
// The row exists before the client ever holds a credential, so every key a
// client could write to has a record even for abandoned uploads. When
// credential issuance fails after the insert, the pending row stays behind;
// reconciling such rows is a separate sweep, not this path's job.
func (s *UploadService) RequestUpload(ctx context.Context, ownerID string, req UploadRequest) (*UploadGrant, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var folderID *string
	if req.FolderName != "" {
		folder, err := s.folders.ResolveOrCreate(ctx, ownerID, req.FolderName)
		if err != nil {
			return nil, err
		}
		folderID = &folder.FolderID
	}

	key := objectkey.ForFile(ownerID, req.FolderName, req.FileName)

	file, err := s.repos.Files(s.db).Create(ctx, &models.File{
		Name:     req.FileName,
		Type:     req.FileType,
		Key:      key,
		Size:     req.FileSize,
		OwnerID:  ownerID,
		FolderID: folderID,
		Access:   false,
		Status:   models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating file record: %w", err)
	}

	url, err := s.store.PresignPutURL(ctx, key, req.FileType, s.config.SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("error issuing write credential: %w", err)
	}

	return &UploadGrant{URL: url, FileID: file.FileID, Key: key}, nil
}

// ConfirmUpload records the client's report that the upload finished. The
// reported status is required but otherwise ignored: the transition is
// always pending -> upload, and confirming an already confirmed file is a
// no-op. The object's actual presence in the store is not verified; this
// trusts client self-report (a known weak point of the contract).
func (s *UploadService) ConfirmUpload(ctx context.Context, fileID, reportedStatus string) error {
	if fileID == "" {
		return fmt.Errorf("%w: fileId is required", common.ErrorValidation)
	}
	if reportedStatus == "" {
		return fmt.Errorf("%w: status is required", common.ErrorValidation)
	}

	if err := s.repos.Files(s.db).MarkUploaded(ctx, fileID); err != nil {
		return fmt.Errorf("error updating file: %w", err)
	}

	return nil
}

// CreateFolder creates a folder on explicit client request.
func (s *UploadService) CreateFolder(ctx context.Context, ownerID, folderName string) (*models.Folder, error) {
	return s.folders.CreateExplicit(ctx, ownerID, folderName)
}

// SearchFiles returns the owner's files whose name contains text.
func (s *UploadService) SearchFiles(ctx context.Context, ownerID, text string) ([]*models.File, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: search text is required", common.ErrorValidation)
	}
	return s.repos.Files(s.db).SearchByName(ctx, ownerID, text)
}
