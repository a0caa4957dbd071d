package models

import "time"

// Upload lifecycle states. The set is open-ended: states like "failed" or
// "deleted" can be added without breaking callers that match on strings.
const (
	// StatusPending marks a file whose metadata exists but whose bytes may
	// not have reached the object store yet.
	StatusPending = "pending"
	// StatusUploaded marks a file whose upload the client has confirmed.
	StatusUploaded = "upload"
)

// File describes server-side metadata for an object a client was authorized
// to write. The bytes themselves live in object storage under Key.
type File struct {
	// FileID is the server-assigned identifier.
	FileID string `json:"fileId"`
	// Name is the file name as chosen by the owner.
	Name string `json:"name"`
	// Type is the MIME content type the write credential is scoped to.
	Type string `json:"type"`
	// Key is the full object-store key. Unique across all owners.
	Key string `json:"key"`
	// Size is the client-declared size in bytes.
	Size int64 `json:"size"`
	// OwnerID is the principal owning the file.
	OwnerID string `json:"ownerId"`
	// FolderID references the containing folder; nil means the owner's root.
	FolderID *string `json:"folderId"`
	// Access is the visibility flag. Defaults to private (false).
	Access bool `json:"access"`
	// Status tracks the upload lifecycle (StatusPending, StatusUploaded).
	Status string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}
