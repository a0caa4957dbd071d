// Package models defines server-side data models persisted in the database.
package models

import "time"

// Folder groups an owner's files under a shared key prefix. At most one
// folder exists per (OwnerID, Name) pair.
type Folder struct {
	// FolderID is the server-assigned identifier.
	FolderID string `json:"folderId"`
	// Name is the folder name as chosen by the owner. Never contains the
	// key separator.
	Name string `json:"name"`
	// OwnerID is the principal owning the folder.
	OwnerID string `json:"ownerId"`
	// Path is the stable object-key prefix, "ownerID/name".
	Path string `json:"path"`

	CreatedAt time.Time `json:"createdAt"`
}
