// Package objectkey derives object-store keys for files and folder markers.
// The whole bucket is shared across owners and partitioned only by the
// owner-prefixed key scheme, so every key starts with the owner ID and
// no component may contain the separator.
package objectkey

import (
	"fmt"
	"strings"

	"github.com/okomarov/driveup/internal/common"
)

// Separator splits key components. Owner IDs, folder names and file names
// must never contain it.
const Separator = "/"

// ValidateComponent rejects empty components and components containing the
// key separator. Distinct (owner, folder, name) triples map to distinct keys
// only under this restriction.
func ValidateComponent(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", common.ErrorValidation)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: name %q contains %q", common.ErrorValidation, name, Separator)
	}
	return nil
}

// ForFile returns the object key for a file. folderName may be empty, in
// which case the file lives at the owner's root.
func ForFile(ownerID, folderName, fileName string) string {
	if folderName == "" {
		return ownerID + Separator + fileName
	}
	return ownerID + Separator + folderName + Separator + fileName
}

// ForFolderMarker returns the key of the zero-byte object denoting folder
// existence. The trailing separator distinguishes it from a file key.
func ForFolderMarker(ownerID, folderName string) string {
	return ownerID + Separator + folderName + Separator
}

// FolderPath returns the stable path stored on a folder record. It matches
// the prefix used by ForFile for files inside that folder.
func FolderPath(ownerID, folderName string) string {
	return ownerID + Separator + folderName
}
