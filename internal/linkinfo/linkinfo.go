// Package linkinfo reads the size, hard-link count and storage identity of a
// file with a single metadata query.
package linkinfo

import "errors"

// ErrNotRegular is returned for paths that no longer denote a regular file.
var ErrNotRegular = errors.New("not a regular file")

// ID identifies the underlying data of a file on one machine: the device (or
// volume) it lives on and its inode (or file index) there.
type ID struct {
	Dev uint64 `json:"dev"`
	Ino uint64 `json:"ino"`
}

// Metadata is a point-in-time snapshot of a regular file.
type Metadata struct {
	// Size is the byte length of the file content.
	Size uint64 `json:"size"`
	// Links is the number of directory entries pointing at the same data.
	Links uint64 `json:"links"`
	// ID is the storage identity. It is zero when LinkCountSupported is false.
	ID ID `json:"id"`
}

// Shared reports whether more than one hard link points at the file's data.
func (m Metadata) Shared() bool {
	return m.Links > 1
}
