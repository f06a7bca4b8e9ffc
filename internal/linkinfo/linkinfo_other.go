//go:build !unix && !windows

package linkinfo

import (
	"fmt"
	"os"
)

// LinkCountSupported reports whether Stat returns real hard-link counts.
//
// This platform exposes no link count, so every file reports one link and
// counts as unshared.
const LinkCountSupported = false

// Stat returns the metadata of the regular file at path.
// Symlinks are not followed.
func Stat(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("lstat %q: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return Metadata{}, fmt.Errorf("%q: %w", path, ErrNotRegular)
	}

	return Metadata{Size: uint64(info.Size()), Links: 1}, nil //nolint:gosec // Size is never negative
}
