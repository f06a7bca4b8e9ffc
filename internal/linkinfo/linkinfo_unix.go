//go:build unix

package linkinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// LinkCountSupported reports whether Stat returns real hard-link counts.
const LinkCountSupported = true

// Stat returns the metadata of the regular file at path.
// Symlinks are not followed.
func Stat(path string) (Metadata, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Metadata{}, fmt.Errorf("lstat %q: %w", path, err)
	}

	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return Metadata{}, fmt.Errorf("%q: %w", path, ErrNotRegular)
	}

	//nolint:gosec,unconvert // Field widths differ between platforms
	return Metadata{
		Size:  uint64(st.Size),
		Links: uint64(st.Nlink),
		ID:    ID{Dev: uint64(st.Dev), Ino: uint64(st.Ino)},
	}, nil
}
