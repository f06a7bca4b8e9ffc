//go:build windows

package linkinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// LinkCountSupported reports whether Stat returns real hard-link counts.
const LinkCountSupported = true

// Stat returns the metadata of the regular file at path.
// Reparse points (symlinks, junctions) are not followed.
func Stat(path string) (Metadata, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("encoding %q: %w", path, err)
	}

	// Zero access rights are enough to query attributes.
	handle, err := windows.CreateFile(
		name,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OPEN_REPARSE_POINT,
		0,
	)
	if err != nil {
		return Metadata{}, fmt.Errorf("opening %q: %w", path, err)
	}
	defer windows.CloseHandle(handle) //nolint:errcheck // Read-only handle

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &info); err != nil {
		return Metadata{}, fmt.Errorf("querying %q: %w", path, err)
	}

	const notRegular = windows.FILE_ATTRIBUTE_DIRECTORY | windows.FILE_ATTRIBUTE_REPARSE_POINT | windows.FILE_ATTRIBUTE_DEVICE
	if info.FileAttributes&notRegular != 0 {
		return Metadata{}, fmt.Errorf("%q: %w", path, ErrNotRegular)
	}

	return Metadata{
		Size:  uint64(info.FileSizeHigh)<<32 | uint64(info.FileSizeLow),
		Links: uint64(info.NumberOfLinks),
		ID: ID{
			Dev: uint64(info.VolumeSerialNumber),
			Ino: uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow),
		},
	}, nil
}
