// Package storage locates a default scan root from a storage INI file.
//
// The file's first line has the form "Key = Value"; the value names the
// directory holding the data to be measured.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultINIPath returns the storage INI in the user's config directory,
// for example %AppData%\osu\storage.ini on Windows.
func DefaultINIPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}

	return filepath.Join(dir, "osu", "storage.ini"), nil
}

// Lookup reads the root path from the INI file at path.
//
// It returns false without an error when the file does not exist, is empty,
// or its first line carries no value. Other read failures are returned.
func Lookup(path string) (string, bool, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("opening storage file %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", false, fmt.Errorf("reading storage file %q: %w", path, err)
		}

		return "", false, nil
	}

	line := strings.TrimPrefix(scanner.Text(), "\uFEFF")

	_, value, found := strings.Cut(line, "=")
	if !found {
		return "", false, nil
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", false, nil
	}

	return value, true, nil
}
