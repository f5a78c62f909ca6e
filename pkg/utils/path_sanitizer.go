// Package utils provides small path helpers shared by the ledger packages.
package utils

import (
	"fmt"
	"path/filepath"
)

// SanitizePath returns the absolute, cleaned form of path, so that ".."
// segments never reach the file system calls.
func SanitizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// DocumentPath joins a document name to its directory. The name must be a
// bare file name: separators and ".." are rejected so that documents always
// stay inside dir.
func DocumentPath(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == ".." || name == "." {
		return "", fmt.Errorf("invalid document name %q", name)
	}

	return filepath.Join(dir, name), nil
}
