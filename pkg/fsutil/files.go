// Package fsutil holds the small filesystem helpers shared by the
// ingest adapters. These are plain os/filepath wrappers: there is no
// third-party library in the corpus for directory/file bookkeeping
// this thin, so it stays on the standard library.
package fsutil

import (
	"fmt"
	"os"
)

// MakeDir creates a directory with all parent directories.
func MakeDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// DeleteDir removes a directory and all its contents.
func DeleteDir(path string) error {
	return os.RemoveAll(path)
}

// MoveFile moves or renames a file.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move file from %s to %s: %w", src, dst, err)
	}
	return nil
}
