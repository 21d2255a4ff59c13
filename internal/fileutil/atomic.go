// Package fileutil writes files so that readers never observe a partial write.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyPath indicates an empty file path was provided.
var ErrEmptyPath = errors.New("path is empty")

// WriteAtomic replaces the file at path with data and the given mode.
// Data goes to a temp file in the same directory, is synced, then renamed
// over the target, so an existing file is either kept or fully replaced.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)

	tmpPath, err := writeTemp(dir, filepath.Base(path), data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil { //nolint:gosec // G703: path is validated by caller
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	// Best effort: sync the directory so the rename survives a crash.
	if dirFile, err := os.Open(dir); err == nil { //nolint:gosec // G304: dir is derived from validated path
		_ = dirFile.Sync()
		_ = dirFile.Close()
	}

	return nil
}

// writeTemp writes data to a fresh temp file next to the target and returns
// its path. The temp file is removed on any failure.
func writeTemp(dir, base string, data []byte, perm os.FileMode) (string, error) {
	tmpFile, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	fail := func(step string, err error) (string, error) {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		return fail("writing", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return fail("setting permissions on", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("syncing", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	return tmpPath, nil
}
