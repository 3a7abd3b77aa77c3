// Package fsops is the filesystem seam of the transform runner. Codemods
// never touch os directly: config files are read, stat'ed and replaced
// through FS so a run can be pointed at a failing filesystem in tests.
package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS is what the runner needs to read and replace project config files.
type FS interface {
	// Lstat is used to keep a rewritten file's permission bits.
	Lstat(path string) (os.FileInfo, error)

	ReadFile(path string) ([]byte, error)

	// AtomicWrite replaces path in one step; readers see the old or the new
	// document, never a partial one.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// Exists reports whether path is present. A dangling symlink counts.
	Exists(path string) (bool, error)

	// ValidateRelPath rejects paths a codemod may not address.
	ValidateRelPath(relPath string) error
}

// RealFS is the os-backed FS.
type RealFS struct{}

func NewRealFS() *RealFS {
	return &RealFS{}
}

func (fs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// AtomicWrite stages data in a synced temp file beside path and renames it into place.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Temp file lives next to the target so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(dir, ".turbo-migrate-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	tmpFile = nil
	return nil
}

func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateRelPath accepts only non-empty paths that stay inside the project root.
func (fs *RealFS) ValidateRelPath(relPath string) error {
	cleaned := filepath.Clean(relPath)

	if cleaned == "" || cleaned == "." {
		return fmt.Errorf("invalid path: empty or current directory")
	}
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid path: must be relative, got absolute path %q", cleaned)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid path: path traversal not allowed in %q", cleaned)
	}

	return nil
}
