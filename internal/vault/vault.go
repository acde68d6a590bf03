// Package vault is the persistence layer for task documents: plain files in
// a vault directory, read and written whole. The core packages never touch
// the filesystem; everything goes through here.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// Vault reads and writes documents under a root directory. Relative paths
// are resolved against the root; absolute paths are used as given.
type Vault struct {
	root string
}

// New creates a vault rooted at the given directory.
func New(root string) *Vault {
	return &Vault{root: root}
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// Resolve turns a vault-relative path into an absolute one.
func (v *Vault) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(v.root, path)
}

// Read returns the full content of a document. A missing file is not an
// error; it reads as empty, matching how a note host treats a not-yet
// created todo file.
func (v *Vault) Read(path string) (string, error) {
	content, err := os.ReadFile(v.Resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

// Write replaces the content of a document. The write goes through a
// temporary file and a rename so a crash never leaves a half-written
// document behind.
func (v *Vault) Write(path, content string) error {
	target := v.Resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".todotxt-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Exists reports whether the document exists and is a regular file.
func (v *Vault) Exists(path string) (bool, error) {
	info, err := os.Stat(v.Resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}
