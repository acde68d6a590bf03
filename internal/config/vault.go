package config

import (
	"os"
	"path/filepath"
)

// FindVaultRoot looks for the .todotxt directory starting from the current
// working directory and moving up the directory tree. When none is found the
// current directory becomes the vault root.
func FindVaultRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := currentDir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".todotxt")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return currentDir, nil
}

// DotDir returns the path of the .todotxt directory under the vault root.
func DotDir(vaultRoot string) string {
	return filepath.Join(vaultRoot, ".todotxt")
}

// EnsureDirs creates the .todotxt subdirectories used at runtime.
func EnsureDirs(todotxtDir string) error {
	for _, subdir := range []string{
		todotxtDir,
		filepath.Join(todotxtDir, "logs"),
	} {
		if err := os.MkdirAll(subdir, 0755); err != nil {
			return err
		}
	}
	return nil
}
