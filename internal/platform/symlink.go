package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CreateSymlink creates a symbolic link at link pointing to target.
// On Windows a failure is annotated with the developer-mode requirement.
func CreateSymlink(target, link string) error {
	err := os.Symlink(target, link)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}
	return fmt.Errorf("%w (directory symlinks on Windows require developer mode)", err)
}

// RemoveSymlink removes a single directory entry without following it.
// A link to a directory is unlinked; the directory it points to is untouched.
func RemoveSymlink(path string) error {
	return os.Remove(path)
}

// ReadSymlinkTarget returns the target of a symlink. Relative targets are
// resolved against the link's parent directory.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}

// IsSymlinkSupported reports whether the current platform can create
// symlinks. On Windows this attempts a test link to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".venvlink-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}
