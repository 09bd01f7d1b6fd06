// Package store resolves the locations venvlink reconciles: the shared
// store under the user's home, environment directories inside it, and the
// project-local link.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/venvlink/venvlink/internal/branding"
)

// Root returns the shared store directory (~/.virtualenvs). There is no
// environment-variable override.
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.StoreDir()), nil
}

// EnvironmentDir returns the directory for identifier inside root.
func EnvironmentDir(root, identifier string) string {
	return filepath.Join(root, identifier)
}

// LinkPath returns the project-local link path (<project>/.venv).
func LinkPath(projectDir string) string {
	return filepath.Join(projectDir, branding.LinkName())
}
