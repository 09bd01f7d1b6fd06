package linker

import (
	"github.com/venvlink/venvlink/internal/naming"
	"github.com/venvlink/venvlink/internal/store"
)

// Layout names the three locations a run reconciles.
type Layout struct {
	ProjectDir string
	StoreDir   string
	Identifier string
	EnvDir     string
	LinkPath   string
}

// Locate derives the layout for projectDir from its identifier.
func Locate(projectDir, storeDir, pythonVersion string) Layout {
	id := naming.Identifier(projectDir, pythonVersion)
	return Layout{
		ProjectDir: projectDir,
		StoreDir:   storeDir,
		Identifier: id,
		EnvDir:     store.EnvironmentDir(storeDir, id),
		LinkPath:   store.LinkPath(projectDir),
	}
}
