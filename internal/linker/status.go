package linker

import (
	"fmt"
	"path/filepath"

	"github.com/venvlink/venvlink/internal/filesystem"
	"github.com/venvlink/venvlink/internal/naming"
)

// Status is a read-only snapshot of a layout.
type Status struct {
	Layout
	StoreExists bool
	EnvKind     filesystem.Kind
	LinkKind    filesystem.Kind
	LinkTarget  string
	// Siblings are other environments in the store for the same project
	// path, typically built for another interpreter version.
	Siblings []string
}

// Linked reports whether .venv is a symlink to the expected environment
// directory and that directory exists.
func (s *Status) Linked() bool {
	return s.StoreExists &&
		s.EnvKind == filesystem.KindDir &&
		s.LinkKind == filesystem.KindSymlink &&
		filepath.Clean(s.LinkTarget) == filepath.Clean(s.EnvDir)
}

// Inspect reads the state of layout without changing anything.
func Inspect(fsys filesystem.FileSystem, layout Layout) (*Status, error) {
	st := &Status{Layout: layout, StoreExists: filesystem.IsDir(fsys, layout.StoreDir)}

	var err error
	if st.EnvKind, err = filesystem.KindOf(fsys, layout.EnvDir); err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", layout.EnvDir, err)
	}
	if st.LinkKind, err = filesystem.KindOf(fsys, layout.LinkPath); err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", layout.LinkPath, err)
	}
	if st.LinkKind == filesystem.KindSymlink {
		if st.LinkTarget, err = fsys.Readlink(layout.LinkPath); err != nil {
			return nil, fmt.Errorf("reading link %s: %w", layout.LinkPath, err)
		}
	}
	if st.StoreExists {
		if st.Siblings, err = siblings(fsys, layout); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func siblings(fsys filesystem.FileSystem, layout Layout) ([]string, error) {
	own, err := naming.Parse(layout.Identifier)
	if err != nil {
		return nil, err
	}
	entries, err := fsys.ReadDir(layout.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}

	var found []string
	for _, e := range entries {
		if e.Name() == layout.Identifier {
			continue
		}
		p, err := naming.Parse(e.Name())
		if err != nil {
			continue
		}
		if p.Hash == own.Hash && p.Name == own.Name {
			found = append(found, e.Name())
		}
	}
	return found, nil
}
