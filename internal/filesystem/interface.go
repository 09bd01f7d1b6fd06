package filesystem

import (
	"errors"
	"io/fs"
)

// FileSystem provides an abstraction over the filesystem primitives the
// linker needs, for testability.
type FileSystem interface {
	// Inspection
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Readlink(path string) (string, error)
	Getwd() (string, error)

	// Mutation
	Remove(path string) error
	RemoveAll(path string) error
	Symlink(target, link string) error
}

// Kind classifies a directory entry without following symlinks.
type Kind int

const (
	KindMissing Kind = iota
	KindFile
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// KindOf reports what is at path. A dangling symlink is KindSymlink.
func KindOf(fsys FileSystem, path string) (Kind, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KindMissing, nil
		}
		return KindMissing, err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return KindSymlink, nil
	case info.IsDir():
		return KindDir, nil
	default:
		return KindFile, nil
	}
}

// Exists reports whether any entry, including a dangling symlink, is at path.
func Exists(fsys FileSystem, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// IsDir reports whether path resolves, following symlinks, to a directory.
func IsDir(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
