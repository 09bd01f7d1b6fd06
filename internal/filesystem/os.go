package filesystem

import (
	"io/fs"
	"os"

	"github.com/venvlink/venvlink/internal/platform"
)

// OSFileSystem implements FileSystem using real OS operations.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (osfs *OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (osfs *OSFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (osfs *OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (osfs *OSFileSystem) Readlink(path string) (string, error) {
	return platform.ReadSymlinkTarget(path)
}

func (osfs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

func (osfs *OSFileSystem) Remove(path string) error {
	return platform.RemoveSymlink(path)
}

func (osfs *OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (osfs *OSFileSystem) Symlink(target, link string) error {
	return platform.CreateSymlink(target, link)
}
