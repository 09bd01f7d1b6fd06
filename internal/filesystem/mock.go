package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxLinkHops bounds symlink resolution in the mock, like ELOOP on Linux.
const maxLinkHops = 40

// MockFileSystem provides an in-memory filesystem for testing. Symlinks are
// resolved only in the final path component.
type MockFileSystem struct {
	entries    map[string]*MockEntry
	currentDir string
	removeErrs map[string]error
	sticky     map[string]bool
	ops        []string
}

// MockEntry represents one entry in the mock filesystem.
type MockEntry struct {
	Kind    Kind
	Target  string
	Content []byte
	ModTime time.Time
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m *mockFileInfo) Sys() interface{}   { return nil }

type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates an empty MockFileSystem rooted at "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		entries:    map[string]*MockEntry{"/": {Kind: KindDir, ModTime: time.Now()}},
		currentDir: "/",
		removeErrs: make(map[string]error),
		sticky:     make(map[string]bool),
	}
}

// AddDir adds a directory and any missing parents.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	mfs.ensureParents(cleanPath)
	if _, exists := mfs.entries[cleanPath]; !exists {
		mfs.entries[cleanPath] = &MockEntry{Kind: KindDir, ModTime: time.Now()}
	}
}

// AddFile adds a regular file and any missing parents.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.ensureParents(cleanPath)
	mfs.entries[cleanPath] = &MockEntry{Kind: KindFile, Content: content, ModTime: time.Now()}
}

// AddSymlink adds a symlink at link pointing to target. The target need not exist.
func (mfs *MockFileSystem) AddSymlink(link, target string) {
	cleanPath := filepath.Clean(link)
	mfs.ensureParents(cleanPath)
	mfs.entries[cleanPath] = &MockEntry{Kind: KindSymlink, Target: target, ModTime: time.Now()}
}

// FailRemove makes Remove and RemoveAll of path fail with err.
func (mfs *MockFileSystem) FailRemove(path string, err error) {
	mfs.removeErrs[filepath.Clean(path)] = err
}

// KeepOnRemove makes Remove and RemoveAll of path report success without
// deleting anything.
func (mfs *MockFileSystem) KeepOnRemove(path string) {
	mfs.sticky[filepath.Clean(path)] = true
}

// SetCurrentDir sets the directory returned by Getwd.
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = filepath.Clean(dir)
}

// Ops returns the mutating operations performed so far, in order, formatted
// as "remove <path>", "removeall <path>" or "symlink <target> <link>".
func (mfs *MockFileSystem) Ops() []string {
	return append([]string(nil), mfs.ops...)
}

// Entry returns the entry at path, or nil.
func (mfs *MockFileSystem) Entry(path string) *MockEntry {
	return mfs.entries[filepath.Clean(path)]
}

// Paths returns every path in the mock, sorted.
func (mfs *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(mfs.entries))
	for p := range mfs.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (mfs *MockFileSystem) ensureParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.entries[dir]; !exists {
			mfs.entries[dir] = &MockEntry{Kind: KindDir, ModTime: time.Now()}
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) info(path string, e *MockEntry) *mockFileInfo {
	var mode fs.FileMode
	switch e.Kind {
	case KindDir:
		mode = fs.ModeDir | 0755
	case KindSymlink:
		mode = fs.ModeSymlink | 0777
	default:
		mode = 0644
	}
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(e.Content)),
		mode:    mode,
		modTime: e.ModTime,
	}
}

func (mfs *MockFileSystem) resolve(path string) (string, *MockEntry, error) {
	cleanPath := filepath.Clean(path)
	for i := 0; i < maxLinkHops; i++ {
		e, ok := mfs.entries[cleanPath]
		if !ok {
			return "", nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
		}
		if e.Kind != KindSymlink {
			return cleanPath, e, nil
		}
		target := e.Target
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(cleanPath), target)
		}
		cleanPath = filepath.Clean(target)
	}
	return "", nil, &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many levels of symbolic links")}
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	resolved, e, err := mfs.resolve(path)
	if err != nil {
		return nil, err
	}
	info := mfs.info(resolved, e)
	info.name = filepath.Base(path)
	return info, nil
}

func (mfs *MockFileSystem) Lstat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	e, ok := mfs.entries[cleanPath]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return mfs.info(cleanPath, e), nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	resolved, e, err := mfs.resolve(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if e.Kind != KindDir {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for p, child := range mfs.entries {
		if p != resolved && filepath.Dir(p) == resolved {
			entries = append(entries, &mockDirEntry{info: mfs.info(p, child)})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (mfs *MockFileSystem) Readlink(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	e, ok := mfs.entries[cleanPath]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: fs.ErrNotExist}
	}
	if e.Kind != KindSymlink {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: errors.New("invalid argument")}
	}
	if filepath.IsAbs(e.Target) {
		return e.Target, nil
	}
	return filepath.Join(filepath.Dir(cleanPath), e.Target), nil
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	cleanPath := filepath.Clean(path)
	mfs.ops = append(mfs.ops, "remove "+cleanPath)

	if err, ok := mfs.removeErrs[cleanPath]; ok {
		return &fs.PathError{Op: "remove", Path: path, Err: err}
	}
	e, ok := mfs.entries[cleanPath]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if e.Kind == KindDir && mfs.hasChildren(cleanPath) {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}
	if !mfs.sticky[cleanPath] {
		delete(mfs.entries, cleanPath)
	}
	return nil
}

func (mfs *MockFileSystem) RemoveAll(path string) error {
	cleanPath := filepath.Clean(path)
	mfs.ops = append(mfs.ops, "removeall "+cleanPath)

	if err, ok := mfs.removeErrs[cleanPath]; ok {
		return &fs.PathError{Op: "unlinkat", Path: path, Err: err}
	}
	if mfs.sticky[cleanPath] {
		return nil
	}
	prefix := cleanPath + string(filepath.Separator)
	for p := range mfs.entries {
		if p == cleanPath || strings.HasPrefix(p, prefix) {
			delete(mfs.entries, p)
		}
	}
	return nil
}

func (mfs *MockFileSystem) Symlink(target, link string) error {
	cleanPath := filepath.Clean(link)
	mfs.ops = append(mfs.ops, fmt.Sprintf("symlink %s %s", target, cleanPath))

	if _, exists := mfs.entries[cleanPath]; exists {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: fs.ErrExist}
	}
	parent, ok := mfs.entries[filepath.Dir(cleanPath)]
	if !ok || parent.Kind != KindDir {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: fs.ErrNotExist}
	}
	mfs.entries[cleanPath] = &MockEntry{Kind: KindSymlink, Target: target, ModTime: time.Now()}
	return nil
}

func (mfs *MockFileSystem) hasChildren(dir string) bool {
	prefix := dir + string(filepath.Separator)
	for p := range mfs.entries {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
