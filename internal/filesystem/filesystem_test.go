package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfOS(t *testing.T) {
	tmp := t.TempDir()
	osfs := NewOSFileSystem()

	dir := filepath.Join(tmp, "dir")
	require.NoError(t, os.Mkdir(dir, 0755))
	file := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	link := filepath.Join(tmp, "link")
	require.NoError(t, os.Symlink(dir, link))
	dangling := filepath.Join(tmp, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(tmp, "nowhere"), dangling))

	tests := []struct {
		path string
		want Kind
	}{
		{dir, KindDir},
		{file, KindFile},
		{link, KindSymlink},
		{dangling, KindSymlink},
		{filepath.Join(tmp, "missing"), KindMissing},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, err := KindOf(osfs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, Exists(osfs, dangling))
	assert.False(t, IsDir(osfs, dangling))
	assert.True(t, IsDir(osfs, link))
	assert.False(t, IsDir(osfs, file))
}

func TestMockKinds(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/home/u/.virtualenvs")
	mfs.AddFile("/home/u/app/pyproject.toml", []byte("[project]\n"))
	mfs.AddSymlink("/home/u/app/.venv", "/home/u/.virtualenvs/app")

	kind, err := KindOf(mfs, "/home/u/app/.venv")
	require.NoError(t, err)
	assert.Equal(t, KindSymlink, kind)

	// Target does not exist, so the link dangles.
	assert.False(t, IsDir(mfs, "/home/u/app/.venv"))
	mfs.AddDir("/home/u/.virtualenvs/app")
	assert.True(t, IsDir(mfs, "/home/u/app/.venv"))

	kind, err = KindOf(mfs, "/home/u/app/pyproject.toml")
	require.NoError(t, err)
	assert.Equal(t, KindFile, kind)

	kind, err = KindOf(mfs, "/home/u/nothing")
	require.NoError(t, err)
	assert.Equal(t, KindMissing, kind)
}

func TestMockReadDir(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/p/b.txt", nil)
	mfs.AddFile("/p/a.txt", nil)
	mfs.AddDir("/p/sub")
	mfs.AddFile("/p/sub/deep.txt", nil)

	entries, err := mfs.ReadDir("/p")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)
}

func TestMockRemove(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/p/.venv/bin")

	err := mfs.Remove("/p/.venv")
	require.Error(t, err, "non-empty directory must not be removed by Remove")

	require.NoError(t, mfs.RemoveAll("/p/.venv"))
	assert.Nil(t, mfs.Entry("/p/.venv"))
	assert.Nil(t, mfs.Entry("/p/.venv/bin"))
	assert.NotNil(t, mfs.Entry("/p"))

	err = mfs.Remove("/p/.venv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Equal(t, []string{"remove /p/.venv", "removeall /p/.venv", "remove /p/.venv"}, mfs.Ops())
}

func TestMockFailRemove(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/store/env")
	mfs.FailRemove("/store/env", fs.ErrPermission)

	err := mfs.RemoveAll("/store/env")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "permission denied")
	assert.NotNil(t, mfs.Entry("/store/env"))
}

func TestMockSymlink(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/p")

	require.NoError(t, mfs.Symlink("/store/env", "/p/.venv"))
	target, err := mfs.Readlink("/p/.venv")
	require.NoError(t, err)
	assert.Equal(t, "/store/env", target)

	err = mfs.Symlink("/store/env", "/p/.venv")
	assert.True(t, errors.Is(err, fs.ErrExist))

	err = mfs.Symlink("/store/env", "/missing/.venv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "symlink", KindSymlink.String())
	assert.Equal(t, "directory", KindDir.String())
	assert.Equal(t, "missing", KindMissing.String())
}
