package linker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venvlink/venvlink/internal/filesystem"
	"github.com/venvlink/venvlink/internal/platform"
	"github.com/venvlink/venvlink/internal/prompt"
	"github.com/venvlink/venvlink/internal/runner"
)

// mkdirRunner stands in for uv: the venv command creates its target.
func mkdirRunner(calls *[][]string) runner.Func {
	return func(_ context.Context, _ string, argv []string) error {
		*calls = append(*calls, argv)
		if len(argv) > 1 && argv[1] == "venv" {
			return os.MkdirAll(filepath.Join(argv[len(argv)-1], "bin"), 0755)
		}
		return nil
	}
}

func osLayout(t *testing.T) Layout {
	t.Helper()
	if !platform.IsSymlinkSupported() {
		t.Skip("symlinks not supported")
	}
	root := t.TempDir()
	store := filepath.Join(root, ".virtualenvs")
	project := filepath.Join(root, "src", "MyApp")
	require.NoError(t, os.MkdirAll(store, 0755))
	require.NoError(t, os.MkdirAll(project, 0755))
	return Locate(project, store, "3.12")
}

func TestRunOnDisk(t *testing.T) {
	layout := osLayout(t)
	require.NoError(t, os.WriteFile(filepath.Join(layout.ProjectDir, "pyproject.toml"), nil, 0644))

	var calls [][]string
	opts := Options{
		Layout:      layout,
		VenvCommand: []string{"uv", "venv"},
		SyncCommand: []string{"uv", "sync"},
		Sync:        true,
		SyncMarkers: []string{"pyproject.toml"},
	}
	out := &bytes.Buffer{}
	fsys := filesystem.NewOSFileSystem()

	res, err := New(fsys, mkdirRunner(&calls), prompt.AlwaysNo, opts, WithOutput(out)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.True(t, res.Synced)
	assert.Regexp(t, `^myapp-[A-Za-z0-9_-]{8}-py3\.12$`, res.Identifier)

	target, err := os.Readlink(layout.LinkPath)
	require.NoError(t, err)
	assert.Equal(t, layout.EnvDir, target)

	// A second run must ask before replacing anything.
	_, err = New(fsys, mkdirRunner(&calls), prompt.AlwaysNo, opts, WithOutput(out)).Run(context.Background())
	assert.ErrorIs(t, err, ErrDeclined)
	_, err = os.Stat(filepath.Join(layout.EnvDir, "bin"))
	assert.NoError(t, err, "declining keeps the environment")

	res, err = New(fsys, mkdirRunner(&calls), prompt.AlwaysYes, opts, WithOutput(out)).Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Removed, 2)

	st, err := Inspect(fsys, layout)
	require.NoError(t, err)
	assert.True(t, st.Linked())
}

func TestRunOnDiskUnlinksWithoutFollowing(t *testing.T) {
	layout := osLayout(t)
	elsewhere := filepath.Join(filepath.Dir(layout.StoreDir), "keep-me")
	require.NoError(t, os.MkdirAll(elsewhere, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(elsewhere, "sentinel"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(elsewhere, layout.LinkPath))

	var calls [][]string
	opts := Options{Layout: layout, VenvCommand: []string{"uv", "venv"}}
	_, err := New(filesystem.NewOSFileSystem(), mkdirRunner(&calls), prompt.AlwaysYes, opts, WithOutput(&bytes.Buffer{})).
		Run(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(elsewhere, "sentinel"))
	assert.NoError(t, err, "the old link target is untouched")
}
