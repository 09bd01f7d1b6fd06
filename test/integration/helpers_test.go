//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to an isolated home with a shared store and a project.
type testEnv struct {
	HomeDir    string // HOME for the test
	StoreDir   string // HOME/.virtualenvs
	ProjectDir string // a mock project directory
	BinDir     string // prepended to PATH, holds fake uv and python3
	UvLog      string // every fake uv invocation, one per line
}

// setupTestEnv creates isolated temp directories, installs fake uv and
// python3 executables and points HOME and PATH at them. The env vars are
// restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	home := t.TempDir()
	env := &testEnv{
		HomeDir:    home,
		StoreDir:   filepath.Join(home, ".virtualenvs"),
		ProjectDir: filepath.Join(home, "work", "Demo"),
		BinDir:     filepath.Join(home, "bin"),
		UvLog:      filepath.Join(home, "uv.log"),
	}

	for _, dir := range []string{env.StoreDir, env.ProjectDir, env.BinDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	writeExecutable(t, filepath.Join(env.BinDir, "uv"), `#!/bin/sh
echo "$@" >> "$UV_LOG"
if [ -n "$UV_EXIT" ]; then exit "$UV_EXIT"; fi
case "$1" in
  venv) mkdir -p "$2/bin" && touch "$2/pyvenv.cfg" ;;
esac
`)
	writeExecutable(t, filepath.Join(env.BinDir, "python3"), `#!/bin/sh
echo "Python 3.12.4"
`)

	t.Setenv("HOME", home)
	t.Setenv("UV_LOG", env.UvLog)
	t.Setenv("UV_EXIT", "")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+"/usr/bin"+string(os.PathListSeparator)+"/bin")

	return env
}

// uvCalls returns the arguments of every fake uv invocation so far.
func (e *testEnv) uvCalls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.UvLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading uv log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertLink fails unless link is a symlink pointing at target.
func assertLink(t *testing.T, link, target string) {
	t.Helper()
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("expected %s to be a symlink: %v", link, err)
		return
	}
	if got != target {
		t.Errorf("%s points at %s, want %s", link, got, target)
	}
}
