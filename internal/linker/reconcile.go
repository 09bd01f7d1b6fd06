package linker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/venvlink/venvlink/internal/filesystem"
	"github.com/venvlink/venvlink/internal/lock"
	"github.com/venvlink/venvlink/internal/prompt"
	"github.com/venvlink/venvlink/internal/runner"
)

// Options configures one run.
type Options struct {
	Layout

	// VenvCommand creates the environment; the environment directory is
	// appended as its last argument.
	VenvCommand []string
	// SyncCommand installs dependencies into the linked environment.
	SyncCommand []string
	// Sync enables the sync step when a marker is present.
	Sync bool
	// SyncMarkers are doublestar patterns matched against the names of the
	// project directory's entries.
	SyncMarkers []string

	// DryRun echoes every step, including deletions, and mutates nothing.
	DryRun bool
	// Strict turns a failing external command into ErrCommandFailed.
	Strict bool
	// Lock holds an advisory lock on the identifier for the whole run.
	Lock bool
}

// Locker takes the lock at path and returns its release function.
type Locker func(path string) (release func() error, err error)

// Removal records one consented deletion.
type Removal struct {
	Path string
	Kind filesystem.Kind
}

// Result describes how a run ended.
type Result struct {
	Layout
	State   State
	Removed []Removal
	Marker  string
	Synced  bool
	DryRun  bool
}

// Reconciler runs the reconciliation state machine once.
type Reconciler struct {
	fs      filesystem.FileSystem
	run     runner.Runner
	confirm prompt.ConfirmFunc
	out     io.Writer
	log     *logrus.Logger
	locker  Locker
	opts    Options
}

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithOutput sets where link and dry-run lines are echoed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Reconciler) { r.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Reconciler) { r.log = l }
}

// WithLocker replaces the flock-based locker.
func WithLocker(l Locker) Option {
	return func(r *Reconciler) { r.locker = l }
}

// New returns a Reconciler for opts.
func New(fsys filesystem.FileSystem, run runner.Runner, confirm prompt.ConfirmFunc, opts Options, options ...Option) *Reconciler {
	r := &Reconciler{
		fs:      fsys,
		run:     run,
		confirm: confirm,
		out:     os.Stdout,
		locker:  flockLocker,
		opts:    opts,
	}
	for _, o := range options {
		o(r)
	}
	if r.log == nil {
		r.log = logrus.New()
		r.log.SetOutput(io.Discard)
	}
	return r
}

func flockLocker(path string) (func() error, error) {
	l, err := lock.Acquire(path)
	if err != nil {
		return nil, err
	}
	return l.Release, nil
}

// Run performs one pass: precondition checks, consented cleanup,
// environment creation, linking and the optional sync. Any failure before
// the environment is requested leaves the filesystem as it was, apart from
// deletions the operator already agreed to.
func (r *Reconciler) Run(ctx context.Context) (res *Result, err error) {
	res = &Result{Layout: r.opts.Layout, DryRun: r.opts.DryRun}
	r.enter(res, StateStart)
	defer func() {
		if err != nil {
			r.enter(res, StateAborted)
		}
	}()

	if !filesystem.IsDir(r.fs, r.opts.StoreDir) {
		return res, &StoreMissingError{Dir: r.opts.StoreDir}
	}

	if r.opts.Lock {
		release, err := r.locker(lock.Path(r.opts.StoreDir, r.opts.Identifier))
		if err != nil {
			return res, fmt.Errorf("locking %s: %w", r.opts.Identifier, err)
		}
		defer func() {
			if err := release(); err != nil {
				r.log.WithError(err).Warn("Failed to release lock")
			}
		}()
	}
	r.enter(res, StatePreconditionsChecked)

	conflicts, err := r.collectConsent()
	if err != nil {
		return res, err
	}
	for _, c := range conflicts {
		if err := r.remove(c); err != nil {
			return res, err
		}
		res.Removed = append(res.Removed, c)
	}
	if !r.opts.DryRun {
		r.assertClear()
	}
	r.enter(res, StateConflictsResolved)

	venv := append(append([]string(nil), r.opts.VenvCommand...), r.opts.EnvDir)
	if err := r.external(ctx, venv); err != nil {
		return res, err
	}
	r.enter(res, StateEnvironmentRequested)

	runner.Echo(r.out, []string{"ln", "-s", r.opts.EnvDir, filepath.Base(r.opts.LinkPath)})
	if !r.opts.DryRun {
		if err := r.fs.Symlink(r.opts.EnvDir, r.opts.LinkPath); err != nil {
			return res, fmt.Errorf("creating link %s: %w", r.opts.LinkPath, err)
		}
	}
	r.enter(res, StateLinked)

	if r.opts.Sync {
		marker, err := r.findMarker()
		if err != nil {
			return res, err
		}
		if marker != "" {
			res.Marker = marker
			if err := r.external(ctx, r.opts.SyncCommand); err != nil {
				return res, err
			}
			res.Synced = true
			r.enter(res, StateSyncRequested)
		}
	}

	r.enter(res, StateDone)
	return res, nil
}

func (r *Reconciler) enter(res *Result, s State) {
	res.State = s
	r.log.WithFields(logrus.Fields{"state": s.String(), "identifier": r.opts.Identifier}).Debug("Reconciler state")
}

// collectConsent asks about the environment directory, then the project
// link. Both answers are gathered before anything is deleted, so declining
// either question leaves the filesystem untouched.
func (r *Reconciler) collectConsent() ([]Removal, error) {
	checks := []struct {
		path     string
		question string
	}{
		{r.opts.EnvDir, "Virtual environment %s already exists (%s). Delete it?"},
		{r.opts.LinkPath, "%s already exists in the project folder (%s). Delete it?"},
	}

	var conflicts []Removal
	for _, c := range checks {
		kind, err := filesystem.KindOf(r.fs, c.path)
		if err != nil {
			return nil, fmt.Errorf("inspecting %s: %w", c.path, err)
		}
		if kind == filesystem.KindMissing {
			continue
		}

		ok, err := r.confirm(fmt.Sprintf(c.question, c.path, kind))
		if err != nil {
			return nil, fmt.Errorf("confirming removal of %s: %w", c.path, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s left in place: %w", c.path, ErrDeclined)
		}
		conflicts = append(conflicts, Removal{Path: c.path, Kind: kind})
	}
	return conflicts, nil
}

// remove deletes a directory recursively and anything else as a single
// entry, so a symlinked .venv is unlinked without touching its target.
func (r *Reconciler) remove(c Removal) error {
	recursive := c.Kind == filesystem.KindDir
	if r.opts.DryRun {
		if recursive {
			runner.Echo(r.out, []string{"rm", "-rf", c.Path})
		} else {
			runner.Echo(r.out, []string{"rm", c.Path})
		}
		return nil
	}

	var err error
	if recursive {
		err = r.fs.RemoveAll(c.Path)
	} else {
		err = r.fs.Remove(c.Path)
	}
	if err != nil {
		return &RemoveError{Path: c.Path, Kind: c.Kind, Err: err}
	}
	r.log.WithFields(logrus.Fields{"path": c.Path, "kind": c.Kind.String()}).Debug("Removed")
	return nil
}

// assertClear panics if cleanup left either location behind. That can only
// happen through a bug or a concurrent run; neither is recoverable here.
func (r *Reconciler) assertClear() {
	for _, p := range []string{r.opts.EnvDir, r.opts.LinkPath} {
		if filesystem.Exists(r.fs, p) {
			panic(fmt.Sprintf("linker: inconsistent state: %s still exists after cleanup", p))
		}
	}
}

// external runs argv in the project directory. Outside strict mode a
// failure is only logged: a non-zero exit has already been reported by the
// tool itself, a command that never started has not, hence the warning.
func (r *Reconciler) external(ctx context.Context, argv []string) error {
	if r.opts.DryRun {
		runner.Echo(r.out, argv)
		return nil
	}

	err := r.run.Run(ctx, r.opts.ProjectDir, argv)
	if err == nil {
		return nil
	}
	if r.opts.Strict {
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}

	entry := r.log.WithError(err).WithField("command", runner.FormatCommand(argv))
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		entry.Debug("Command failed, continuing")
	} else {
		entry.Warn("Command could not be run, continuing")
	}
	return nil
}

// findMarker returns the first project entry matching a sync marker.
func (r *Reconciler) findMarker() (string, error) {
	entries, err := r.fs.ReadDir(r.opts.ProjectDir)
	if err != nil {
		return "", fmt.Errorf("reading project directory: %w", err)
	}
	for _, pattern := range r.opts.SyncMarkers {
		if !doublestar.ValidatePattern(pattern) {
			return "", fmt.Errorf("sync marker %q: %w", pattern, doublestar.ErrBadPattern)
		}
		for _, e := range entries {
			ok, err := doublestar.Match(pattern, e.Name())
			if err != nil {
				return "", fmt.Errorf("sync marker %q: %w", pattern, err)
			}
			if ok && !e.IsDir() {
				return e.Name(), nil
			}
		}
	}
	return "", nil
}
