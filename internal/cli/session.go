package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/venvlink/venvlink/internal/config"
	"github.com/venvlink/venvlink/internal/filesystem"
	"github.com/venvlink/venvlink/internal/interpreter"
	"github.com/venvlink/venvlink/internal/linker"
	"github.com/venvlink/venvlink/internal/store"
)

// resolveVersion is replaced in tests.
var resolveVersion interpreter.Resolver = interpreter.ExecResolver

// session is everything a command needs to know about the current project.
type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	fs     filesystem.FileSystem
	layout linker.Layout
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(config.FilePath())
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOSFileSystem()
	cwd, err := fsys.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	root, err := store.Root()
	if err != nil {
		return nil, err
	}

	version, err := interpreter.Detect(cmd.Context(), cfg.Python, cfg.PythonVersion, resolveVersion)
	if err != nil {
		return nil, fmt.Errorf("detecting python version: %w", err)
	}

	layout := linker.Locate(cwd, root, version.Tag())
	log.WithFields(logrus.Fields{
		"project":    layout.ProjectDir,
		"python":     version.String(),
		"identifier": layout.Identifier,
	}).Debug("Resolved layout")

	return &session{cfg: cfg, log: log, fs: fsys, layout: layout}, nil
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}
