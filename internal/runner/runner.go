package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Runner executes a command in dir.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// Func adapts a plain function to the Runner interface.
type Func func(ctx context.Context, dir string, argv []string) error

// Run calls f.
func (f Func) Run(ctx context.Context, dir string, argv []string) error {
	return f(ctx, dir, argv)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// ErrEmptyCommand is returned for a zero-length argv.
var ErrEmptyCommand = errors.New("empty command")

// FormatCommand renders argv the way it is echoed.
func FormatCommand(argv []string) string {
	return strings.Join(argv, " ")
}

// Echo writes "$ <command line>" to w.
func Echo(w io.Writer, argv []string) {
	fmt.Fprintf(w, "$ %s\n", FormatCommand(argv))
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *logrus.Logger
}

// Run echoes argv to Stdout and executes it in dir.
// A non-zero exit is returned as *ExitError; a command that cannot be
// started is returned as a wrapped exec error.
func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	stdin := r.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	Echo(stdout, argv)

	log := r.logger()
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	log.WithFields(logrus.Fields{"command": FormatCommand(argv), "dir": dir}).Debug("Running command")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: FormatCommand(argv), Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}

func (r *ExecRunner) logger() *logrus.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
