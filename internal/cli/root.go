package cli

import (
	"github.com/spf13/cobra"

	"github.com/venvlink/venvlink/internal/branding"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` links the current project to a virtual environment kept in
~/.virtualenvs. The environment name is derived from the project path and the
interpreter version, so every checkout gets its own environment and the
project's .venv always points at it.

Running it with no arguments recreates the environment (asking before anything
is deleted), links .venv to it, and syncs dependencies when the project has a
pyproject.toml. Settings live in ~/.venvlink/config.yaml.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReconcile,
}

// Execute runs the root command with build info injected via ldflags. A
// returned error has already been printed.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
