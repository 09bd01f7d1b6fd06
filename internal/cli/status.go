package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/venvlink/venvlink/internal/filesystem"
	"github.com/venvlink/venvlink/internal/linker"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how this project is linked",
	Long: `Show the environment this project maps to and whether .venv points at it.
Nothing is created or deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		st, err := linker.Inspect(s.fs, s.layout)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Project:     %s\n", st.ProjectDir)
		fmt.Fprintf(out, "Identifier:  %s\n", st.Identifier)

		storeState := "ok"
		if !st.StoreExists {
			storeState = "missing"
		}
		fmt.Fprintf(out, "Store:       %s (%s)\n", st.StoreDir, storeState)
		fmt.Fprintf(out, "Environment: %s (%s)\n", st.EnvDir, st.EnvKind)

		switch st.LinkKind {
		case filesystem.KindSymlink:
			fmt.Fprintf(out, "Link:        %s -> %s\n", st.LinkPath, st.LinkTarget)
		default:
			fmt.Fprintf(out, "Link:        %s (%s)\n", st.LinkPath, st.LinkKind)
		}

		for _, sib := range st.Siblings {
			fmt.Fprintf(out, "Also built:  %s\n", filepath.Join(st.StoreDir, sib))
		}

		statusIcon := "!!"
		if st.Linked() {
			statusIcon = "OK"
		}
		fmt.Fprintf(out, "  [%s] %s\n", statusIcon, describe(st))
		return nil
	},
}

func describe(st *linker.Status) string {
	switch {
	case st.Linked():
		return "linked"
	case !st.StoreExists:
		return "store missing"
	case st.LinkKind == filesystem.KindMissing:
		return "not linked"
	case st.LinkKind != filesystem.KindSymlink:
		return ".venv is not a link"
	case filepath.Clean(st.LinkTarget) != filepath.Clean(st.EnvDir):
		return ".venv points elsewhere"
	default:
		return "environment missing"
	}
}
