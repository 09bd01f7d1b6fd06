package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/venvlink/venvlink/internal/linker"
	"github.com/venvlink/venvlink/internal/prompt"
	"github.com/venvlink/venvlink/internal/runner"
)

func runReconcile(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	run := &runner.ExecRunner{
		Stdin:  cmd.InOrStdin(),
		Stdout: out,
		Stderr: cmd.ErrOrStderr(),
		Logger: s.log,
	}
	confirm := prompt.New(cmd.InOrStdin(), out).Confirm

	opts := linker.Options{
		Layout:      s.layout,
		VenvCommand: s.cfg.VenvCommand,
		SyncCommand: s.cfg.SyncCommand,
		Sync:        s.cfg.Sync,
		SyncMarkers: s.cfg.SyncMarkers,
		DryRun:      s.cfg.DryRun,
		Strict:      s.cfg.Strict,
		Lock:        s.cfg.Lock,
	}

	res, err := linker.New(s.fs, run, confirm, opts,
		linker.WithOutput(out),
		linker.WithLogger(s.log),
	).Run(cmd.Context())
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"identifier": res.Identifier,
		"removed":    len(res.Removed),
		"synced":     res.Synced,
		"dry_run":    res.DryRun,
	}).Info("Linked")
	return nil
}
