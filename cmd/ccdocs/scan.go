package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/scan"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ScanUse,
		Short: messages.ScanShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			env, err := resolveEnvironment()
			if err != nil {
				return err
			}

			scanner := scan.New(env.paths.CommandFile, env.paths.SettingsFile, env.paths.InstallDir, config.DirName, config.MarkerRelPath)
			candidates := scanner.Discover(cmd.ErrOrStderr())
			if len(candidates) == 0 {
				_, _ = fmt.Fprintln(out, messages.ScanNoneFound)
				return nil
			}
			for _, cand := range candidates {
				_, _ = fmt.Fprintf(out, messages.ScanFoundFmt, cand.Path, cand.Source)
			}
			return nil
		},
	}
}
