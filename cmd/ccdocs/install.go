package main

import (
	"github.com/spf13/cobra"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/installer"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment()
			if err != nil {
				return err
			}
			assumeYes, err := cmd.Flags().GetBool(flagYes)
			if err != nil {
				return err
			}

			git := gitx.New(config.MarkerRelPath)
			in := installer.New(env.cfg, env.paths, env.osType, git, newConfirm(cmd, assumeYes), cmd.OutOrStdout())
			return in.Install(cmd.Context())
		},
	}
}
