package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/installer"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
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
			if err := in.Uninstall(cmd.Context()); err != nil {
				// A declined prompt already printed its own message.
				if errors.Is(err, installer.ErrCancelled) {
					return &SilentExitError{Code: 1}
				}
				return err
			}
			return nil
		},
	}
}
