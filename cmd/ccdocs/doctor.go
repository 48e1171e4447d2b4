package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/doctor"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/installer"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			env, err := resolveEnvironment()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, messages.DoctorHealthCheck)

			git := gitx.New(config.MarkerRelPath)
			results := doctor.All(cmd.Context(), git, env.osType, env.paths)
			for _, r := range results {
				installer.PrintCheck(out, r)
			}

			if doctor.HasFailure(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}
