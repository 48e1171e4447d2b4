package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/platform"
)

const flagYes = "yes"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolP(flagYes, "y", false, messages.FlagAssumeYes)

	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newScanCmd())
	return cmd
}

// environment bundles the host facts every command resolves first.
type environment struct {
	osType platform.OS
	paths  platform.Paths
	cfg    config.Config
}

var detectPathsFunc = platform.DefaultPaths

func resolveEnvironment() (environment, error) {
	osType := platform.Detect()
	paths, err := detectPathsFunc(osType)
	if err != nil {
		return environment{}, err
	}
	// Overrides live next to the installation directory, in the home dir.
	override := filepath.Join(filepath.Dir(paths.InstallDir), config.OverrideFileName)
	cfg, err := config.Load(override)
	if err != nil {
		return environment{}, err
	}
	return environment{osType: osType, paths: paths, cfg: cfg}, nil
}
