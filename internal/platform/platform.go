// Package platform resolves the operating system class and the canonical
// filesystem locations the installer works against.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
)

// OS classifies the host operating system. Anything that is not Windows or
// macOS is treated as Linux, matching the behavior of the shell installers
// this tool replaces.
type OS string

const (
	Windows OS = "windows"
	MacOS   OS = "macos"
	Linux   OS = "linux"
)

// InstallDirName is the canonical installation directory under the user home.
const InstallDirName = ".claude-code-docs"

// ClaudeDirName is the host application's configuration directory under the
// user home.
const ClaudeDirName = ".claude"

var (
	goos          = runtime.GOOS
	lookupEnvFunc = os.LookupEnv
	homeDirFunc   = homedir.Dir
)

// Detect returns the OS class for the current process.
func Detect() OS {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

// Paths holds every host location the installer reads or writes.
type Paths struct {
	// InstallDir is the canonical target installation directory.
	InstallDir string
	// ClaudeDir is the host configuration directory.
	ClaudeDir string
	// CommandFile is the /docs command definition file.
	CommandFile string
	// SettingsFile is the host's JSON settings document.
	SettingsFile string
}

// DefaultPaths computes the canonical paths for the given OS class.
// Windows prefers USERPROFILE over HOME; everything else prefers HOME,
// falling back to the resolved home directory.
func DefaultPaths(osType OS) (Paths, error) {
	home, err := userHome(osType)
	if err != nil {
		return Paths{}, err
	}
	claudeDir := filepath.Join(home, ClaudeDirName)
	return Paths{
		InstallDir:   filepath.Join(home, InstallDirName),
		ClaudeDir:    claudeDir,
		CommandFile:  filepath.Join(claudeDir, "commands", "docs.md"),
		SettingsFile: filepath.Join(claudeDir, "settings.json"),
	}, nil
}

func userHome(osType OS) (string, error) {
	if osType == Windows {
		if profile, ok := lookupEnvFunc("USERPROFILE"); ok && profile != "" {
			return profile, nil
		}
	}
	if home, ok := lookupEnvFunc("HOME"); ok && home != "" {
		return home, nil
	}
	home, err := homeDirFunc()
	if err != nil {
		return "", fmt.Errorf("determine user home directory: %w", err)
	}
	return home, nil
}
