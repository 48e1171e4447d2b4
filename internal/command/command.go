// Package command manages the /docs slash-command definition file inside the
// host application's commands directory.
package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ericbuess/claude-code-docs-installer/internal/fsutil"
	"github.com/ericbuess/claude-code-docs-installer/internal/platform"
)

// FileName is the slash-command definition file inside the commands dir.
const FileName = "docs.md"

const contentTemplate = `Execute the Claude Code Docs helper script at %s

Usage:
- /docs - List all available documentation topics
- /docs <topic> - Read specific documentation with link to official docs
- /docs -t - Check sync status without reading a doc
- /docs -t <topic> - Check freshness then read documentation
- /docs whats new - Show recent documentation changes (or "what's new")

Every request checks for the latest documentation from GitHub (takes ~0.4s).
The helper script handles all functionality including auto-updates.

Execute: %s
`

// Content renders the definition body for an installation directory. Windows
// invokes the helper through python; everywhere else runs the shell script
// directly.
func Content(installDir string, osType platform.OS) string {
	if osType == platform.Windows {
		helper := filepath.Join(installDir, "claude-docs-helper.py")
		return fmt.Sprintf(contentTemplate, helper, fmt.Sprintf(`python %q $ARGUMENTS`, helper))
	}
	helper := filepath.Join(installDir, "claude-docs-helper.sh")
	return fmt.Sprintf(contentTemplate, helper, fmt.Sprintf(`%s "$ARGUMENTS"`, helper))
}

// Write creates or replaces the definition file, creating the commands
// directory as needed. The write is atomic so a crash never leaves a
// half-written command.
func Write(commandsDir string, installDir string, osType platform.OS) (string, error) {
	if err := os.MkdirAll(commandsDir, 0o755); err != nil {
		return "", fmt.Errorf("create commands directory: %w", err)
	}
	path := filepath.Join(commandsDir, FileName)
	if err := fsutil.WriteFileAtomic(path, []byte(Content(installDir, osType)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the definition file if present and prunes the commands
// directory when that leaves it empty. A missing file is not an error.
func Remove(commandsDir string) (removed bool, err error) {
	path := filepath.Join(commandsDir, FileName)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove command file: %w", err)
	}
	// Best effort: os.Remove refuses non-empty directories, which is
	// exactly the behavior wanted here.
	if entries, err := os.ReadDir(commandsDir); err == nil && len(entries) == 0 {
		_ = os.Remove(commandsDir)
	}
	return true, nil
}
