package installer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/fsutil"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

// Windows cannot execute the shell helper directly, so the installer drops two
// shims next to it: a batch wrapper for the hook command and a python wrapper
// for the slash command. Both prefer bash (Git for Windows ships one) and the
// python shim falls back to reading docs without the helper.

const batchHelperTemplate = `@echo off
REM Claude Code Docs helper wrapper
where bash >nul 2>nul
if %%ERRORLEVEL%% EQU 0 (
    bash "%s" %%*
) else (
    python "%s" %%*
)
`

const pythonHelperTemplate = `#!/usr/bin/env python3
"""Claude Code Docs helper wrapper for Windows."""
import os
import subprocess
import sys

INSTALL_DIR = os.path.dirname(os.path.abspath(__file__))
SHELL_HELPER = os.path.join(INSTALL_DIR, %q)


def main():
    try:
        result = subprocess.run(
            ["bash", SHELL_HELPER] + sys.argv[1:], check=False
        )
        sys.exit(result.returncode)
    except FileNotFoundError:
        print("bash not found; install Git for Windows to enable /docs helpers")
        docs_dir = os.path.join(INSTALL_DIR, "docs")
        if os.path.isdir(docs_dir):
            print("Documentation is available at: " + docs_dir)
        sys.exit(1)


if __name__ == "__main__":
    main()
`

func (in *Installer) writeWindowsHelper() error {
	shellHelper := filepath.Join(in.paths.InstallDir, config.HelperScriptName)
	pythonHelper := filepath.Join(in.paths.InstallDir, "claude-docs-helper.py")
	batchHelper := filepath.Join(in.paths.InstallDir, "claude-docs-helper.bat")

	// Batch files want backslash-free paths when handed to bash.
	bashPath := strings.ReplaceAll(shellHelper, `\`, `/`)

	batch := fmt.Sprintf(batchHelperTemplate, bashPath, pythonHelper)
	if err := fsutil.WriteFileAtomic(batchHelper, []byte(batch), 0o755); err != nil {
		return fmt.Errorf(messages.HelperInstallFailedFmt, err)
	}

	python := fmt.Sprintf(pythonHelperTemplate, config.HelperScriptName)
	if err := fsutil.WriteFileAtomic(pythonHelper, []byte(python), 0o755); err != nil {
		return fmt.Errorf(messages.HelperInstallFailedFmt, err)
	}
	return nil
}
