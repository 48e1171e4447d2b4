// Package terminal reports whether the installer is talking to a human.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals. Prompts
// that need a TTY (the confirm form) fall back to plain line reading when this
// returns false, so piped input still works.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
