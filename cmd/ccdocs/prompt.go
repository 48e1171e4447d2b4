package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/reconcile"
	"github.com/ericbuess/claude-code-docs-installer/internal/terminal"
	"github.com/ericbuess/claude-code-docs-installer/internal/ui"
)

var isTerminal = terminal.IsInteractive

// newConfirm builds the confirmation function commands hand to the installer.
// --yes answers everything affirmatively; interactive terminals get the huh
// form; piped input falls back to a line-based prompt. Any read failure or
// end-of-input declines.
func newConfirm(cmd *cobra.Command, assumeYes bool) reconcile.ConfirmFunc {
	return func(prompt string) bool {
		if assumeYes {
			return true
		}
		if isTerminal() {
			var value bool
			if err := ui.NewHuhUI().Confirm(prompt, &value); err == nil {
				return value
			}
		}
		ok, err := promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, false)
		if err != nil {
			return false
		}
		return ok
	}
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		if defaultYes {
			if _, err := fmt.Fprintf(out, messages.PromptYesDefaultFmt, prompt); err != nil {
				return false, err
			}
		} else {
			if _, err := fmt.Fprintf(out, messages.PromptNoDefaultFmt, prompt); err != nil {
				return false, err
			}
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			if err == nil {
				return defaultYes, nil
			}
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
