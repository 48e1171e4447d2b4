// Package ui renders the interactive confirmation prompt used before
// destructive operations.
package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/terminal"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// HuhUI renders prompts with charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

// NewHuhUI creates a prompt UI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// confirmKeyMap maps both Esc and Ctrl+C to abort so either key declines.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	return km
}

// Confirm renders a yes/no prompt. Aborting the form counts as a decline
// rather than an error, matching the rule that end-of-input never proceeds
// with a destructive action.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return errors.New(messages.ConfirmRequiresTerminal)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	)
	form.WithKeyMap(confirmKeyMap())

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		*value = false
		return nil
	}
	return err
}
