// Package reconcile drives the installation-state machine: given the canonical
// target directory and whatever the legacy scanner found, it decides between
// updating in place, migrating an old installation, or cloning fresh, and then
// executes that path. Destructive resets go through interactive confirmation.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

// Gateway is the slice of git behavior the engine drives. *gitx.Git satisfies
// it; tests substitute a fake.
type Gateway interface {
	IsRepo(dir string) bool
	CurrentBranch(ctx context.Context, dir string, timeout time.Duration) string
	Status(ctx context.Context, dir string, excludeManifest bool, timeout time.Duration) (gitx.RepoStatus, error)
	StatusLines(ctx context.Context, dir string, timeout time.Duration) ([]string, error)
	EnsurePullRebaseConfig(ctx context.Context, dir string, timeout time.Duration)
	Pull(ctx context.Context, dir string, branch string, timeout time.Duration) error
	Fetch(ctx context.Context, dir string, branch string, timeout time.Duration) error
	AbortInFlight(ctx context.Context, dir string, timeout time.Duration)
	ForceCleanCheckout(ctx context.Context, dir string, branch string, timeout time.Duration) error
	Clone(ctx context.Context, branch string, url string, dir string, timeout time.Duration) error
}

// ConfirmFunc asks the operator a yes/no question. Implementations treat
// end-of-input as a decline.
type ConfirmFunc func(prompt string) bool

// Outcome is the terminal result of one reconciliation run.
type Outcome string

const (
	Updated        Outcome = "updated"
	Migrated       Outcome = "migrated"
	FreshInstalled Outcome = "fresh-installed"
	Failed         Outcome = "failed"
)

// Report carries the outcome plus the details the installer needs afterwards.
type Report struct {
	Outcome Outcome
	// Reason explains a Failed outcome.
	Reason string
	// MigratedFrom is the legacy directory a migration started from.
	MigratedFrom string
	// PreservedSource is set when the migration source was kept on disk
	// because it held local changes.
	PreservedSource string
}

// Failedf builds a failure report.
func Failedf(format string, args ...any) Report {
	return Report{Outcome: Failed, Reason: fmt.Sprintf(format, args...)}
}

// Engine executes the reconciliation state machine.
type Engine struct {
	git     Gateway
	cfg     config.Config
	marker  string
	confirm ConfirmFunc
	out     io.Writer

	statFunc      func(name string) (os.FileInfo, error)
	mkdirAllFunc  func(path string, perm os.FileMode) error
	removeAllFunc func(path string) error
}

// New builds an engine. marker is the manifest path relative to an
// installation root whose presence marks the installation complete.
func New(git Gateway, cfg config.Config, marker string, confirm ConfirmFunc, out io.Writer) *Engine {
	return &Engine{
		git:           git,
		cfg:           cfg,
		marker:        marker,
		confirm:       confirm,
		out:           out,
		statFunc:      os.Stat,
		mkdirAllFunc:  os.MkdirAll,
		removeAllFunc: os.RemoveAll,
	}
}

// IsComplete reports whether dir holds a finished installation: the manifest
// marker file must exist. A directory without it counts as absent for entry
// state purposes.
func (e *Engine) IsComplete(dir string) bool {
	info, err := e.statFunc(filepath.Join(dir, e.marker))
	return err == nil && !info.IsDir()
}

// Reconcile inspects the target and dispatches to the matching path.
// candidates is the scanner's sorted legacy list; only the first entry is ever
// migrated, the rest are left for the cleanup pass.
func (e *Engine) Reconcile(ctx context.Context, targetDir string, candidates []string) Report {
	switch {
	case e.IsComplete(targetDir):
		return e.UpdateInPlace(ctx, targetDir)
	case len(candidates) > 0:
		return e.MigrateFrom(ctx, candidates[0], targetDir)
	default:
		return e.FreshClone(ctx, targetDir)
	}
}

// UpdateInPlace refreshes an existing installation. The fast path is a quiet
// pull; when that fails the engine falls back to fetch plus a forced clean
// checkout, pausing for confirmation if local changes would be lost.
func (e *Engine) UpdateInPlace(ctx context.Context, dir string) Report {
	branch := e.git.CurrentBranch(ctx, dir, e.cfg.InspectTimeout())
	switching := branch != e.cfg.Branch
	if switching {
		_, _ = fmt.Fprintf(e.out, messages.UpdateBranchSwitchFmt, branch, e.cfg.Branch)
	}

	e.git.EnsurePullRebaseConfig(ctx, dir, e.cfg.DefaultTimeout())

	if err := e.git.Pull(ctx, dir, e.cfg.Branch, e.cfg.NetworkTimeout()); err == nil {
		return Report{Outcome: Updated}
	}

	if err := e.git.Fetch(ctx, dir, e.cfg.Branch, e.cfg.NetworkTimeout()); err != nil {
		return Failedf(messages.UpdateFetchFailedFmt, err)
	}

	// Branch switches always force a clean reset; change detection only
	// applies when staying on the same branch.
	if !switching {
		status, err := e.git.Status(ctx, dir, true, e.cfg.InspectTimeout())
		if err != nil {
			return Failedf(messages.UpdateStatusFailedFmt, err)
		}
		if status.Dirty() {
			_, _ = fmt.Fprintf(e.out, messages.UpdateLocalChangesWarnFmt, dir, status.Describe())
			if !e.confirm(messages.UpdateResetPrompt) {
				return Failedf(messages.UpdateDeclinedFmt, dir)
			}
		} else if e.manifestOnlyChange(ctx, dir) {
			_, _ = fmt.Fprintf(e.out, messages.UpdateManifestOnlyFmt, e.marker)
		}
	}

	e.git.AbortInFlight(ctx, dir, e.cfg.DefaultTimeout())
	if err := e.git.ForceCleanCheckout(ctx, dir, e.cfg.Branch, e.cfg.DefaultTimeout()); err != nil {
		return Failedf(messages.UpdateResetFailedFmt, err)
	}
	return Report{Outcome: Updated}
}

// manifestOnlyChange reports whether every pending change touches the
// manifest. Manifest churn is expected and auto-resolved, so it is logged
// rather than blocked on.
func (e *Engine) manifestOnlyChange(ctx context.Context, dir string) bool {
	lines, err := e.git.StatusLines(ctx, dir, e.cfg.InspectTimeout())
	if err != nil || len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !strings.Contains(line, e.marker) {
			return false
		}
	}
	return true
}

// MigrateFrom clones fresh at the target, then disposes of the old directory:
// deleted when clean, preserved when it holds local changes or its state
// cannot be determined.
func (e *Engine) MigrateFrom(ctx context.Context, oldDir string, targetDir string) Report {
	preserve := false
	if e.git.IsRepo(oldDir) {
		status, err := e.git.Status(ctx, oldDir, false, e.cfg.InspectTimeout())
		if err != nil || status.Dirty() {
			preserve = true
			_, _ = fmt.Fprintf(e.out, messages.MigratePreservingFmt, oldDir)
		}
	}

	if report := e.FreshClone(ctx, targetDir); report.Outcome != FreshInstalled {
		return report
	}

	result := Report{Outcome: Migrated, MigratedFrom: oldDir}
	if preserve {
		result.PreservedSource = oldDir
		return result
	}
	// The new installation is already valid at this point, so a deletion
	// failure is reported but does not fail the migration.
	if err := e.removeAllFunc(oldDir); err != nil {
		_, _ = fmt.Fprintf(e.out, messages.MigrateDeleteOldFailedFmt, oldDir, err)
	} else {
		_, _ = fmt.Fprintf(e.out, messages.MigrateDeletedOldFmt, oldDir)
	}
	return result
}

// FreshClone installs from scratch: clear any stale partial directory, clone
// the configured branch, and verify the manifest marker landed.
func (e *Engine) FreshClone(ctx context.Context, targetDir string) Report {
	if err := e.mkdirAllFunc(filepath.Dir(targetDir), 0o755); err != nil {
		return Failedf(messages.CloneParentDirFailedFmt, err)
	}
	if _, err := e.statFunc(targetDir); err == nil {
		if err := e.removeAllFunc(targetDir); err != nil {
			return Failedf(messages.CloneRemoveStaleFailedFmt, targetDir, err)
		}
	}
	if err := e.git.Clone(ctx, e.cfg.Branch, e.cfg.RepoURL, targetDir, e.cfg.CloneTimeout()); err != nil {
		return Failedf(messages.CloneFailedFmt, err)
	}
	// A clone that exits zero but lacks the marker is incomplete, not
	// installed.
	if !e.IsComplete(targetDir) {
		return Failedf(messages.CloneIncompleteFmt, e.marker)
	}
	return Report{Outcome: FreshInstalled}
}
