// Package cleanup removes leftover installation directories, but only when
// deletion is provably safe. The policy is preserve-on-doubt: anything that is
// not a clean git clone stays on disk and is reported to the user instead.
package cleanup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

// Inspector is the slice of git behavior the policy needs.
type Inspector interface {
	IsRepo(dir string) bool
	Status(ctx context.Context, dir string, excludeManifest bool, timeout time.Duration) (gitx.RepoStatus, error)
}

// Disposition records what happened to one directory.
type Disposition string

const (
	// Deleted means the directory was a clean repository and was removed.
	Deleted Disposition = "deleted"
	// PreservedNotRepo means the directory is not a git repository; it may
	// hold user data we cannot account for.
	PreservedNotRepo Disposition = "preserved (not a git repository)"
	// PreservedDirty means the repository holds uncommitted or untracked
	// work.
	PreservedDirty Disposition = "preserved (uncommitted changes)"
	// PreservedError means the repository state could not be determined.
	PreservedError Disposition = "preserved (status check failed)"
	// PreservedRemoveFailed means deletion was attempted but failed.
	PreservedRemoveFailed Disposition = "preserved (removal failed)"
)

// Result is the outcome for a single directory.
type Result struct {
	Path        string
	Disposition Disposition
	Detail      string
}

// Preserved reports whether the directory survived the sweep.
func (r Result) Preserved() bool {
	return r.Disposition != Deleted
}

// Policy decides per directory whether deletion is safe and performs it.
type Policy struct {
	git           Inspector
	statusTimeout time.Duration

	removeAllFunc func(path string) error
}

// New builds a policy around the given git inspector. statusTimeout bounds
// each per-directory status check.
func New(git Inspector, statusTimeout time.Duration, removeAll func(path string) error) *Policy {
	return &Policy{
		git:           git,
		statusTimeout: statusTimeout,
		removeAllFunc: removeAll,
	}
}

// Sweep applies the policy to every directory independently. A failure on one
// directory never aborts the sweep; each directory gets its own verdict.
// Progress is logged to out as it happens.
func (p *Policy) Sweep(ctx context.Context, dirs []string, out io.Writer) []Result {
	results := make([]Result, 0, len(dirs))
	for _, dir := range dirs {
		result := p.sweepOne(ctx, dir)
		results = append(results, result)
		p.report(out, result)
	}
	return results
}

func (p *Policy) sweepOne(ctx context.Context, dir string) Result {
	if !p.git.IsRepo(dir) {
		return Result{Path: dir, Disposition: PreservedNotRepo}
	}

	status, err := p.git.Status(ctx, dir, false, p.statusTimeout)
	if err != nil {
		return Result{Path: dir, Disposition: PreservedError, Detail: err.Error()}
	}
	if status.Dirty() {
		return Result{Path: dir, Disposition: PreservedDirty, Detail: status.Describe()}
	}

	if err := p.removeAllFunc(dir); err != nil {
		return Result{Path: dir, Disposition: PreservedRemoveFailed, Detail: err.Error()}
	}
	return Result{Path: dir, Disposition: Deleted}
}

func (p *Policy) report(out io.Writer, result Result) {
	switch result.Disposition {
	case Deleted:
		_, _ = fmt.Fprintf(out, messages.CleanupDeletedFmt, result.Path)
	case PreservedDirty:
		_, _ = fmt.Fprintf(out, messages.CleanupPreservedDirtyFmt, result.Path, result.Detail)
	case PreservedNotRepo:
		_, _ = fmt.Fprintf(out, messages.CleanupPreservedNotRepoFmt, result.Path)
	case PreservedError:
		_, _ = fmt.Fprintf(out, messages.CleanupPreservedErrorFmt, result.Path, result.Detail)
	case PreservedRemoveFailed:
		_, _ = fmt.Fprintf(out, messages.CleanupRemoveFailedFmt, result.Path, result.Detail)
	}
}

// PreservedPaths filters a sweep down to the directories left on disk.
func PreservedPaths(results []Result) []string {
	var paths []string
	for _, result := range results {
		if result.Preserved() {
			paths = append(paths, result.Path)
		}
	}
	return paths
}
