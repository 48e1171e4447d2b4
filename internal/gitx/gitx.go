// Package gitx wraps the external git executable: locating it, running
// subcommands under explicit timeouts, and classifying working-copy status.
// Non-zero exits are data, not errors; callers inspect exit codes.
package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

// ErrNotFound reports that no working git executable could be located. It is
// a distinct condition from a git command failing.
var ErrNotFound = errors.New(messages.GitNotFound)

// ErrTimeout reports that a git command exceeded its bound. Treated by
// callers identically to a command failure, never as a hang.
var ErrTimeout = errors.New(messages.GitTimedOut)

// probeTimeout bounds the --version probe used to validate a candidate
// executable.
const probeTimeout = 10 * time.Second

// windowsFallbackPaths are conventional install locations probed when the
// search path yields nothing.
var windowsFallbackPaths = []string{
	`C:\Program Files\Git\bin\git.exe`,
	`C:\Program Files (x86)\Git\bin\git.exe`,
	`C:\Git\bin\git.exe`,
	`C:\msys64\usr\bin\git.exe`,
	`C:\Program Files\Git\cmd\git.exe`,
}

// Result is the captured outcome of one git subprocess.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Git resolves and invokes the external git executable. The resolved path is
// memoized for the process lifetime behind Locate.
type Git struct {
	manifest string

	mu        sync.Mutex
	exe       string
	located   bool
	locateErr error

	goos     string
	lookPath func(file string) (string, error)
	statFunc func(name string) (os.FileInfo, error)
	execFunc func(ctx context.Context, dir string, exe string, args []string) (Result, error)
}

// New returns a gateway whose status checks treat manifestRelPath as the
// designated manifest file for exclusion mode.
func New(manifestRelPath string) *Git {
	return &Git{
		manifest: manifestRelPath,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		statFunc: os.Stat,
		execFunc: runProcess,
	}
}

// Locate resolves the git executable: search-path lookup of the known names,
// then fixed platform-conventional locations, each verified by a --version
// probe. The first working path is cached; failures are cached too so one run
// never re-resolves.
func (g *Git) Locate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.located {
		return g.exe, g.locateErr
	}
	g.located = true

	names := []string{"git"}
	if g.goos == "windows" {
		names = append(names, "git.exe", "git.cmd")
	}
	for _, name := range names {
		path, err := g.lookPath(name)
		if err != nil || path == "" {
			continue
		}
		if g.probe(path) {
			g.exe = path
			return g.exe, nil
		}
	}
	if g.goos == "windows" {
		for _, path := range windowsFallbackPaths {
			if _, err := g.statFunc(path); err != nil {
				continue
			}
			if g.probe(path) {
				g.exe = path
				return g.exe, nil
			}
		}
	}
	g.locateErr = ErrNotFound
	return "", g.locateErr
}

// probe reports whether the candidate responds to a version query.
func (g *Git) probe(path string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	res, err := g.execFunc(ctx, "", path, []string{"--version"})
	return err == nil && res.ExitCode == 0
}

// Version returns the version line of the resolved executable.
func (g *Git) Version(ctx context.Context) (string, error) {
	res, err := g.Run(ctx, "", probeTimeout, "--version")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf(messages.GitVersionProbeFailedFmt, res.ExitCode)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Run executes a git subcommand in dir bounded by timeout. A non-zero exit is
// returned in the Result; only executable absence, timeout, or a start
// failure surface as errors.
func (g *Git) Run(ctx context.Context, dir string, timeout time.Duration, args ...string) (Result, error) {
	exe, err := g.Locate()
	if err != nil {
		return Result{}, err
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, err := g.execFunc(runCtx, dir, exe, args)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("%w: git %s", ErrTimeout, strings.Join(args, " "))
		}
		return Result{}, fmt.Errorf(messages.GitRunFailedFmt, strings.Join(args, " "), err)
	}
	return res, nil
}

// CurrentBranch never fails the caller; any resolution problem degrades to
// the "unknown" sentinel.
func (g *Git) CurrentBranch(ctx context.Context, dir string, timeout time.Duration) string {
	res, err := g.Run(ctx, dir, timeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || res.ExitCode != 0 {
		return messages.GitBranchUnknown
	}
	branch := strings.TrimSpace(res.Stdout)
	if branch == "" {
		return messages.GitBranchUnknown
	}
	return branch
}

// Status classifies the working copy from machine-readable short-format
// output. With excludeManifest set, lines touching the designated manifest
// file are ignored for the change and conflict flags.
func (g *Git) Status(ctx context.Context, dir string, excludeManifest bool, timeout time.Duration) (RepoStatus, error) {
	res, err := g.Run(ctx, dir, timeout, "status", "--porcelain")
	if err != nil {
		return RepoStatus{}, err
	}
	if res.ExitCode != 0 {
		return RepoStatus{}, fmt.Errorf(messages.GitStatusFailedFmt, dir, strings.TrimSpace(res.Stderr))
	}
	status := parseStatus(res.Stdout, g.manifest, excludeManifest)
	status.Branch = g.CurrentBranch(ctx, dir, timeout)
	return status, nil
}

// StatusLines returns the raw porcelain lines, used by callers that need to
// reason about manifest-only churn directly.
func (g *Git) StatusLines(ctx context.Context, dir string, timeout time.Duration) ([]string, error) {
	res, err := g.Run(ctx, dir, timeout, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf(messages.GitStatusFailedFmt, dir, strings.TrimSpace(res.Stderr))
	}
	return splitStatusLines(res.Stdout), nil
}

// AbortInFlight aborts an in-progress merge and rebase, best-effort. There
// may be nothing to abort, so failures are swallowed.
func (g *Git) AbortInFlight(ctx context.Context, dir string, timeout time.Duration) {
	_, _ = g.Run(ctx, dir, timeout, "merge", "--abort")
	_, _ = g.Run(ctx, dir, timeout, "rebase", "--abort")
}

// EnsurePullRebaseConfig sets pull.rebase=false only when the repository has
// no explicit prior choice.
func (g *Git) EnsurePullRebaseConfig(ctx context.Context, dir string, timeout time.Duration) {
	res, err := g.Run(ctx, dir, timeout, "config", "pull.rebase")
	if err != nil || res.ExitCode == 0 {
		return
	}
	_, _ = g.Run(ctx, dir, timeout, "config", "pull.rebase", "false")
}

// Pull quietly pulls branch from origin.
func (g *Git) Pull(ctx context.Context, dir string, branch string, timeout time.Duration) error {
	res, err := g.Run(ctx, dir, timeout, "pull", "--quiet", "origin", branch)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf(messages.GitPullFailedFmt, branch, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Fetch fetches branch from origin.
func (g *Git) Fetch(ctx context.Context, dir string, branch string, timeout time.Duration) error {
	res, err := g.Run(ctx, dir, timeout, "fetch", "origin", branch)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf(messages.GitFetchFailedFmt, branch, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Clone clones branch from url into dir.
func (g *Git) Clone(ctx context.Context, branch string, url string, dir string, timeout time.Duration) error {
	res, err := g.Run(ctx, "", timeout, "clone", "-b", branch, url, dir)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf(messages.GitCloneFailedFmt, url, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// ForceCleanCheckout resets the index, force-creates the local branch on the
// remote tip, hard-resets the working tree, and removes untracked files.
// Destructive by design; callers obtain consent first. Any failed step aborts
// the sequence.
func (g *Git) ForceCleanCheckout(ctx context.Context, dir string, branch string, timeout time.Duration) error {
	if _, err := g.Run(ctx, dir, timeout, "reset"); err != nil {
		return err
	}
	remote := "origin/" + branch
	res, err := g.Run(ctx, dir, timeout, "checkout", "-B", branch, remote)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf(messages.GitCheckoutFailedFmt, branch, strings.TrimSpace(res.Stderr))
	}
	res, err = g.Run(ctx, dir, timeout, "reset", "--hard", remote)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf(messages.GitResetFailedFmt, remote, strings.TrimSpace(res.Stderr))
	}
	res, err = g.Run(ctx, dir, timeout, "clean", "-fd")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf(messages.GitCleanFailedFmt, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// IsRepo reports whether dir carries version-control metadata.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// IsRepo is the method form used behind the repository-inspection interfaces.
func (g *Git) IsRepo(dir string) bool {
	return IsRepo(dir)
}

// runProcess is the real subprocess executor behind execFunc.
func runProcess(ctx context.Context, dir string, exe string, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, err
	}
	return res, nil
}
