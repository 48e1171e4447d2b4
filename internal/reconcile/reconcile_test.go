package reconcile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
)

const marker = "docs/docs_manifest.json"

type fakeGateway struct {
	repos       map[string]bool
	branch      string
	status      gitx.RepoStatus
	statusErr   error
	statusLines []string
	pullErr     error
	fetchErr    error
	checkoutErr error
	cloneErr    error
	cloneMarker bool // write the marker file on successful clone

	calls []string
}

func (f *fakeGateway) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeGateway) IsRepo(dir string) bool { return f.repos[dir] }

func (f *fakeGateway) CurrentBranch(context.Context, string, time.Duration) string {
	if f.branch == "" {
		return "main"
	}
	return f.branch
}

func (f *fakeGateway) Status(context.Context, string, bool, time.Duration) (gitx.RepoStatus, error) {
	f.record("status")
	return f.status, f.statusErr
}

func (f *fakeGateway) StatusLines(context.Context, string, time.Duration) ([]string, error) {
	return f.statusLines, nil
}

func (f *fakeGateway) EnsurePullRebaseConfig(context.Context, string, time.Duration) {
	f.record("config")
}

func (f *fakeGateway) Pull(context.Context, string, string, time.Duration) error {
	f.record("pull")
	return f.pullErr
}

func (f *fakeGateway) Fetch(context.Context, string, string, time.Duration) error {
	f.record("fetch")
	return f.fetchErr
}

func (f *fakeGateway) AbortInFlight(context.Context, string, time.Duration) {
	f.record("abort")
}

func (f *fakeGateway) ForceCleanCheckout(context.Context, string, string, time.Duration) error {
	f.record("checkout")
	return f.checkoutErr
}

func (f *fakeGateway) Clone(_ context.Context, _ string, _ string, dir string, _ time.Duration) error {
	f.record("clone")
	if f.cloneErr != nil {
		return f.cloneErr
	}
	if f.cloneMarker {
		if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(marker)), 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, marker), []byte("{}"), 0o644)
	}
	return os.MkdirAll(dir, 0o755)
}

func confirmAlways(string) bool { return true }
func confirmNever(string) bool  { return false }

func newEngine(git *fakeGateway, confirm ConfirmFunc, out *bytes.Buffer) *Engine {
	return New(git, config.Default(), marker, confirm, out)
}

func installedDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "claude-code-docs")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, marker), []byte("{}"), 0o644))
	return dir
}

func TestReconcileDispatchesToUpdateWhenTargetComplete(t *testing.T) {
	git := &fakeGateway{}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)

	report := e.Reconcile(context.Background(), installedDir(t), nil)

	assert.Equal(t, Updated, report.Outcome)
	assert.Contains(t, git.calls, "pull")
	assert.NotContains(t, git.calls, "clone")
}

func TestReconcileDispatchesToMigrateWhenCandidateExists(t *testing.T) {
	git := &fakeGateway{cloneMarker: true}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.Reconcile(context.Background(), target, []string{"/legacy/one", "/legacy/two"})

	assert.Equal(t, Migrated, report.Outcome)
	assert.Equal(t, "/legacy/one", report.MigratedFrom)
}

func TestReconcileDispatchesToFreshCloneOtherwise(t *testing.T) {
	git := &fakeGateway{cloneMarker: true}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.Reconcile(context.Background(), target, nil)

	assert.Equal(t, FreshInstalled, report.Outcome)
	assert.Equal(t, []string{"clone"}, git.calls)
}

func TestUpdateInPlacePullSuccessIsEnough(t *testing.T) {
	git := &fakeGateway{}
	var out bytes.Buffer
	e := newEngine(git, confirmNever, &out)

	report := e.UpdateInPlace(context.Background(), installedDir(t))

	assert.Equal(t, Updated, report.Outcome)
	assert.Equal(t, []string{"config", "pull"}, git.calls)
}

func TestUpdateInPlaceIsIdempotent(t *testing.T) {
	git := &fakeGateway{}
	var out bytes.Buffer
	e := newEngine(git, confirmNever, &out)
	dir := installedDir(t)

	first := e.UpdateInPlace(context.Background(), dir)
	second := e.UpdateInPlace(context.Background(), dir)

	assert.Equal(t, Updated, first.Outcome)
	assert.Equal(t, Updated, second.Outcome)
	assert.Equal(t, []string{"config", "pull", "config", "pull"}, git.calls)
}

func TestUpdateInPlaceFetchFailureFails(t *testing.T) {
	git := &fakeGateway{
		pullErr:  errors.New("pull rejected"),
		fetchErr: errors.New("network unreachable"),
	}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)

	report := e.UpdateInPlace(context.Background(), installedDir(t))

	assert.Equal(t, Failed, report.Outcome)
	assert.Contains(t, report.Reason, "network unreachable")
	assert.NotContains(t, git.calls, "checkout")
}

func TestUpdateInPlaceDeclinePreservesLocalState(t *testing.T) {
	git := &fakeGateway{
		pullErr: errors.New("pull rejected"),
		status:  gitx.RepoStatus{HasUncommittedChanges: true},
	}
	var out bytes.Buffer
	e := newEngine(git, confirmNever, &out)

	report := e.UpdateInPlace(context.Background(), installedDir(t))

	assert.Equal(t, Failed, report.Outcome)
	assert.NotContains(t, git.calls, "abort")
	assert.NotContains(t, git.calls, "checkout")
	assert.Contains(t, out.String(), "uncommitted changes")
}

func TestUpdateInPlaceAcceptedResetProceeds(t *testing.T) {
	git := &fakeGateway{
		pullErr: errors.New("pull rejected"),
		status:  gitx.RepoStatus{HasUntrackedFiles: true, HasUncommittedChanges: true},
	}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)

	report := e.UpdateInPlace(context.Background(), installedDir(t))

	assert.Equal(t, Updated, report.Outcome)
	assert.Equal(t, []string{"config", "pull", "fetch", "status", "abort", "checkout"}, git.calls)
}

func TestUpdateInPlaceBranchSwitchSkipsChangeDetection(t *testing.T) {
	git := &fakeGateway{
		branch:  "feature",
		pullErr: errors.New("pull rejected"),
		status:  gitx.RepoStatus{HasUncommittedChanges: true},
	}
	var out bytes.Buffer
	confirmed := false
	e := newEngine(git, func(string) bool { confirmed = true; return false }, &out)

	report := e.UpdateInPlace(context.Background(), installedDir(t))

	assert.Equal(t, Updated, report.Outcome)
	assert.False(t, confirmed)
	assert.NotContains(t, git.calls, "status")
	assert.Contains(t, out.String(), "feature")
}

func TestUpdateInPlaceManifestOnlyChangeLogsWithoutPrompting(t *testing.T) {
	git := &fakeGateway{
		pullErr:     errors.New("pull rejected"),
		statusLines: []string{" M " + marker},
	}
	var out bytes.Buffer
	confirmed := false
	e := newEngine(git, func(string) bool { confirmed = true; return true }, &out)

	report := e.UpdateInPlace(context.Background(), installedDir(t))

	assert.Equal(t, Updated, report.Outcome)
	assert.False(t, confirmed)
	assert.Contains(t, out.String(), marker)
}

func TestFreshCloneMissingMarkerFails(t *testing.T) {
	git := &fakeGateway{cloneMarker: false}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.FreshClone(context.Background(), target)

	assert.Equal(t, Failed, report.Outcome)
	assert.Contains(t, report.Reason, marker)
}

func TestFreshCloneRemovesStalePartialDirectory(t *testing.T) {
	git := &fakeGateway{cloneMarker: true}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)

	target := filepath.Join(t.TempDir(), "claude-code-docs")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "stale"), []byte("x"), 0o644))

	report := e.FreshClone(context.Background(), target)

	assert.Equal(t, FreshInstalled, report.Outcome)
	_, err := os.Stat(filepath.Join(target, "stale"))
	assert.True(t, os.IsNotExist(err))
}

func TestMigrateCleanSourceIsDeleted(t *testing.T) {
	old := t.TempDir()
	git := &fakeGateway{
		cloneMarker: true,
		repos:       map[string]bool{old: true},
	}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.MigrateFrom(context.Background(), old, target)

	assert.Equal(t, Migrated, report.Outcome)
	assert.Empty(t, report.PreservedSource)
	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err))
}

func TestMigrateDirtySourceIsPreserved(t *testing.T) {
	old := t.TempDir()
	git := &fakeGateway{
		cloneMarker: true,
		repos:       map[string]bool{old: true},
		status:      gitx.RepoStatus{HasUncommittedChanges: true},
	}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.MigrateFrom(context.Background(), old, target)

	assert.Equal(t, Migrated, report.Outcome)
	assert.Equal(t, old, report.PreservedSource)
	_, err := os.Stat(old)
	assert.NoError(t, err)
}

func TestMigrateStatusErrorPreservesSource(t *testing.T) {
	old := t.TempDir()
	git := &fakeGateway{
		cloneMarker: true,
		repos:       map[string]bool{old: true},
		statusErr:   errors.New("git timed out"),
	}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.MigrateFrom(context.Background(), old, target)

	assert.Equal(t, Migrated, report.Outcome)
	assert.Equal(t, old, report.PreservedSource)
}

func TestMigrateCloneFailureAbortsWithoutTouchingSource(t *testing.T) {
	old := t.TempDir()
	git := &fakeGateway{
		cloneErr: errors.New("remote hung up"),
		repos:    map[string]bool{old: true},
	}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)
	target := filepath.Join(t.TempDir(), "claude-code-docs")

	report := e.MigrateFrom(context.Background(), old, target)

	assert.Equal(t, Failed, report.Outcome)
	_, err := os.Stat(old)
	assert.NoError(t, err)
}

func TestIsComplete(t *testing.T) {
	git := &fakeGateway{}
	var out bytes.Buffer
	e := newEngine(git, confirmAlways, &out)

	assert.True(t, e.IsComplete(installedDir(t)))
	assert.False(t, e.IsComplete(t.TempDir()))
}
