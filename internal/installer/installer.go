// Package installer sequences the full install and uninstall pipelines:
// preflight checks, legacy discovery, repository reconciliation, helper
// script setup, and host configuration rewiring.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/ericbuess/claude-code-docs-installer/internal/cleanup"
	"github.com/ericbuess/claude-code-docs-installer/internal/command"
	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/doctor"
	"github.com/ericbuess/claude-code-docs-installer/internal/fsutil"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/platform"
	"github.com/ericbuess/claude-code-docs-installer/internal/reconcile"
	"github.com/ericbuess/claude-code-docs-installer/internal/scan"
	"github.com/ericbuess/claude-code-docs-installer/internal/settings"
)

// ErrCancelled is returned when the operator declines a confirmation prompt.
var ErrCancelled = errors.New(messages.OperationCancelled)

// templateURLFmt is the direct-download fallback for the helper script
// template when the clone somehow lacks it.
const templateURLFmt = "https://raw.githubusercontent.com/ericbuess/claude-code-docs/%s/scripts/claude-docs-helper.sh.template"

const downloadTimeout = 30 * time.Second

// Engine reconciles the target installation directory.
type Engine interface {
	Reconcile(ctx context.Context, targetDir string, candidates []string) reconcile.Report
}

// Scanner discovers legacy installation candidates.
type Scanner interface {
	Discover(warn io.Writer) []scan.Candidate
}

// Sweeper disposes of leftover installation directories.
type Sweeper interface {
	Sweep(ctx context.Context, dirs []string, out io.Writer) []cleanup.Result
}

// Installer wires the pipeline components together.
type Installer struct {
	cfg     config.Config
	paths   platform.Paths
	osType  platform.OS
	out     io.Writer
	confirm reconcile.ConfirmFunc

	engine    Engine
	scanner   Scanner
	sweeper   Sweeper
	preflight func(ctx context.Context) []doctor.Result

	statFunc    func(name string) (os.FileInfo, error)
	chmodFunc   func(name string, mode os.FileMode) error
	httpGetFunc func(ctx context.Context, url string) ([]byte, error)
}

// New builds an installer over a real git gateway.
func New(cfg config.Config, paths platform.Paths, osType platform.OS, git *gitx.Git, confirm reconcile.ConfirmFunc, out io.Writer) *Installer {
	in := &Installer{
		cfg:     cfg,
		paths:   paths,
		osType:  osType,
		out:     out,
		confirm: confirm,
		engine:  reconcile.New(git, cfg, config.MarkerRelPath, confirm, out),
		scanner: scan.New(paths.CommandFile, paths.SettingsFile, paths.InstallDir, config.DirName, config.MarkerRelPath),
		sweeper: cleanup.New(git, cfg.InspectTimeout(), os.RemoveAll),
		preflight: func(ctx context.Context) []doctor.Result {
			return doctor.All(ctx, git, osType, paths)
		},
		statFunc:    os.Stat,
		chmodFunc:   os.Chmod,
		httpGetFunc: httpGet,
	}
	return in
}

// Install runs the full installation pipeline. Preflight failures and
// reconciliation failures abort; an unreachable network during preflight is
// only a warning since an existing clone still works offline.
func (in *Installer) Install(ctx context.Context) error {
	_, _ = fmt.Fprintln(in.out, messages.InstallHeader)

	results := in.preflight(ctx)
	for _, r := range results {
		printCheck(in.out, r)
	}
	if doctor.HasFailure(results) {
		return errors.New(messages.InstallPreflightFailed)
	}

	candidates := in.scanner.Discover(in.out)
	for _, cand := range candidates {
		_, _ = fmt.Fprintf(in.out, messages.InstallFoundLegacyFmt, cand.Path, cand.Source)
	}

	report := in.engine.Reconcile(ctx, in.paths.InstallDir, scan.Paths(candidates))
	if report.Outcome == reconcile.Failed {
		return errors.New(report.Reason)
	}

	if err := in.setupHelperScript(ctx); err != nil {
		return err
	}

	commandsDir := filepath.Dir(in.paths.CommandFile)
	if _, err := command.Write(commandsDir, in.paths.InstallDir, in.osType); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(in.out, messages.InstallCommandCreatedFmt, in.paths.CommandFile)

	if err := in.installHooks(); err != nil {
		return err
	}

	in.sweepLeftovers(ctx, candidates, report)

	_, _ = fmt.Fprintln(in.out, color.GreenString(messages.InstallSuccess))
	_, _ = fmt.Fprintf(in.out, messages.InstallLocationFmt, in.paths.InstallDir)
	return nil
}

// Uninstall removes the command file, the hooks, and every installation
// directory the cleanup policy deems safe to delete.
func (in *Installer) Uninstall(ctx context.Context) error {
	_, _ = fmt.Fprintln(in.out, messages.UninstallHeader)

	dirs := in.allInstallations()
	if len(dirs) > 0 {
		_, _ = fmt.Fprintln(in.out, messages.UninstallFoundHeader)
		for _, dir := range dirs {
			_, _ = fmt.Fprintf(in.out, messages.UninstallFoundDirFmt, dir)
		}
	}

	_, _ = fmt.Fprintf(in.out, messages.UninstallPlanFmt, in.paths.CommandFile, in.paths.SettingsFile)

	if !in.confirm(messages.UninstallPrompt) {
		_, _ = fmt.Fprintln(in.out, messages.OperationCancelled)
		return ErrCancelled
	}

	commandsDir := filepath.Dir(in.paths.CommandFile)
	removed, err := command.Remove(commandsDir)
	if err != nil {
		return err
	}
	if removed {
		_, _ = fmt.Fprintf(in.out, messages.UninstallCommandRemovedFmt, in.paths.CommandFile)
	}

	if err := in.removeHooks(); err != nil {
		return err
	}

	if len(dirs) > 0 {
		in.sweeper.Sweep(ctx, dirs, in.out)
	}

	_, _ = fmt.Fprintln(in.out, color.GreenString(messages.UninstallSuccess))
	return nil
}

// allInstallations is the union of scanner candidates and the canonical
// target, for uninstall's remove-everything pass.
func (in *Installer) allInstallations() []string {
	dirs := scan.Paths(in.scanner.Discover(in.out))
	if _, err := in.statFunc(in.paths.InstallDir); err == nil {
		for _, dir := range dirs {
			if dir == in.paths.InstallDir {
				return dirs
			}
		}
		dirs = append(dirs, in.paths.InstallDir)
	}
	return dirs
}

// sweepLeftovers cleans up legacy candidates that migration did not already
// dispose of.
func (in *Installer) sweepLeftovers(ctx context.Context, candidates []scan.Candidate, report reconcile.Report) {
	var leftovers []string
	for _, cand := range candidates {
		if cand.Path == report.MigratedFrom {
			continue
		}
		leftovers = append(leftovers, cand.Path)
	}
	if len(leftovers) == 0 {
		return
	}
	_, _ = fmt.Fprintln(in.out, messages.InstallCleanupHeader)
	in.sweeper.Sweep(ctx, leftovers, in.out)
}

// setupHelperScript installs the helper from the cloned template, falling
// back to a direct download when the template is missing from the clone.
func (in *Installer) setupHelperScript(ctx context.Context) error {
	template := filepath.Join(in.paths.InstallDir, config.HelperTemplateRelPath)
	helper := filepath.Join(in.paths.InstallDir, config.HelperScriptName)

	if _, err := in.statFunc(template); err == nil {
		if err := fsutil.CopyFile(template, helper); err != nil {
			return fmt.Errorf(messages.HelperInstallFailedFmt, err)
		}
	} else {
		_, _ = fmt.Fprintln(in.out, messages.HelperTemplateMissing)
		url := fmt.Sprintf(templateURLFmt, in.cfg.Branch)
		data, err := in.httpGetFunc(ctx, url)
		if err != nil {
			return fmt.Errorf(messages.HelperDownloadFailedFmt, err)
		}
		if err := fsutil.WriteFileAtomic(helper, data, 0o755); err != nil {
			return fmt.Errorf(messages.HelperInstallFailedFmt, err)
		}
	}

	if in.osType != platform.Windows {
		if err := in.chmodFunc(helper, 0o755); err != nil {
			return fmt.Errorf(messages.HelperInstallFailedFmt, err)
		}
	} else if err := in.writeWindowsHelper(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(in.out, messages.HelperInstalled)
	return nil
}

// installHooks rewires the settings hooks at the new installation, previewing
// the settings change before writing it.
func (in *Installer) installHooks() error {
	doc, err := settings.Load(in.paths.SettingsFile)
	if err != nil {
		return err
	}
	before, err := doc.MarshalIndent()
	if err != nil {
		return err
	}

	removed, err := doc.InstallHook(config.DirName, in.hookCommand())
	if err != nil {
		return err
	}
	if removed > 0 {
		_, _ = fmt.Fprintf(in.out, messages.HooksReplacedFmt, removed)
	}

	after, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	if preview := settings.DiffPreview(in.paths.SettingsFile, before, after); preview != "" {
		_, _ = fmt.Fprintln(in.out, preview)
	}

	backup, err := doc.Save(in.paths.SettingsFile)
	if err != nil {
		return err
	}
	if backup != "" {
		_, _ = fmt.Fprintf(in.out, messages.SettingsBackupFmt, backup)
	}
	_, _ = fmt.Fprintln(in.out, messages.HooksInstalled)
	return nil
}

// removeHooks strips every hook referencing the tool and saves only when
// something actually changed.
func (in *Installer) removeHooks() error {
	doc, err := settings.Load(in.paths.SettingsFile)
	if err != nil {
		return err
	}
	removed, err := doc.RemoveHooks(config.DirName)
	if err != nil {
		return err
	}
	if removed == 0 {
		return nil
	}
	backup, err := doc.Save(in.paths.SettingsFile)
	if err != nil {
		return err
	}
	if backup != "" {
		_, _ = fmt.Fprintf(in.out, messages.SettingsBackupFmt, backup)
	}
	_, _ = fmt.Fprintf(in.out, messages.HooksRemovedFmt, removed)
	return nil
}

// hookCommand is the PreToolUse command pointing at the installed helper.
func (in *Installer) hookCommand() string {
	if in.osType == platform.Windows {
		return filepath.Join(in.paths.InstallDir, "claude-docs-helper.bat") + " hook-check"
	}
	return filepath.Join(in.paths.InstallDir, config.HelperScriptName) + " hook-check"
}

func printCheck(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(string(r.Status))
	case doctor.StatusWarn:
		status = color.YellowString(string(r.Status))
	case doctor.StatusFail:
		status = color.RedString(string(r.Status))
	}
	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		_, _ = fmt.Fprintf(out, messages.DoctorRecommendationFmt, r.Recommendation)
	}
}

// PrintCheck renders one doctor result with its colored status label.
func PrintCheck(out io.Writer, r doctor.Result) {
	printCheck(out, r)
}

func httpGet(ctx context.Context, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
