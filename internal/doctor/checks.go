package doctor

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ericbuess/claude-code-docs-installer/internal/config"
	"github.com/ericbuess/claude-code-docs-installer/internal/gitx"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/platform"
)

const (
	networkProbeAddr    = "github.com:443"
	networkProbeTimeout = 10 * time.Second

	// minFreeBytes is advisory headroom for a docs clone plus update churn.
	minFreeBytes = 50 * 1024 * 1024
)

var dialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, network, addr)
}

// GitLocator is the slice of gitx the git check needs.
type GitLocator interface {
	Locate() (string, error)
	Version(ctx context.Context) (string, error)
}

// CheckGit verifies a working git executable is reachable, with install
// guidance matched to the host OS on failure.
func CheckGit(ctx context.Context, git GitLocator, osType platform.OS) Result {
	path, err := git.Locate()
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameGit,
			Message:        messages.DoctorGitNotFound,
			Recommendation: gitInstallHint(osType),
		}
	}
	version, err := git.Version(ctx)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameGit,
			Message:        fmt.Sprintf(messages.DoctorGitBrokenFmt, path, err),
			Recommendation: gitInstallHint(osType),
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameGit,
		Message:   fmt.Sprintf(messages.DoctorGitFoundFmt, version, path),
	}
}

func gitInstallHint(osType platform.OS) string {
	switch osType {
	case platform.MacOS:
		return messages.DoctorGitInstallMacOS
	case platform.Windows:
		return messages.DoctorGitInstallWindows
	default:
		return messages.DoctorGitInstallLinux
	}
}

// CheckNetwork probes the documentation host over TLS port 443. When a
// completed installation already exists the failure is a warning, since the
// installed docs still work offline; a fresh install needs the network for
// the clone and fails hard.
func CheckNetwork(ctx context.Context, installed bool) Result {
	dialCtx, cancel := context.WithTimeout(ctx, networkProbeTimeout)
	defer cancel()

	conn, err := dialFunc(dialCtx, "tcp", networkProbeAddr)
	if err != nil {
		status := StatusFail
		if installed {
			status = StatusWarn
		}
		return Result{
			Status:         status,
			CheckName:      messages.DoctorCheckNameNetwork,
			Message:        fmt.Sprintf(messages.DoctorNetworkUnreachableFmt, networkProbeAddr, err),
			Recommendation: messages.DoctorNetworkRecommend,
		}
	}
	_ = conn.Close()
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameNetwork,
		Message:   fmt.Sprintf(messages.DoctorNetworkOKFmt, networkProbeAddr),
	}
}

// CheckPermissions verifies both directories the installer writes under: the
// installation target and the host configuration directory. Each is reduced
// to its nearest existing ancestor and probed with a temp file.
func CheckPermissions(installDir, claudeDir string) Result {
	var probed []string
	for _, target := range []string{installDir, claudeDir} {
		dir := nearestExistingDir(target)
		if len(probed) > 0 && probed[len(probed)-1] == dir {
			continue
		}
		if err := probeWritable(dir); err != nil {
			return Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePermissions,
				Message:        fmt.Sprintf(messages.DoctorNotWritableFmt, dir, err),
				Recommendation: fmt.Sprintf(messages.DoctorNotWritableRecommendFmt, dir),
			}
		}
		probed = append(probed, dir)
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePermissions,
		Message:   fmt.Sprintf(messages.DoctorWritableFmt, strings.Join(probed, ", ")),
	}
}

func probeWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".ccdocs-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// CheckDiskSpace warns when the filesystem holding the installation has less
// than the advisory free-space floor. Platforms without a usable query report
// OK with a note.
func CheckDiskSpace(installDir string) Result {
	dir := nearestExistingDir(installDir)
	free, ok := freeBytes(dir)
	if !ok {
		return Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameDiskSpace,
			Message:   messages.DoctorDiskUnknown,
		}
	}
	if free < minFreeBytes {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameDiskSpace,
			Message:        fmt.Sprintf(messages.DoctorDiskLowFmt, free/(1024*1024), dir),
			Recommendation: messages.DoctorDiskLowRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameDiskSpace,
		Message:   fmt.Sprintf(messages.DoctorDiskOKFmt, free/(1024*1024), dir),
	}
}

// nearestExistingDir walks up from path to the first directory that exists.
func nearestExistingDir(path string) string {
	dir := path
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// All runs every check in presentation order.
func All(ctx context.Context, git *gitx.Git, osType platform.OS, paths platform.Paths) []Result {
	return []Result{
		CheckGit(ctx, git, osType),
		CheckNetwork(ctx, installationComplete(paths.InstallDir)),
		CheckPermissions(paths.InstallDir, paths.ClaudeDir),
		CheckDiskSpace(paths.InstallDir),
	}
}

// installationComplete mirrors the reconciliation entry-state test: the
// marker file inside the target signals a usable installation.
func installationComplete(installDir string) bool {
	info, err := os.Stat(filepath.Join(installDir, config.MarkerRelPath))
	return err == nil && !info.IsDir()
}
