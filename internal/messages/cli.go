package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "ccdocs"
	// RootShort is the short description for the root command.
	RootShort = "Installer for the Claude Code documentation mirror"

	InstallUse   = "install"
	InstallShort = "Install or update the documentation mirror"

	UninstallUse   = "uninstall"
	UninstallShort = "Remove the documentation mirror and its integration"

	DoctorUse   = "doctor"
	DoctorShort = "Check the environment for installation prerequisites"

	ScanUse   = "scan"
	ScanShort = "List existing installations without changing anything"

	FlagAssumeYes = "Answer yes to all prompts (non-interactive)"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt     = "%s [Y/n]: "
	PromptNoDefaultFmt      = "%s [y/N]: "
	PromptRetryYesNo        = "Please answer y or n."
	PromptInvalidResponse   = "invalid response %q"
	ConfirmRequiresTerminal = "confirmation prompts require an interactive terminal; re-run with --yes to proceed without prompts"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	OperationCancelled = "Cancelled."

	InstallHeader            = "Claude Code Docs Installer\n=========================="
	InstallPreflightFailed   = "environment checks failed; fix the issues above and re-run install"
	InstallFoundLegacyFmt    = "[+] Found existing installation: %s (via %s)\n"
	InstallCleanupHeader     = "Cleaning up old installations..."
	InstallCommandCreatedFmt = "[+] Created /docs command at %s\n"
	InstallSuccess           = "[SUCCESS] Claude Code Docs installed successfully!"
	InstallLocationFmt       = "[INFO] Location: %s\n"

	UninstallHeader            = "Claude Code Docs Uninstaller\n============================"
	UninstallFoundHeader       = "Found installations at:"
	UninstallFoundDirFmt       = "  [DIR] %s\n"
	UninstallPlanFmt           = "This will remove:\n  - The /docs command (%s)\n  - All documentation hooks from %s\n  - Installation directories (if safe to remove)\n"
	UninstallPrompt            = "Continue?"
	UninstallCommandRemovedFmt = "[+] Removed /docs command at %s\n"
	UninstallSuccess           = "[SUCCESS] Uninstall complete!"

	HooksReplacedFmt  = "[+] Replaced %d existing documentation hook(s)\n"
	HooksInstalled    = "[+] Auto-update hook installed"
	HooksRemovedFmt   = "[+] Removed %d documentation hook(s)\n"
	SettingsBackupFmt = "[+] Settings backup written to %s\n"

	DoctorHealthCheck       = "Checking environment health..."
	DoctorResultLineFmt     = "[%s] %s: %s\n"
	DoctorRecommendationFmt = "      -> %s\n"
	DoctorSuccessSummary    = "All checks passed."
	DoctorFailureSummary    = "Some checks failed."
	DoctorFailureError      = "doctor found failures"

	DoctorCheckNameGit         = "Git"
	DoctorCheckNameNetwork     = "Network"
	DoctorCheckNamePermissions = "Permissions"
	DoctorCheckNameDiskSpace   = "Disk space"

	DoctorGitNotFound       = "no git executable found on PATH"
	DoctorGitBrokenFmt      = "git at %s is not runnable: %v"
	DoctorGitFoundFmt       = "%s at %s"
	DoctorGitInstallMacOS   = "Install git with: brew install git (or xcode-select --install)"
	DoctorGitInstallLinux   = "Install git with your package manager, e.g.: sudo apt install git"
	DoctorGitInstallWindows = "Install Git for Windows from https://git-scm.com/download/win"

	DoctorNetworkOKFmt          = "%s is reachable"
	DoctorNetworkUnreachableFmt = "cannot reach %s: %v"
	DoctorNetworkRecommend      = "Check your internet connection; an existing installation still works offline"

	DoctorWritableFmt             = "write permissions OK: %s"
	DoctorNotWritableFmt          = "cannot write to %s: %v"
	DoctorNotWritableRecommendFmt = "Fix permissions on %s or choose a different home directory"

	DoctorDiskOKFmt        = "%d MB free at %s"
	DoctorDiskLowFmt       = "only %d MB free at %s"
	DoctorDiskLowRecommend = "Free up disk space before installing; the mirror needs roughly 50 MB"
	DoctorDiskUnknown      = "free space could not be determined on this platform"

	ScanNoneFound = "No installations found."
	ScanFoundFmt  = "%s (via %s)\n"
)
