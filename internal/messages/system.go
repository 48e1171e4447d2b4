package messages

// System messages for internal operations.
const (
	// GitNotFound indicates no usable git executable could be located.
	GitNotFound = "git executable not found"
	// GitTimedOut indicates a git invocation exceeded its deadline.
	GitTimedOut              = "git command timed out"
	GitBranchUnknown         = "unknown"
	GitVersionProbeFailedFmt = "git --version exited with code %d"
	GitRunFailedFmt          = "run git %s: %w"
	GitStatusFailedFmt       = "git status in %s failed: %s"
	GitPullFailedFmt         = "git pull %s failed: %s"
	GitFetchFailedFmt        = "git fetch %s failed: %s"
	GitCloneFailedFmt        = "git clone %s failed: %s"
	GitCheckoutFailedFmt     = "git checkout %s failed: %s"
	GitResetFailedFmt        = "git reset to %s failed: %s"
	GitCleanFailedFmt        = "git clean failed: %s"

	SettingsReadFailedFmt   = "read settings file %s: %w"
	SettingsParseFailedFmt  = "parse settings file: %w"
	SettingsEncodeFailedFmt = "encode settings: %w"
	SettingsBackupFailedFmt = "back up settings file: %w"
	SettingsWriteFailedFmt  = "write settings file %s: %w"

	ScanCommandFileWarnFmt = "Warning: could not read command file %s: %v\n"
	ScanSettingsWarnFmt    = "Warning: could not read settings file %s: %v\n"

	UpdateBranchSwitchFmt     = "On branch %s; switching to %s with a clean reset\n"
	UpdateFetchFailedFmt      = "could not reach the documentation remote: %v"
	UpdateStatusFailedFmt     = "could not determine repository state: %v"
	UpdateLocalChangesWarnFmt = "Warning: %s has local changes (%s) that a reset will discard\n"
	UpdateResetPrompt         = "Discard local changes and reset to the latest version?"
	UpdateDeclinedFmt         = "update declined; local changes in %s were preserved (commit or stash them, then re-run install)"
	UpdateResetFailedFmt      = "reset to latest version failed: %v"
	UpdateManifestOnlyFmt     = "Only %s changed locally; resolving automatically\n"

	MigratePreservingFmt      = "Preserving %s (it has local changes)\n"
	MigrateDeletedOldFmt      = "Removed old installation at %s\n"
	MigrateDeleteOldFailedFmt = "Warning: could not remove old installation at %s: %v\n"

	CloneParentDirFailedFmt   = "create installation parent directory: %v"
	CloneRemoveStaleFailedFmt = "remove stale directory %s: %v"
	CloneFailedFmt            = "clone failed: %v"
	CloneIncompleteFmt        = "clone completed but %s is missing; the installation is incomplete"

	CleanupDeletedFmt          = "[+] Removed old installation: %s\n"
	CleanupPreservedDirtyFmt   = "[!] Preserved %s (%s)\n"
	CleanupPreservedNotRepoFmt = "[!] Preserved %s (not a git repository)\n"
	CleanupPreservedErrorFmt   = "[!] Preserved %s (could not check state: %s)\n"
	CleanupRemoveFailedFmt     = "[!] Could not remove %s: %s\n"

	HelperTemplateMissing   = "Helper script template missing from clone; downloading directly..."
	HelperDownloadFailedFmt = "download helper script: %v"
	HelperInstallFailedFmt  = "install helper script: %v"
	HelperInstalled         = "[+] Helper script installed"
)
