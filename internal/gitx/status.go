package gitx

import "strings"

// RepoStatus is a point-in-time classification of a working copy. It is
// computed fresh per check and never cached across mutating operations.
type RepoStatus struct {
	Branch                string
	HasUncommittedChanges bool
	HasConflicts          bool
	HasUntrackedFiles     bool
}

// Dirty reports whether the working copy holds anything a deletion or reset
// would destroy.
func (s RepoStatus) Dirty() bool {
	return s.HasUncommittedChanges || s.HasConflicts || s.HasUntrackedFiles
}

// Describe summarizes the dirty flags for user-facing reports.
func (s RepoStatus) Describe() string {
	var parts []string
	if s.HasConflicts {
		parts = append(parts, "merge conflicts")
	}
	if s.HasUncommittedChanges {
		parts = append(parts, "uncommitted changes")
	}
	if s.HasUntrackedFiles {
		parts = append(parts, "untracked files")
	}
	if len(parts) == 0 {
		return "clean"
	}
	return strings.Join(parts, ", ")
}

// untrackedIgnoreExts are editor and scratch droppings that never block an
// update on their own.
var untrackedIgnoreExts = []string{".tmp", ".log", ".swp"}

const untrackedMarker = "??"

// conflictPrefixes are the two-letter index states that signal an unresolved
// merge.
var conflictPrefixes = []string{"UU", "AA", "DD"}

func splitStatusLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseStatus classifies porcelain output. excludeManifest drops lines
// referencing the manifest path from the change and conflict flags; untracked
// detection instead consults the fixed extension ignore-list.
func parseStatus(out string, manifest string, excludeManifest bool) RepoStatus {
	var status RepoStatus
	for _, line := range splitStatusLines(out) {
		touchesManifest := manifest != "" && strings.Contains(line, manifest)

		if hasConflictPrefix(line) {
			if !(excludeManifest && touchesManifest) {
				status.HasConflicts = true
			}
		}
		if strings.HasPrefix(line, untrackedMarker) {
			if countsAsUntracked(line) {
				status.HasUntrackedFiles = true
			}
		}
		if excludeManifest && touchesManifest {
			continue
		}
		status.HasUncommittedChanges = true
	}
	return status
}

func hasConflictPrefix(line string) bool {
	for _, prefix := range conflictPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func countsAsUntracked(line string) bool {
	if len(line) < 4 {
		return false
	}
	name := strings.TrimSpace(line[3:])
	for _, ext := range untrackedIgnoreExts {
		if strings.HasSuffix(name, ext) {
			return false
		}
	}
	return name != ""
}
