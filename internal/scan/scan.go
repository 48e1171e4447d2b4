// Package scan recovers prior installation directories from the heterogeneous
// historical configuration formats earlier releases left behind. Discovery is
// best-effort by design: the historical formats are not guaranteed well-formed,
// so read and parse failures degrade to warnings and scanning continues.
package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
	"github.com/ericbuess/claude-code-docs-installer/internal/settings"
)

// Source tags which historical format produced a candidate, for traceability.
type Source string

const (
	// SourceCommandFile marks candidates recovered from the command
	// definition file.
	SourceCommandFile Source = "command file"
	// SourceSettingsHooks marks candidates recovered from the settings
	// hooks section.
	SourceSettingsHooks Source = "settings hooks"
	// SourceWorkingDir marks the current directory when the tool runs from
	// inside an installation.
	SourceWorkingDir Source = "working directory"
)

// Candidate is a filesystem path that may hold a prior installation.
type Candidate struct {
	Path   string
	Source Source
}

// strategy is one independent legacy-format parser. New formats get a new
// strategy; existing ones stay untouched.
type strategy func(warn io.Writer) []Candidate

// Scanner enumerates legacy installation candidates across all strategies.
type Scanner struct {
	commandFile  string
	settingsFile string
	targetDir    string
	dirName      string
	markerRel    string

	strategies []strategy

	labeledRe *regexp.Regexp
	markerRe  *regexp.Regexp
	tokenRe   *regexp.Regexp
	quotedRe  *regexp.Regexp
	dirRe     *regexp.Regexp

	homeFunc  func() (string, error)
	statFunc  func(name string) (os.FileInfo, error)
	getwdFunc func() (string, error)
}

// New builds a scanner over the historical sources. targetDir is the
// canonical installation path; it is always excluded from the results.
// markerRel is the manifest path, relative to an installation root, that
// identifies the working directory as an installation.
func New(commandFile string, settingsFile string, targetDir string, dirName string, markerRel string) *Scanner {
	quoted := regexp.QuoteMeta(dirName)
	s := &Scanner{
		commandFile:  commandFile,
		settingsFile: settingsFile,
		targetDir:    targetDir,
		dirName:      dirName,
		markerRel:    markerRel,
		labeledRe:    regexp.MustCompile(`LOCAL\s+DOCS\s+AT:\s+(\S+)/docs/`),
		markerRe:     regexp.MustCompile(`Execute:.*` + quoted),
		tokenRe:      regexp.MustCompile(`[^ "]*` + quoted + `[^ "]*`),
		quotedRe:     regexp.MustCompile(`"[^"]*` + quoted + `[^"]*"`),
		dirRe:        regexp.MustCompile(`^(.*/` + quoted + `)(/.*)?$`),
		homeFunc:     homedir.Dir,
		statFunc:     os.Stat,
		getwdFunc:    os.Getwd,
	}
	s.strategies = []strategy{s.scanCommandFile, s.scanSettingsHooks, s.scanWorkingDir}
	return s
}

// Discover runs every strategy and post-processes the union: absolute-path
// resolution, dedup by resolved path, exclusion of the canonical target, and
// a lexicographic sort for deterministic output.
func (s *Scanner) Discover(warn io.Writer) []Candidate {
	var raw []Candidate
	for _, discover := range s.strategies {
		raw = append(raw, discover(warn)...)
	}

	target := s.resolve(s.targetDir)
	seen := map[string]bool{}
	var out []Candidate
	for _, cand := range raw {
		abs := s.resolve(cand.Path)
		if abs == target || seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, Candidate{Path: abs, Source: cand.Source})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Paths projects a candidate list to its paths, preserving order.
func Paths(candidates []Candidate) []string {
	paths := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		paths = append(paths, cand.Path)
	}
	return paths
}

// scanCommandFile recovers paths from the command definition file line by
// line, matching both historical textual conventions.
func (s *Scanner) scanCommandFile(warn io.Writer) []Candidate {
	file, err := os.Open(s.commandFile)
	if err != nil {
		if !os.IsNotExist(err) {
			_, _ = fmt.Fprintf(warn, messages.ScanCommandFileWarnFmt, s.commandFile, err)
		}
		return nil
	}
	defer func() { _ = file.Close() }()

	var found []Candidate
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Labeled-path convention: "LOCAL DOCS AT: <path>/docs/".
		if match := s.labeledRe.FindStringSubmatch(line); match != nil {
			if path, ok := s.existingDir(s.expandTilde(match[1])); ok {
				found = append(found, Candidate{Path: path, Source: SourceCommandFile})
			}
		}

		// Execution-reference convention: "Execute: ...<dirName>...".
		if s.markerRe.MatchString(line) {
			token := s.tokenRe.FindString(line)
			if token == "" {
				continue
			}
			expanded := s.expandTilde(token)
			if path, ok := s.existingDir(expanded); ok {
				found = append(found, Candidate{Path: path, Source: SourceCommandFile})
			} else if parent := filepath.Dir(expanded); filepath.Base(parent) == s.dirName {
				if path, ok := s.existingDir(parent); ok {
					found = append(found, Candidate{Path: path, Source: SourceCommandFile})
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		_, _ = fmt.Fprintf(warn, messages.ScanCommandFileWarnFmt, s.commandFile, err)
	}
	return found
}

// scanSettingsHooks recovers paths from hook command strings that reference
// the canonical directory name.
func (s *Scanner) scanSettingsHooks(warn io.Writer) []Candidate {
	doc, err := settings.Load(s.settingsFile)
	if err != nil {
		_, _ = fmt.Fprintf(warn, messages.ScanSettingsWarnFmt, s.settingsFile, err)
		return nil
	}

	var found []Candidate
	for _, command := range doc.HookCommands() {
		if !strings.Contains(command, s.dirName) {
			continue
		}
		// Quoted substrings first (the early hook format wrapped paths in
		// quotes), then bare whitespace-delimited tokens.
		for _, quoted := range s.quotedRe.FindAllString(command, -1) {
			candidate := strings.Trim(quoted, `"`)
			if path, ok := s.normalizeHookPath(candidate, true); ok {
				found = append(found, Candidate{Path: path, Source: SourceSettingsHooks})
			}
		}
		for _, token := range s.tokenRe.FindAllString(command, -1) {
			if path, ok := s.normalizeHookPath(token, false); ok {
				found = append(found, Candidate{Path: path, Source: SourceSettingsHooks})
			}
		}
	}
	return found
}

// scanWorkingDir reports the current directory when the installer is being
// run from inside an installation, identified by the manifest marker.
func (s *Scanner) scanWorkingDir(io.Writer) []Candidate {
	cwd, err := s.getwdFunc()
	if err != nil {
		return nil
	}
	if _, err := s.statFunc(filepath.Join(cwd, s.markerRel)); err != nil {
		return nil
	}
	return []Candidate{{Path: cwd, Source: SourceWorkingDir}}
}

// normalizeHookPath truncates a path-like string at the canonical directory
// name, expands a leading tilde, and keeps it only if it is an existing
// directory. In strict mode a string without the directory-name path match is
// dropped outright; the quoted hook format only ever carried full paths, so a
// bare mention of the name must not resolve against the working directory.
func (s *Scanner) normalizeHookPath(raw string, strict bool) (string, bool) {
	if raw == "" {
		return "", false
	}
	if match := s.dirRe.FindStringSubmatch(raw); match != nil {
		raw = match[1]
	} else if strict {
		return "", false
	}
	return s.existingDir(s.expandTilde(raw))
}

// expandTilde replaces a leading ~ with the user home directory.
func (s *Scanner) expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := s.homeFunc()
	if err != nil {
		return path
	}
	return home + path[1:]
}

// existingDir reports path only when it exists as a directory on disk.
func (s *Scanner) existingDir(path string) (string, bool) {
	info, err := s.statFunc(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return path, true
}

// resolve normalizes a path for dedup comparison.
func (s *Scanner) resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
