// Package settings reads and rewrites the host's JSON settings document.
// Only hook entries referencing this tool are ever touched; every other key
// in the document survives a rewrite structurally intact.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericbuess/claude-code-docs-installer/internal/fsutil"
	"github.com/ericbuess/claude-code-docs-installer/internal/messages"
)

// hookEventName is the only hooks section this tool registers under.
const hookEventName = "PreToolUse"

// hookMatcher scopes the registered hook to Read tool calls.
const hookMatcher = "Read"

var timeNow = time.Now

// HookCommand is one executable registration inside a hook entry.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// HookEntry is one matcher group in the PreToolUse array.
type HookEntry struct {
	Matcher string        `json:"matcher"`
	Hooks   []HookCommand `json:"hooks"`
}

// Document is the host settings file. Top-level keys other than hooks are
// held raw so a rewrite cannot disturb configuration this tool does not own.
type Document struct {
	fields map[string]json.RawMessage
}

// Load parses the settings file at path. A missing file yields an empty
// document; malformed JSON is an error the caller decides how to treat.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{fields: map[string]json.RawMessage{}}, nil
		}
		return nil, fmt.Errorf(messages.SettingsReadFailedFmt, path, err)
	}
	return Parse(data)
}

// Parse decodes a settings document from raw JSON.
func Parse(data []byte) (*Document, error) {
	fields := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf(messages.SettingsParseFailedFmt, err)
		}
	}
	return &Document{fields: fields}, nil
}

// hooksSection returns the decoded hooks object, with every event held raw
// except the one this tool manages.
func (d *Document) hooksSection() (map[string]json.RawMessage, error) {
	raw, ok := d.fields["hooks"]
	if !ok {
		return map[string]json.RawMessage{}, nil
	}
	section := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &section); err != nil {
		return nil, fmt.Errorf(messages.SettingsParseFailedFmt, err)
	}
	return section, nil
}

// preToolUseEntries returns the raw PreToolUse array entries.
func (d *Document) preToolUseEntries() ([]json.RawMessage, error) {
	section, err := d.hooksSection()
	if err != nil {
		return nil, err
	}
	raw, ok := section[hookEventName]
	if !ok {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf(messages.SettingsParseFailedFmt, err)
	}
	return entries, nil
}

// HookCommands returns every hook command string registered under the managed
// event. Entries that do not match the expected shape are skipped, matching
// the tolerance the legacy scanner needs.
func (d *Document) HookCommands() []string {
	entries, err := d.preToolUseEntries()
	if err != nil {
		return nil
	}
	var commands []string
	for _, raw := range entries {
		var entry HookEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		for _, hook := range entry.Hooks {
			if hook.Command != "" {
				commands = append(commands, hook.Command)
			}
		}
	}
	return commands
}

// entryReferences reports whether any sub-hook command in the raw entry
// contains needle. Entries without the expected structure never match, so
// they are always preserved.
func entryReferences(raw json.RawMessage, needle string) bool {
	var entry HookEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return false
	}
	for _, hook := range entry.Hooks {
		if strings.Contains(hook.Command, needle) {
			return true
		}
	}
	return false
}

// InstallHook removes every managed-event entry referencing needle and
// appends a fresh registration for command. It returns how many stale entries
// were removed.
func (d *Document) InstallHook(needle string, command string) (int, error) {
	entries, err := d.preToolUseEntries()
	if err != nil {
		return 0, err
	}
	kept := make([]json.RawMessage, 0, len(entries)+1)
	removed := 0
	for _, raw := range entries {
		if entryReferences(raw, needle) {
			removed++
			continue
		}
		kept = append(kept, raw)
	}

	entry := HookEntry{
		Matcher: hookMatcher,
		Hooks:   []HookCommand{{Type: "command", Command: command}},
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return 0, fmt.Errorf(messages.SettingsEncodeFailedFmt, err)
	}
	kept = append(kept, encoded)

	if err := d.setPreToolUse(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// RemoveHooks filters out every managed-event entry referencing needle and
// prunes the emptied structures. It returns the number of removed entries.
func (d *Document) RemoveHooks(needle string) (int, error) {
	entries, err := d.preToolUseEntries()
	if err != nil {
		return 0, err
	}
	kept := make([]json.RawMessage, 0, len(entries))
	removed := 0
	for _, raw := range entries {
		if entryReferences(raw, needle) {
			removed++
			continue
		}
		kept = append(kept, raw)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := d.setPreToolUse(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// setPreToolUse writes the entry list back, dropping the event key when the
// list is empty and the hooks object when it holds nothing else.
func (d *Document) setPreToolUse(entries []json.RawMessage) error {
	section, err := d.hooksSection()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		delete(section, hookEventName)
	} else {
		encoded, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf(messages.SettingsEncodeFailedFmt, err)
		}
		section[hookEventName] = encoded
	}
	if len(section) == 0 {
		delete(d.fields, "hooks")
		return nil
	}
	encoded, err := json.Marshal(section)
	if err != nil {
		return fmt.Errorf(messages.SettingsEncodeFailedFmt, err)
	}
	d.fields["hooks"] = encoded
	return nil
}

// MarshalIndent renders the document as formatted JSON.
func (d *Document) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(d.fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf(messages.SettingsEncodeFailedFmt, err)
	}
	return append(data, '\n'), nil
}

// Save writes the document to path: a timestamped backup of any existing file
// first, then a write-to-temp plus atomic rename. A failed write leaves both
// the original and the backup intact. The backup path is returned when one
// was created.
func (d *Document) Save(path string) (string, error) {
	data, err := d.MarshalIndent()
	if err != nil {
		return "", err
	}

	backup := ""
	if _, err := os.Stat(path); err == nil {
		backup = fmt.Sprintf("%s.backup.%s", path, timeNow().Format("20060102-150405"))
		if err := fsutil.CopyFile(path, backup); err != nil {
			return "", fmt.Errorf(messages.SettingsBackupFailedFmt, err)
		}
	}

	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return backup, fmt.Errorf(messages.SettingsWriteFailedFmt, path, err)
	}
	return backup, nil
}
