// Package config defines the installer's fixed product constants and the
// small set of knobs that may be overridden from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DirName is the canonical directory name of the documentation mirror. Legacy
// discovery and hook filtering both key on this substring.
const DirName = "claude-code-docs"

// MarkerRelPath is the marker file whose presence signals a complete
// installation. Its content is never interpreted here.
const MarkerRelPath = "docs/docs_manifest.json"

// HelperScriptName is the helper entry point the command file and hooks
// execute.
const HelperScriptName = "claude-docs-helper.sh"

// HelperTemplateRelPath is where the cloned repository ships the helper
// template.
const HelperTemplateRelPath = "scripts/claude-docs-helper.sh.template"

// OverrideFileName is the optional per-user override file, looked up in the
// user home directory.
const OverrideFileName = ".claude-code-docs.toml"

// Config carries the repository coordinates and subprocess timeout classes.
type Config struct {
	Branch  string `toml:"branch"`
	RepoURL string `toml:"repo_url"`

	Timeouts Timeouts `toml:"timeouts"`
}

// Timeouts groups the per-operation-class subprocess bounds, in seconds.
// Inspection calls are short; pull/fetch allow for slow networks; clone is the
// longest-running operation the installer ever starts.
type Timeouts struct {
	InspectSeconds int `toml:"inspect_seconds"`
	DefaultSeconds int `toml:"default_seconds"`
	NetworkSeconds int `toml:"network_seconds"`
	CloneSeconds   int `toml:"clone_seconds"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Branch:  "main",
		RepoURL: "https://github.com/ericbuess/claude-code-docs.git",
		Timeouts: Timeouts{
			InspectSeconds: 10,
			DefaultSeconds: 30,
			NetworkSeconds: 60,
			CloneSeconds:   120,
		},
	}
}

// Load reads the override file at path and merges it over the defaults.
// A missing file yields the defaults; a present but unparseable file is an
// error so a typo never silently reverts the operator to stock settings.
// Zero-valued fields in the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.Branch != "" {
		cfg.Branch = file.Branch
	}
	if file.RepoURL != "" {
		cfg.RepoURL = file.RepoURL
	}
	if file.Timeouts.InspectSeconds > 0 {
		cfg.Timeouts.InspectSeconds = file.Timeouts.InspectSeconds
	}
	if file.Timeouts.DefaultSeconds > 0 {
		cfg.Timeouts.DefaultSeconds = file.Timeouts.DefaultSeconds
	}
	if file.Timeouts.NetworkSeconds > 0 {
		cfg.Timeouts.NetworkSeconds = file.Timeouts.NetworkSeconds
	}
	if file.Timeouts.CloneSeconds > 0 {
		cfg.Timeouts.CloneSeconds = file.Timeouts.CloneSeconds
	}
	return cfg, nil
}

// InspectTimeout bounds status and rev-parse style calls.
func (c Config) InspectTimeout() time.Duration {
	return time.Duration(c.Timeouts.InspectSeconds) * time.Second
}

// DefaultTimeout bounds local mutating calls (reset, checkout, clean).
func (c Config) DefaultTimeout() time.Duration {
	return time.Duration(c.Timeouts.DefaultSeconds) * time.Second
}

// NetworkTimeout bounds pull and fetch.
func (c Config) NetworkTimeout() time.Duration {
	return time.Duration(c.Timeouts.NetworkSeconds) * time.Second
}

// CloneTimeout bounds the initial clone.
func (c Config) CloneTimeout() time.Duration {
	return time.Duration(c.Timeouts.CloneSeconds) * time.Second
}
