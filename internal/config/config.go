// Package config loads vtmux's user-facing configuration: a YAML profile
// file for session defaults and an optional TOML file for palette/theme
// overrides.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	term "github.com/vtmux/vtmux"
)

// Config holds user-configurable defaults applied to new sessions.
type Config struct {
	// DefaultShell is the command run for new panes when none is given.
	DefaultShell string `yaml:"default_shell"`

	// DefaultDir is the working directory for new tabs; empty means the
	// current directory at launch time.
	DefaultDir string `yaml:"default_dir"`

	// ScrollbackLines bounds how many lines of history each session keeps.
	ScrollbackLines int `yaml:"scrollback_lines"`

	// Theme names a palette defined in the TOML theme file, or "" for the
	// built-in default palette.
	Theme string `yaml:"theme"`

	// ClipboardPolicy controls whether OSC 52 clipboard access is honored:
	// one of "disabled", "read-only", "write-only", "read-write".
	ClipboardPolicy string `yaml:"clipboard_policy"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists or a field is left unset.
func DefaultConfig() Config {
	return Config{
		DefaultShell:    "",
		DefaultDir:      "",
		ScrollbackLines: 10000,
		Theme:           "",
		ClipboardPolicy: "disabled",
	}
}

// Path returns the path to the YAML profile config file, honoring
// VTMUX_CONFIG if set.
func Path() string {
	if p := os.Getenv("VTMUX_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vtmux", "config.yaml")
}

// Load reads the config file at Path, falling back to defaults for missing
// fields and writing the defaults out if no file exists yet.
func Load() Config {
	cfg := DefaultConfig()

	p := Path()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	if cfg.ScrollbackLines < 0 {
		cfg.ScrollbackLines = 0
	}

	switch cfg.ClipboardPolicy {
	case "disabled", "read-only", "write-only", "read-write":
	default:
		cfg.ClipboardPolicy = "disabled"
	}

	return cfg
}

// ClipboardPolicyValue translates the config's string policy into the term
// package's enum.
func (c Config) ClipboardPolicyValue() term.ClipboardPolicy {
	switch c.ClipboardPolicy {
	case "read-only":
		return term.ClipboardPolicyReadOnly
	case "write-only":
		return term.ClipboardPolicyWriteOnly
	case "read-write":
		return term.ClipboardPolicyReadWrite
	default:
		return term.ClipboardPolicyDisabled
	}
}

func writeDefaults(path string, cfg Config) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}
	header := []byte("# vtmux configuration\n# Edit this file to customize session defaults.\n\n")
	_ = os.WriteFile(path, append(header, data...), 0o600)
}
