package config

import (
	"os"
	"path/filepath"
	"testing"

	term "github.com/vtmux/vtmux"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("VTMUX_CONFIG", path)

	cfg := Load()
	if cfg.ScrollbackLines != DefaultConfig().ScrollbackLines {
		t.Errorf("expected default scrollback lines, got %d", cfg.ScrollbackLines)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults to be written to %s: %v", path, err)
	}
}

func TestLoadAppliesBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("VTMUX_CONFIG", path)

	if err := os.WriteFile(path, []byte("scrollback_lines: -5\nclipboard_policy: bogus\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := Load()
	if cfg.ScrollbackLines != 0 {
		t.Errorf("expected negative scrollback clamped to 0, got %d", cfg.ScrollbackLines)
	}
	if cfg.ClipboardPolicy != "disabled" {
		t.Errorf("expected invalid clipboard policy to fall back to disabled, got %s", cfg.ClipboardPolicy)
	}
}

func TestClipboardPolicyValue(t *testing.T) {
	tests := map[string]term.ClipboardPolicy{
		"disabled":    term.ClipboardPolicyDisabled,
		"read-only":   term.ClipboardPolicyReadOnly,
		"write-only":  term.ClipboardPolicyWriteOnly,
		"read-write":  term.ClipboardPolicyReadWrite,
		"unknown-foo": term.ClipboardPolicyDisabled,
	}
	for in, want := range tests {
		cfg := Config{ClipboardPolicy: in}
		if got := cfg.ClipboardPolicyValue(); got != want {
			t.Errorf("ClipboardPolicyValue(%q) = %v, want %v", in, got, want)
		}
	}
}
