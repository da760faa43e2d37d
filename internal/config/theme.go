package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	term "github.com/vtmux/vtmux"
)

// ThemeFile is the parsed shape of the TOML palette override file: named
// themes, each overriding some subset of the 256-color palette plus the
// default foreground/background/cursor colors.
type ThemeFile struct {
	Themes map[string]ThemeEntry `toml:"themes"`
}

// ThemeEntry overrides palette slots and default colors for one theme.
// Colors are "#rrggbb" strings; Palette keys are decimal color indices
// ("0".."255") as TOML table keys must be strings.
type ThemeEntry struct {
	Foreground string            `toml:"foreground"`
	Background string            `toml:"background"`
	Cursor     string            `toml:"cursor"`
	Palette    map[string]string `toml:"palette"`
}

// ThemePath returns the path to the TOML theme file, honoring
// VTMUX_THEME_FILE if set.
func ThemePath() string {
	if p := os.Getenv("VTMUX_THEME_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vtmux", "themes.toml")
}

// LoadThemes reads the TOML theme file at ThemePath. A missing file is not
// an error: it simply yields no themes, and callers fall back to the
// built-in palette.
func LoadThemes() (ThemeFile, error) {
	var tf ThemeFile
	p := ThemePath()
	if p == "" {
		return tf, nil
	}
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return tf, nil
	}
	if _, err := toml.DecodeFile(p, &tf); err != nil {
		return tf, fmt.Errorf("decode theme file: %w", err)
	}
	return tf, nil
}

// ResolveOverrides converts a ThemeEntry's hex color strings into the
// (index, color.RGBA) overrides a term.Terminal's SetColor-style API
// expects, skipping any entry that fails to parse.
func (t ThemeEntry) ResolveOverrides() map[int]color.RGBA {
	overrides := make(map[int]color.RGBA, len(t.Palette))
	for key, hex := range t.Palette {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		if rgba, ok := parseHexColor(hex); ok {
			overrides[idx] = rgba
		}
	}
	return overrides
}

// ApplyToTerminal installs this theme's palette overrides on terminal via
// SetColor.
func (t ThemeEntry) ApplyToTerminal(terminal *term.Terminal) {
	for idx, rgba := range t.ResolveOverrides() {
		terminal.SetColor(idx, rgba)
	}
}

func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, true
}
