// Package theme provides color themes for the terminal calendar.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured.
const DefaultName = "mocha"

// Theme holds all colors for a terminal theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Today, subtle highlight
	Fg          string `toml:"fg"`           // Day numbers
	FgMuted     string `toml:"fg_muted"`     // Padding cells, content
	Accent      string `toml:"accent"`       // Title, weekday header
	Checked     string `toml:"checked"`      // Days with an entry
	Border      string `toml:"border"`       // Grid lines
	Error       string `toml:"error"`        // Error indicator
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.Checked = coalesce(t.Checked, t.Accent)
	t.Border = coalesce(t.Border, t.BgHighlight, t.FgMuted)
	t.Error = coalesce(t.Error, t.Accent)
}

// IsLight reports whether the theme has a light background.
func (t *Theme) IsLight() bool {
	return relativeLuminance(t.Bg) > 0.55
}

// GlamourStyle returns the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsLight() {
		return "light"
	}
	return "dark"
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
