// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string
	Bg          string // Base background
	BgHighlight string // Block backgrounds, subtle highlight
	BgSelection string // Hover ghost, selection
	Fg          string // Primary foreground
	FgMuted     string // Grid lines, muted elements
	Accent      string // Title, primary accent, borders
	Task        string // Task blocks
	Event       string // External event blocks
	Current     string // Current time marker
	Warning     string // Warnings, drag ghosts
}

// Catppuccin variants plus a plain light theme. Kept in Go so a broken
// data file can never take the UI down.
var builtin = map[string]Theme{
	"mocha": {
		Name: "mocha",
		Bg:   "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#6c7086", Accent: "#89b4fa",
		Task: "#a6e3a1", Event: "#cba6f7", Current: "#f38ba8", Warning: "#f9e2af",
	},
	"macchiato": {
		Name: "macchiato",
		Bg:   "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#6e738d", Accent: "#8aadf4",
		Task: "#a6da95", Event: "#c6a0f6", Current: "#ed8796", Warning: "#eed49f",
	},
	"frappe": {
		Name: "frappe",
		Bg:   "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#737994", Accent: "#8caaee",
		Task: "#a6d189", Event: "#ca9ee6", Current: "#e78284", Warning: "#e5c890",
	},
	"latte": {
		Name: "latte",
		Bg:   "#eff1f5", BgHighlight: "#ccd0da", BgSelection: "#bcc0cc",
		Fg: "#4c4f69", FgMuted: "#9ca0b0", Accent: "#1e66f5",
		Task: "#40a02b", Event: "#8839ef", Current: "#d20f39", Warning: "#df8e1d",
	},
	"light": {
		Name: "light",
		Bg:   "#ffffff", BgHighlight: "#f0f0f0", BgSelection: "#d8d8d8",
		Fg: "#222222", FgMuted: "#888888", Accent: "#0060c0",
		Task: "#107040", Event: "#6030a0", Current: "#c01030", Warning: "#a06000",
	},
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load returns a theme by name. Falls back to mocha for unknown names.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	t, ok := builtin[name]
	if !ok {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: not found", name)
	}
	return &t, nil
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
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
