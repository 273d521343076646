// Package ui provides the on-screen report panel for the filingdesk CLI.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#1a2332")
	LightPrimary    = lipgloss.Color("#1f3a5f")
	LightAccent     = lipgloss.Color("#2e7d32")
	LightMuted      = lipgloss.Color("#8a919c")
	LightBorder     = lipgloss.Color("#d5d9e0")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#e8eaed")
	DarkPrimary    = lipgloss.Color("#7aa2d4")
	DarkAccent     = lipgloss.Color("#81c784")
	DarkMuted      = lipgloss.Color("#6b7280")
	DarkBorder     = lipgloss.Color("#374151")

	// Semantic Colors (same in both modes)
	Pending = lipgloss.Color("#b08800")
	Error   = lipgloss.Color("#e53935")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode when the terminal advertises a dark background.
func DetectTheme() Theme {
	if strings.EqualFold(os.Getenv("FILINGDESK_THEME"), "dark") {
		return DarkTheme()
	}
	if bg := os.Getenv("COLORFGBG"); bg != "" {
		parts := strings.Split(bg, ";")
		if len(parts) == 2 {
			switch parts[1] {
			case "0", "1", "2", "3", "4", "5", "6", "8":
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// Styles bundles the lipgloss styles used by the panel.
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	Footer    lipgloss.Style
	Heading1  lipgloss.Style
	Heading2  lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Pending   lipgloss.Style
	TableHead lipgloss.Style
	Rule      lipgloss.Style
}

// NewStyles creates a Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Heading1: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginTop(1),
		Heading2: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Pending: lipgloss.NewStyle().
			Foreground(Pending).
			Italic(true),
		TableHead: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			Underline(true),
		Rule: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles creates styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderRule returns a horizontal divider of the given width.
func (s Styles) RenderRule(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Rule.Render(strings.Repeat("─", width))
}
