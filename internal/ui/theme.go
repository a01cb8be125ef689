package ui

import "github.com/charmbracelet/lipgloss"

// Colors holds the hex colors used by progress output.
type Colors struct {
	Primary   string
	Secondary string
	Muted     string
}

// Theme controls how progress output is styled.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// NewTheme returns the default theme. With noColor set, progress falls back
// to plain log lines.
func NewTheme(noColor bool) *Theme {
	return &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   "#68A063",
			Secondary: "#F0DB4F",
			Muted:     "#6B7280",
		},
	}
}

// muted returns the style for secondary text.
func (t *Theme) muted() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Muted))
}
