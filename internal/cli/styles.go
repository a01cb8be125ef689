package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// CLI output styles.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3C873A", Dark: "#68A063"}).Bold(true)
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

// printer writes styled output. With plain set, styles are dropped.
type printer struct {
	w     io.Writer
	plain bool
}

func (p *printer) render(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

func (p *printer) println(a ...any) {
	_, _ = fmt.Fprintln(p.w, a...)
}

func (p *printer) symSuccess() string { return p.render(cliSuccess, "✓") }
func (p *printer) symError() string   { return p.render(cliError, "✗") }
func (p *printer) symWarning() string { return p.render(cliWarn, "!") }

// kvPair is a label and value shown in aligned columns.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines aligns values after the longest key.
func (p *printer) renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv.key))
	}
	lines := make([]string, len(pairs))
	for i, kv := range pairs {
		key := fmt.Sprintf("%-*s", width, kv.key)
		lines[i] = p.render(cliMuted, key) + "  " + kv.value
	}
	return strings.Join(lines, "\n")
}

// renderCard draws a titled box around the detail blocks.
func (p *printer) renderCard(title string, border lipgloss.Style, details ...string) string {
	content := p.render(cliPrimary, title)
	if len(details) > 0 {
		content += "\n\n" + strings.Join(details, "\n")
	}
	if p.plain {
		return content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Padding(0, 2).
		Render(content)
}

// renderMarkdown renders markdown for the terminal, falling back to the
// source text when rendering fails.
func (p *printer) renderMarkdown(md string) string {
	style := glamour.WithAutoStyle()
	if p.plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
