package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Status markers render their own glyph via String().
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusSkipped lipgloss.Style
}

// NewStyles creates the styles for a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	green := lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	red := lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	yellow := lipgloss.AdaptiveColor{Light: "#a16207", Dark: "#facc15"}
	muted := lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	accent := lipgloss.AdaptiveColor{Light: "#6d28d9", Dark: "#a78bfa"}

	return &Styles{
		Header1:       r.NewStyle().Bold(true).Foreground(accent),
		Header2:       r.NewStyle().Bold(true),
		Bold:          r.NewStyle().Bold(true),
		Muted:         r.NewStyle().Foreground(muted),
		Path:          r.NewStyle().Foreground(accent),
		Success:       r.NewStyle().Foreground(green),
		Warning:       r.NewStyle().Foreground(yellow),
		Error:         r.NewStyle().Foreground(red),
		StatusSuccess: r.NewStyle().Foreground(green).SetString("✓"),
		StatusFailed:  r.NewStyle().Foreground(red).SetString("✗"),
		StatusSkipped: r.NewStyle().Foreground(muted).SetString("-"),
	}
}

// Title title-cases s ("light theme" -> "Light Theme").
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item "- **key:** value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
