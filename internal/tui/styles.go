package tui

import "github.com/charmbracelet/lipgloss"

// Colors follow the web palette; the renderer's background setting picks
// the light or dark variant.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#64FFDA"}
	colorText   = lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#E2E8F0"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#94A3B8"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"}
	colorError  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
)

type styles struct {
	Bar       lipgloss.Style
	Logo      lipgloss.Style
	Nav       lipgloss.Style
	NavActive lipgloss.Style
	Rule      lipgloss.Style

	Page     lipgloss.Style
	Title    lipgloss.Style
	Headline lipgloss.Style
	Section  lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Tag      lipgloss.Style
	Cursor   lipgloss.Style

	Panel         lipgloss.Style
	PanelDragging lipgloss.Style
	PanelTitle    lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Bar:       r.NewStyle().Foreground(colorText),
		Logo:      r.NewStyle().Bold(true).Foreground(colorText),
		Nav:       r.NewStyle().Foreground(colorMuted),
		NavActive: r.NewStyle().Bold(true).Foreground(colorAccent),
		Rule:      r.NewStyle().Foreground(colorBorder),

		Page:     r.NewStyle().Foreground(colorText).Padding(0, 2),
		Title:    r.NewStyle().Bold(true).Foreground(colorText),
		Headline: r.NewStyle().Foreground(colorAccent),
		Section:  r.NewStyle().Bold(true).Underline(true).Foreground(colorText),
		Body:     r.NewStyle().Foreground(colorText),
		Muted:    r.NewStyle().Foreground(colorMuted),
		Accent:   r.NewStyle().Foreground(colorAccent),
		Tag:      r.NewStyle().Foreground(colorAccent),
		Cursor:   r.NewStyle().Bold(true).Foreground(colorAccent),

		Panel: r.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder).
			Padding(0, 1),
		PanelDragging: r.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorAccent).
			Padding(0, 1),
		PanelTitle: r.NewStyle().Bold(true).Foreground(colorAccent),

		Status: r.NewStyle().Foreground(colorMuted),
		Error:  r.NewStyle().Foreground(colorError),
	}
}
