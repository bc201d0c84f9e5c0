package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"mapskeleton/internal/render"
)

var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
)

// styles are keyed to the skeleton's paint, so the chrome around the canvas
// matches the outline being shown.
type styles struct {
	app   lipgloss.Style
	box   lipgloss.Style
	title lipgloss.Style
	dim   lipgloss.Style
	// active marks a running animation in the footer
	active lipgloss.Style
}

func newStyles(p render.Paint) styles {
	return styles{
		app:    lipgloss.NewStyle().Foreground(baseFg),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(termColor(p.Background)).Padding(0, 1),
		title:  lipgloss.NewStyle().Foreground(termColor(p.Stroke)).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(baseDimFg),
		active: lipgloss.NewStyle().Foreground(termColor(p.Shimmer)).Background(termColor(p.Stroke)),
	}
}

// termColor drops alpha; terminals have no translucent text.
func termColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
