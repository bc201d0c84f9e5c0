package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mapskeleton/internal/anim"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}

	// Header
	header := m.st.title.Render(" mapskeleton ─ animated outline placeholder ")
	header = lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// infer a reasonable width from columns
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.contentW-6)
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := m.st.box.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(lo.mapW)
		m.ta.SetHeight(min(lo.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.ta.View())
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderSkeleton(lo.mapW, lo.mapH))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer / help
	help := m.renderHelp()
	status := m.st.dim.Render(" " + m.status + " ")
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	animInfo := m.st.dim.Render(m.animLabel())
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(animInfo))
	right := lipgloss.Place(spacerW+lipgloss.Width(animInfo), 1, lipgloss.Right, lipgloss.Center, animInfo)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return m.st.app.Width(lo.contentW).Height(m.height).Render(ui)
}

// animLabel summarizes the animators for the footer.
func (m Model) animLabel() string {
	sh := m.w.ShimmerState()
	b := m.w.BounceState()
	s := fmt.Sprintf("  %s %3.0f%%  %s  ", sh.Mode, sh.Progress*100, m.w.Style().Duration)
	if m.loading != "" {
		s = "  loading " + m.loading + s
	}
	bounce := "bounce=" + b.Phase.String()
	if b.Phase != anim.BounceIdle {
		bounce = m.st.active.Render(bounce)
	}
	return s + bounce + "  "
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"space bounce",
		"m mode",
		"+/- duration",
		"Tab sidebar",
		"Enter open",
		"r reload",
		"p paste",
		"a attrs",
		"h help",
		"q quit",
	}
	return m.st.dim.Render("  " + strings.Join(keys, "  "))
}
