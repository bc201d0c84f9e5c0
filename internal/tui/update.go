package tui

import (
	"fmt"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/widget"
)

type frameMsg time.Time

// releaseMsg ends a keyboard press.
type releaseMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		m.relayoutWidget()
	case frameMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		m.lastFrame = now
		m.w.OnFrame(dt)
		return m, tick()
	case outlineMsg:
		m.applyOutline(msg)
	case releaseMsg:
		m.gesture(widget.Release)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.ta.Value())
				if text == "" {
					m.status = "paste: empty"
					return m, nil
				}
				m.pasteMode = false
				m.ta.Blur()
				m.loading = "pasted text"
				m.status = "parsing pasted text"
				return m, parseCmd(m.loader, text)
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "m":
			next := anim.ModeAlpha
			if m.w.Style().Mode == anim.ModeAlpha {
				next = anim.ModeLine
			}
			m.w.SetMode(next)
			m.status = "mode: " + next.String()
		case "+", "=":
			m.w.SetDuration(m.w.Style().Duration + durationStep)
			m.status = "duration: " + m.w.Style().Duration.String()
		case "-", "_":
			if d := m.w.Style().Duration - durationStep; d > 0 {
				m.w.SetDuration(d)
			}
			m.status = "duration: " + m.w.Style().Duration.String()
		case " ", "space":
			m.gesture(widget.Press)
			return m, tea.Tick(keyReleaseDelay, func(time.Time) tea.Msg { return releaseMsg{} })
		case "r":
			if m.selPath != "" {
				m.loading = m.selPath
				return m, loadCmd(m.loader, m.selPath)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
			m.relayoutWidget()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.selPath = it.id
					m.loading = it.id
					m.status = "loading " + it.id
					return m, loadCmd(m.loader, it.id)
				}
			}
		}
	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		switch msg.Action {
		case tea.MouseActionPress:
			if m.layout().inMap(msg.X, msg.Y) {
				m.gesture(widget.Press)
			}
		case tea.MouseActionRelease:
			m.gesture(widget.Release)
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) gesture(g widget.Gesture) {
	if m.w.OnGesture(g) != 0 {
		st := m.w.BounceState()
		m.logger.Debug("gesture", "bounce", st.Phase, "delta", fmt.Sprintf("%.3f", st.Delta))
	}
}

// relayoutWidget measures the widget against the map canvas, in braille
// dots.
func (m *Model) relayoutWidget() {
	lo := m.layout()
	m.w.Measure(
		widget.MeasureSpec{Mode: widget.Exactly, Size: float64(2 * lo.mapW)},
		widget.MeasureSpec{Mode: widget.Exactly, Size: float64(4 * lo.mapH)},
	)
}
