package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mapskeleton/internal/geom"
)

type fileItem struct {
	title, desc string
	id          string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// outlineExts are the extensions geom.Decode understands by name.
var outlineExts = map[string]bool{
	".geojson": true, ".json": true, ".wkt": true, ".kml": true, ".csv": true,
	".xml": true, ".svgpath": true, ".txt": true, ".skel": true,
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if outlineExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, id: name})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no outline files in " + m.dir
	}
}

// outlineMsg carries an outline built off the UI goroutine.
type outlineMsg struct {
	source  string
	outline geom.Outline
}

// loadCmd resolves id in the background; the result is published on the
// UI goroutine by Update.
func loadCmd(l *geom.Loader, id string) tea.Cmd {
	return func() tea.Msg {
		return outlineMsg{source: id, outline: l.Load(id)}
	}
}

func parseCmd(l *geom.Loader, text string) tea.Cmd {
	return func() tea.Msg {
		return outlineMsg{source: "pasted text", outline: l.FromText(text)}
	}
}

// applyOutline publishes a loaded outline to the widget.
func (m *Model) applyOutline(msg outlineMsg) {
	m.loading = ""
	m.w.SetOutline(msg.outline)
	o := m.w.Outline()
	if o.IsFallback() {
		m.status = "fallback outline: " + msg.source
	} else {
		m.status = "loaded: " + msg.source + "  " + countsLabel(o)
	}
	m.relayoutWidget()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
