package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"mapskeleton/internal/geom"
	"mapskeleton/internal/widget"
)

const (
	frameInterval = time.Second / 30
	// keyboard presses have no release event; one is synthesized after this
	keyReleaseDelay = 120 * time.Millisecond
	durationStep    = 250 * time.Millisecond
)

// Options configures the viewer.
type Options struct {
	// Loader resolves outline ids; its provider should be rooted at Dir.
	Loader *geom.Loader
	Style  widget.Style
	// Source is loaded at startup when set.
	Source string
	// Dir is listed in the file sidebar.
	Dir    string
	Logger *log.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	st     styles

	// File explorer
	dir     string
	l       list.Model
	items   []list.Item
	selPath string

	// Skeleton
	w         *widget.Widget
	loader    *geom.Loader
	logger    *log.Logger
	lastFrame time.Time
	loading   string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	loader := opts.Loader
	if loader == nil {
		loader = &geom.Loader{Logger: logger}
	}
	m := Model{
		helpVisible: true,
		status:      "mapskeleton ready",
		dir:         opts.Dir,
		selPath:     opts.Source,
		loader:      loader,
		logger:      logger,
		w:           widget.New(opts.Style, widget.WithLoader(loader), widget.WithLogger(logger)),
		st:          newStyles(opts.Style.Paint),
	}
	if m.dir == "" {
		m.dir, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Outlines"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste outline text (x,y_x,y_... or x,y;x,y|x,y;...). Enter to render, Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.selPath != "" {
		cmds = append(cmds, loadCmd(m.loader, m.selPath))
	}
	return tea.Batch(cmds...)
}

// Widget exposes the skeleton being shown.
func (m Model) Widget() *widget.Widget { return m.w }
