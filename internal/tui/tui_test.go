package tui

import (
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/geom"
	"mapskeleton/internal/widget"
)

const squareText = "0,0_10,0_10,10_0,10"

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"square.txt": squareText,
		"notes.md":   "not an outline",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	logger := log.New(io.Discard)
	loader := &geom.Loader{Provider: geom.FSProvider{FS: os.DirFS(dir)}, Logger: logger}
	return New(Options{Loader: loader, Style: widget.DefaultStyle(), Dir: dir, Logger: logger})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T) Model {
	m, _ := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestWindowSizeMeasuresWidget(t *testing.T) {
	m := sized(t)
	// 80 columns minus the separator, 24 rows minus header and footer
	w, h := m.Widget().Size()
	if w != 2*79 || h != 4*21 {
		t.Errorf("widget size = %vx%v, want %vx%v", w, h, 2*79, 4*21)
	}
}

func TestRefreshDirListsOutlines(t *testing.T) {
	m := newTestModel(t)
	if len(m.items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.items))
	}
	if got := m.items[0].(fileItem).id; got != "square.txt" {
		t.Errorf("item id = %q, want square.txt", got)
	}
}

func TestLoadOutline(t *testing.T) {
	m := sized(t)
	if !m.Widget().Outline().IsFallback() {
		t.Fatal("new model should show the fallback outline")
	}
	msg := loadCmd(m.loader, "square.txt")()
	m, _ = update(t, m, msg)
	if m.Widget().Outline().IsFallback() {
		t.Fatal("outline still the fallback after load")
	}
	if !strings.HasPrefix(m.status, "loaded: square.txt") {
		t.Errorf("status = %q", m.status)
	}
}

func TestLoadMissingFallsBack(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, loadCmd(m.loader, "missing.txt")())
	if !m.Widget().Outline().IsFallback() {
		t.Error("missing file should leave the fallback outline")
	}
	if !strings.HasPrefix(m.status, "fallback outline") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSidebarEnterLoads(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showSidebar {
		t.Fatal("tab should open the sidebar")
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a file should return a load command")
	}
	if m.selPath != "square.txt" {
		t.Errorf("selPath = %q", m.selPath)
	}
	m, _ = update(t, m, cmd())
	if m.Widget().Outline().IsFallback() {
		t.Error("outline not loaded from sidebar")
	}
}

func TestPasteParsesText(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, key("p"))
	if !m.pasteMode {
		t.Fatal("p should enter paste mode")
	}
	m.ta.SetValue("0,0_4,0_4,2")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pasteMode || cmd == nil {
		t.Fatalf("enter should leave paste mode with a parse command (paste=%v)", m.pasteMode)
	}
	m, _ = update(t, m, cmd())
	b := m.Widget().Outline().BBox()
	if b.Width() != 4 || b.Height() != 2 {
		t.Errorf("bbox = %+v, want 4x2", b)
	}
}

func TestPasteEmptyStaysInPasteMode(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, key("p"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.pasteMode || cmd != nil {
		t.Error("empty paste should be rejected")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.pasteMode {
		t.Error("esc should leave paste mode")
	}
}

func TestModeAndDurationKeys(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, key("m"))
	if got := m.Widget().Style().Mode; got != anim.ModeAlpha {
		t.Errorf("mode = %v, want alpha", got)
	}
	m, _ = update(t, m, key("m"))
	if got := m.Widget().Style().Mode; got != anim.ModeLine {
		t.Errorf("mode = %v, want line", got)
	}

	m, _ = update(t, m, key("+"))
	if got := m.Widget().Style().Duration; got != 3250*time.Millisecond {
		t.Errorf("duration = %v, want 3.25s", got)
	}
	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, key("-"))
	if got := m.Widget().Style().Duration; got != 2750*time.Millisecond {
		t.Errorf("duration = %v, want 2.75s", got)
	}
}

func TestDurationNeverReachesZero(t *testing.T) {
	m := sized(t)
	for i := 0; i < 20; i++ {
		m, _ = update(t, m, key("-"))
	}
	if got := m.Widget().Style().Duration; got != durationStep {
		t.Errorf("duration = %v, want %v", got, durationStep)
	}
}

func TestFrameAdvancesShimmer(t *testing.T) {
	m := sized(t)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m, cmd := update(t, m, frameMsg(t0))
	if cmd == nil {
		t.Fatal("frame should schedule the next tick")
	}
	if p := m.Widget().ShimmerState().Progress; p != 0 {
		t.Errorf("first frame progress = %v, want 0", p)
	}
	m, _ = update(t, m, frameMsg(t0.Add(1500*time.Millisecond)))
	if p := m.Widget().ShimmerState().Progress; p != 0.5 {
		t.Errorf("progress = %v, want 0.5", p)
	}
}

func TestSpaceBounces(t *testing.T) {
	m := sized(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("space should schedule a release")
	}
	if got := m.Widget().BounceState().Phase; got != anim.BounceArmed {
		t.Fatalf("phase = %v, want armed", got)
	}
	if w, _ := m.Widget().Size(); w != 162 {
		t.Errorf("armed width = %v, want 162", w)
	}
	m, _ = update(t, m, releaseMsg{})
	if got := m.Widget().BounceState().Phase; got != anim.BounceRunning {
		t.Errorf("phase = %v, want running", got)
	}
}

func TestMouseBounceOnlyInsideMap(t *testing.T) {
	m := sized(t)
	// header row
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.Widget().BounceState().Phase; got != anim.BounceIdle {
		t.Fatalf("press on header: phase = %v, want idle", got)
	}
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.Widget().BounceState().Phase; got != anim.BounceArmed {
		t.Fatalf("press on map: phase = %v, want armed", got)
	}
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if got := m.Widget().BounceState().Phase; got != anim.BounceRunning {
		t.Errorf("release: phase = %v, want running", got)
	}
}

func TestAttrsTable(t *testing.T) {
	m := sized(t)
	m, _ = update(t, m, loadCmd(m.loader, "square.txt")())
	m, _ = update(t, m, key("a"))
	if !m.showAttrs {
		t.Fatal("a should show attributes")
	}
	rows := m.tbl.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	want := strconv.Itoa(len(m.Widget().Outline().Polygons()[0]))
	if rows[0][1] != want {
		t.Errorf("points = %s, want %s", rows[0][1], want)
	}
	if rows[0][4] != "10.000" || rows[0][5] != "10.000" {
		t.Errorf("max = %s,%s, want 10.000,10.000", rows[0][4], rows[0][5])
	}
}

func TestViewDrawsSkeleton(t *testing.T) {
	m := newTestModel(t)
	if m.View() != "" {
		t.Error("view before the first size message should be empty")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	v := m.View()
	if !strings.Contains(v, "mapskeleton") {
		t.Error("view missing header")
	}
	if !strings.ContainsRune(v, '⣿') {
		t.Error("view missing filled braille cells")
	}
}

func TestQuit(t *testing.T) {
	_, cmd := update(t, sized(t), key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStylesFollowPaint(t *testing.T) {
	p := widget.DefaultStyle().Paint
	p.Stroke = color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x80}
	st := newStyles(p)
	if got := st.title.GetForeground(); got != lipgloss.Color("#123456") {
		t.Errorf("title foreground = %v, want #123456", got)
	}
	if got := st.box.GetBorderTopForeground(); got != lipgloss.Color("#888888") {
		t.Errorf("box border = %v, want #888888", got)
	}
	if got := st.active.GetBackground(); got != lipgloss.Color("#123456") {
		t.Errorf("active background = %v, want #123456", got)
	}
}

func TestFooterMarksRunningBounce(t *testing.T) {
	m := sized(t)
	if !strings.Contains(m.animLabel(), "bounce=idle") {
		t.Errorf("footer %q missing idle bounce", m.animLabel())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if want := m.st.active.Render("bounce=armed"); !strings.Contains(m.animLabel(), want) {
		t.Errorf("footer %q missing %q", m.animLabel(), want)
	}
}
