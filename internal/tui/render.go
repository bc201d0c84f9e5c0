package tui

import "mapskeleton/internal/render"

// renderSkeleton draws the widget onto a braille grid of w×h cells,
// centered so a bounce grows and shrinks around the middle of the canvas.
func (m Model) renderSkeleton(w, h int) string {
	br := render.NewBraille(w, h)
	cw, ch := br.Size()
	ww, wh := m.w.Size()
	br.Save()
	br.Translate((cw-ww)/2, (ch-wh)/2)
	m.w.Draw(br, br)
	br.Restore()
	return br.String()
}
