package render

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"mapskeleton/internal/geom"
)

// brailleCell is one terminal cell: an 8-dot mask and the color of the
// topmost layer that touched it.
type brailleCell struct {
	mask  uint8
	color color.NRGBA
	label rune
}

// Braille is a terminal Surface. Each cell holds a 2x4 grid of micro
// pixels; device coordinates are micro pixels, so the viewport of a
// cols x rows grid is (2*cols) x (4*rows).
type Braille struct {
	cols, rows int
	cells      [][]brailleCell
	alpha      float64
	tf         transformStack
}

// NewBraille returns an empty cols x rows braille surface.
func NewBraille(cols, rows int) *Braille {
	cells := make([][]brailleCell, rows)
	for i := range cells {
		cells[i] = make([]brailleCell, cols)
	}
	return &Braille{cols: cols, rows: rows, cells: cells, alpha: 1, tf: newTransformStack()}
}

// Size returns the surface size in micro pixels.
func (b *Braille) Size() (w, h float64) { return float64(2 * b.cols), float64(4 * b.rows) }

func (b *Braille) SetAlpha(a float64)       { b.alpha = math.Max(0, math.Min(1, a)) }
func (b *Braille) Save()                    { b.tf.save() }
func (b *Braille) Restore()                 { b.tf.restore() }
func (b *Braille) Translate(dx, dy float64) { b.tf.translate(dx, dy) }
func (b *Braille) Scale(sx, sy float64)     { b.tf.scale(sx, sy) }

var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro pixel and paints its cell with c.
func (b *Braille) setPixel(mx, my int, c color.NRGBA) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.rows || cx >= b.cols {
		return
	}
	cell := &b.cells[cy][cx]
	cell.mask |= brailleBits[mx%2][my%4]
	cell.color = c
}

// tint blends c over the color of the cell holding a lit micro pixel.
func (b *Braille) tint(mx, my int, c color.NRGBA) {
	if mx < 0 || my < 0 || c.A == 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.rows || cx >= b.cols {
		return
	}
	cell := &b.cells[cy][cx]
	if cell.mask&brailleBits[mx%2][my%4] == 0 {
		return
	}
	cell.color = blendOver(cell.color, c)
}

func (b *Braille) rings(p geom.Path) [][][2]int {
	var out [][][2]int
	for _, ring := range p.Subpaths() {
		r := make([][2]int, 0, len(ring))
		for _, pt := range ring {
			d := b.tf.apply(pt)
			r = append(r, [2]int{int(math.Floor(d.X)), int(math.Floor(d.Y))})
		}
		out = append(out, r)
	}
	return out
}

// crossing is where a ring edge meets a scanline; dir is +1 for edges
// running down and -1 for edges running up.
type crossing struct {
	x   int
	dir int
}

// scan calls fn for every micro pixel inside the rings under the nonzero
// winding rule.
func (b *Braille) scan(rings [][][2]int, fn func(mx, my int)) {
	_, hMic := b.Size()
	var xs []crossing
	for my := 0; my < int(hMic); my++ {
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				p := r[i]
				q := r[(i+1)%len(r)]
				if p[1] == q[1] {
					continue
				}
				dir := 1
				if q[1] < p[1] {
					dir = -1
				}
				if (my >= p[1] && my < q[1]) || (my >= q[1] && my < p[1]) {
					t := float64(my-p[1]) / float64(q[1]-p[1])
					xs = append(xs, crossing{x: int(float64(p[0]) + t*float64(q[0]-p[0])), dir: dir})
				}
			}
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i].x < xs[j].x })
		winding, start := 0, 0
		for _, c := range xs {
			was := winding
			winding += c.dir
			switch {
			case was == 0 && winding != 0:
				start = c.x
			case was != 0 && winding == 0:
				for mx := max(0, start); mx <= c.x; mx++ {
					fn(mx, my)
				}
			}
		}
	}
}

func (b *Braille) FillPath(p geom.Path, c color.NRGBA) {
	b.scan(b.rings(p), func(mx, my int) { b.setPixel(mx, my, c) })
}

func (b *Braille) FillGradient(p geom.Path, g LinearGradient) {
	inv, ok := b.tf.inverse()
	if !ok {
		return
	}
	b.scan(b.rings(p), func(mx, my int) {
		ux, uy := inv.Apply(float64(mx)+0.5, float64(my)+0.5)
		b.tint(mx, my, g.At(ux, uy))
	})
}

// StrokePath draws one-dot Bresenham edges; width is ignored at this
// resolution.
func (b *Braille) StrokePath(p geom.Path, c color.NRGBA, _ float64) {
	for _, r := range b.rings(p) {
		for i := range r {
			q := r[(i+1)%len(r)]
			b.line(r[i][0], r[i][1], q[0], q[1], c)
		}
	}
}

func (b *Braille) line(x0, y0, x1, y1 int, c color.NRGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawText writes text into the cells whose baseline row contains y. The
// font size is ignored.
func (b *Braille) DrawText(text string, x, y float64, c color.NRGBA, _ float64) {
	o := b.tf.apply(geom.Point{X: x, Y: y})
	cy := int(math.Floor((o.Y - 1) / 4))
	cx := int(math.Floor(o.X / 2))
	if cy < 0 || cy >= b.rows {
		return
	}
	for _, r := range text {
		if cx >= 0 && cx < b.cols {
			cell := &b.cells[cy][cx]
			cell.label = r
			cell.color = c
		}
		cx++
	}
}

// MeasureText reports text extents in micro pixels: two per rune wide, one
// cell high.
func (b *Braille) MeasureText(text string, _ float64) (float64, float64) {
	return float64(2 * len([]rune(text))), 4
}

func (b *Braille) glyph(cell brailleCell) rune {
	switch {
	case cell.label != 0:
		return cell.label
	case cell.mask == 0:
		return ' '
	}
	return rune(0x2800 + int(cell.mask))
}

// Lines returns the grid as plain text.
func (b *Braille) Lines() []string {
	out := make([]string, b.rows)
	for y, row := range b.cells {
		rs := make([]rune, len(row))
		for x, cell := range row {
			rs[x] = b.glyph(cell)
		}
		out[y] = string(rs)
	}
	return out
}

// String renders the grid with per-cell foreground colors, dimmed towards
// black by the frame alpha.
func (b *Braille) String() string {
	lines := make([]string, b.rows)
	for y, row := range b.cells {
		var sb strings.Builder
		var run []rune
		var runColor string
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(string(run)))
			}
			run = run[:0]
		}
		for _, cell := range row {
			g := b.glyph(cell)
			col := ""
			if g != ' ' {
				col = b.terminalColor(cell.color)
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run = append(run, g)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (b *Braille) terminalColor(c color.NRGBA) string {
	cc, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return cc.BlendRgb(colorful.Color{}, 1-b.alpha).Clamped().Hex()
}

func blendOver(dst, src color.NRGBA) color.NRGBA {
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	return color.NRGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xff}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
