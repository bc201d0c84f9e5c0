package render

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"mapskeleton/internal/geom"
)

// transformStack tracks the current transformation matrix of a surface.
// Matrices use the {a b c d e f} layout: x' = a*x + c*y + e, y' = b*x + d*y + f.
type transformStack struct {
	ctm   matrix.Matrix
	saved []matrix.Matrix
}

func newTransformStack() transformStack {
	return transformStack{ctm: matrix.Identity}
}

func (t *transformStack) save() { t.saved = append(t.saved, t.ctm) }

// restore is a no-op on an empty stack.
func (t *transformStack) restore() {
	if n := len(t.saved); n > 0 {
		t.ctm = t.saved[n-1]
		t.saved = t.saved[:n-1]
	}
}

func (t *transformStack) translate(dx, dy float64) {
	t.ctm = matrix.Translate(dx, dy).Mul(t.ctm)
}

func (t *transformStack) scale(sx, sy float64) {
	t.ctm = matrix.Scale(sx, sy).Mul(t.ctm)
}

func (t *transformStack) apply(p geom.Point) geom.Point {
	x, y := t.ctm.Apply(p.X, p.Y)
	return geom.Point{X: x, Y: y}
}

// inverse maps device space back to user space. It reports false when the
// CTM collapses the plane.
func (t *transformStack) inverse() (matrix.Matrix, bool) {
	m := t.ctm
	if m[0]*m[3]-m[1]*m[2] == 0 {
		return matrix.Matrix{}, false
	}
	return m.Inv(), true
}

// linearScale is the factor by which the CTM stretches lengths, assuming
// no shear.
func (t *transformStack) linearScale() float64 {
	m := t.ctm
	sx := m[0]*m[0] + m[1]*m[1]
	sy := m[2]*m[2] + m[3]*m[3]
	return (math.Sqrt(sx) + math.Sqrt(sy)) / 2
}
