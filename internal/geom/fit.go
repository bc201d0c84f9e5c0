package geom

import "seehuhn.de/go/geom/matrix"

// FitTransform maps outline space into viewport space:
// (x*Scale + TranslateX, y*Scale + TranslateY).
type FitTransform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Fit computes the uniform scale and translation that fit box inside a
// width x height viewport without distortion, centered along the axis with
// slack. A degenerate box is replaced by the fallback circle's box; a
// viewport without area yields a zero Scale.
func Fit(width, height float64, box BBox) FitTransform {
	if box.Degenerate() {
		box = Fallback().BBox()
	}
	if !(width > 0 && height > 0) {
		return FitTransform{}
	}
	bw, bh := box.Width(), box.Height()
	scaleX := width / bw
	scaleY := height / bh
	if scaleX <= scaleY {
		// width limits: vertical slack
		s := scaleX
		return FitTransform{
			Scale:      s,
			TranslateX: -box.MinX * s,
			TranslateY: -box.MinY*s + (height-bh*s)/2,
		}
	}
	s := scaleY
	return FitTransform{
		Scale:      s,
		TranslateX: -box.MinX*s + (width-bw*s)/2,
		TranslateY: -box.MinY * s,
	}
}

// Apply maps p into viewport space.
func (f FitTransform) Apply(p Point) Point {
	return Point{X: p.X*f.Scale + f.TranslateX, Y: p.Y*f.Scale + f.TranslateY}
}

// Matrix returns f as an affine matrix {a b c d e f} with x' = a*x+c*y+e.
func (f FitTransform) Matrix() matrix.Matrix {
	return matrix.Matrix{f.Scale, 0, 0, f.Scale, f.TranslateX, f.TranslateY}
}

// Usable reports whether f can be applied without collapsing the outline.
func (f FitTransform) Usable() bool { return f.Scale > 0 && finite(f.Scale) }
