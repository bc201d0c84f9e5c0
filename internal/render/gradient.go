package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"

	"mapskeleton/internal/geom"
)

// Shimmer band stop offsets along the gradient axis.
var bandOffsets = [4]float64{0.45, 0.499, 0.501, 0.55}

// Stop is a color at a relative offset along a gradient axis.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient runs from (X0, Y0) to (X1, Y1). Outside the axis the end
// colors are extended (pad spread, no tiling).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

func (g LinearGradient) String() string {
	return fmt.Sprintf("(%g,%g)->(%g,%g) %d stops", g.X0, g.Y0, g.X1, g.Y1, len(g.Stops))
}

// ShimmerBand returns the highlight gradient for the given outline box, tilt
// angle in degrees and shimmer progress. The band is transparent except for a
// narrow stripe of c around the middle of the gradient axis, and sweeps from
// left of the box to right of it as progress goes from 0 to 1.
func ShimmerBand(box geom.BBox, angleDeg, progress float64, c color.NRGBA) LinearGradient {
	w := box.Width()
	angleLength := w * math.Tan(angleDeg*math.Pi/180)
	start := -w/2 - angleLength + (w+2*angleLength)*progress
	clear := c
	clear.A = 0
	return LinearGradient{
		X0: box.MinX + start,
		Y0: box.MinY,
		X1: box.MaxX + start,
		Y1: box.MinY + angleLength,
		Stops: []Stop{
			{Offset: bandOffsets[0], Color: clear},
			{Offset: bandOffsets[1], Color: c},
			{Offset: bandOffsets[2], Color: c},
			{Offset: bandOffsets[3], Color: clear},
		},
	}
}

// T projects (x, y) onto the gradient axis and clamps the result to [0, 1].
func (g LinearGradient) T(x, y float64) float64 {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	return math.Max(0, math.Min(1, t))
}

// At returns the gradient color at (x, y).
func (g LinearGradient) At(x, y float64) color.NRGBA {
	return g.ColorAt(g.T(x, y))
}

// ColorAt returns the gradient color at axis position t. Colors are
// interpolated in premultiplied space.
func (g LinearGradient) ColorAt(t float64) color.NRGBA {
	n := len(g.Stops)
	switch {
	case n == 0:
		return color.NRGBA{}
	case t <= g.Stops[0].Offset:
		return g.Stops[0].Color
	case t >= g.Stops[n-1].Offset:
		return g.Stops[n-1].Color
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[n-1].Color
}

func lerpColor(a, b color.NRGBA, f float64) color.NRGBA {
	aa, ba := float64(a.A)/255, float64(b.A)/255
	alpha := aa + (ba-aa)*f
	if alpha <= 0 {
		return color.NRGBA{}
	}
	ch := func(x, y uint8) uint8 {
		pa := float64(x) * aa
		pb := float64(y) * ba
		return uint8(math.Round((pa + (pb-pa)*f) / alpha))
	}
	return color.NRGBA{
		R: ch(a.R, b.R),
		G: ch(a.G, b.G),
		B: ch(a.B, b.B),
		A: uint8(math.Round(alpha * 255)),
	}
}

// gradientImage samples a gradient given in user space at device pixels.
type gradientImage struct {
	g   LinearGradient
	inv matrix.Matrix // device to user space
}

func (gi gradientImage) ColorModel() color.Model { return color.NRGBAModel }

func (gi gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (gi gradientImage) At(x, y int) color.Color {
	ux, uy := gi.inv.Apply(float64(x)+0.5, float64(y)+0.5)
	return gi.g.At(ux, uy)
}
