package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"mapskeleton/internal/geom"
)

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithRasterBackground fills the canvas with c below the composited frame.
func WithRasterBackground(c color.NRGBA) RasterOption {
	return func(r *Raster) { r.background = c }
}

// WithFontMeasurer sets the fonts used for labels.
func WithFontMeasurer(m *FontMeasurer) RasterOption {
	return func(r *Raster) { r.fonts = m }
}

// Raster is an anti-aliased image Surface. Draw operations go to a
// transparent layer which is composited with the frame alpha by Image.
type Raster struct {
	layer      *image.RGBA
	background color.NRGBA
	fonts      *FontMeasurer
	alpha      float64
	tf         transformStack
	rz         vector.Rasterizer
}

// NewRaster returns a w x h raster surface.
func NewRaster(w, h int, opts ...RasterOption) *Raster {
	r := &Raster{
		layer: image.NewRGBA(image.Rect(0, 0, w, h)),
		alpha: 1,
		tf:    newTransformStack(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		r.fonts, _ = NewFontMeasurer(nil)
	}
	return r
}

func (r *Raster) SetAlpha(a float64)       { r.alpha = math.Max(0, math.Min(1, a)) }
func (r *Raster) Save()                    { r.tf.save() }
func (r *Raster) Restore()                 { r.tf.restore() }
func (r *Raster) Translate(dx, dy float64) { r.tf.translate(dx, dy) }
func (r *Raster) Scale(sx, sy float64)     { r.tf.scale(sx, sy) }

func (r *Raster) FillPath(p geom.Path, c color.NRGBA) {
	r.fill(p, image.NewUniform(c))
}

func (r *Raster) FillGradient(p geom.Path, g LinearGradient) {
	inv, ok := r.tf.inverse()
	if !ok {
		return
	}
	r.fill(p, gradientImage{g: g, inv: inv})
}

func (r *Raster) fill(p geom.Path, src image.Image) {
	b := r.layer.Bounds()
	r.rz.Reset(b.Dx(), b.Dy())
	for _, ring := range p.Subpaths() {
		if len(ring) < 2 {
			continue
		}
		start := r.tf.apply(ring[0])
		r.rz.MoveTo(float32(start.X), float32(start.Y))
		for _, pt := range ring[1:] {
			d := r.tf.apply(pt)
			r.rz.LineTo(float32(d.X), float32(d.Y))
		}
		r.rz.ClosePath()
	}
	r.rz.Draw(r.layer, b, src, image.Point{})
}

// StrokePath outlines every closed ring with quads of the device-space width.
// All quads share one winding direction so overlaps at joints do not cancel.
func (r *Raster) StrokePath(p geom.Path, c color.NRGBA, width float64) {
	hw := width * r.tf.linearScale() / 2
	if !(hw > 0) {
		return
	}
	b := r.layer.Bounds()
	r.rz.Reset(b.Dx(), b.Dy())
	for _, ring := range p.Subpaths() {
		for i := range ring {
			a := r.tf.apply(ring[i])
			z := r.tf.apply(ring[(i+1)%len(ring)])
			r.quad(a, z, hw)
		}
	}
	r.rz.Draw(r.layer, b, image.NewUniform(c), image.Point{})
}

func (r *Raster) quad(a, b geom.Point, hw float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	// unit direction and left normal, extended by hw to close joints
	u := d.Mul(1 / l)
	n := geom.Point{X: -u.Y * hw, Y: u.X * hw}
	a = a.Sub(u.Mul(hw))
	b = b.Add(u.Mul(hw))
	r.rz.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	r.rz.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	r.rz.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
	r.rz.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	r.rz.ClosePath()
}

// DrawText draws text with its baseline origin at (x, y). Only the
// translation of the current transform applies to text.
func (r *Raster) DrawText(text string, x, y float64, c color.NRGBA, size float64) {
	face := r.fonts.Face(size)
	if face == nil {
		return
	}
	o := r.tf.apply(geom.Point{X: x, Y: y})
	d := &font.Drawer{
		Dst:  r.layer,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(o.X), Y: floatToFixed(o.Y)},
	}
	d.DrawString(text)
}

// MeasureText measures with the raster's fonts.
func (r *Raster) MeasureText(text string, size float64) (float64, float64) {
	return r.fonts.MeasureText(text, size)
}

// Image composites the drawn layer over the background at the frame alpha.
func (r *Raster) Image() *image.RGBA {
	b := r.layer.Bounds()
	out := image.NewRGBA(b)
	if r.background.A > 0 {
		draw.Draw(out, b, image.NewUniform(r.background), image.Point{}, draw.Src)
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(r.alpha * 255))})
	draw.DrawMask(out, b, r.layer, b.Min, mask, image.Point{}, draw.Over)
	return out
}

// EncodePNG writes the composited image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}
