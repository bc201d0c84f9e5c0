package render

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"mapskeleton/internal/geom"
)

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithBackground paints the whole canvas with c before the frame.
func WithBackground(c color.NRGBA) SVGOption { return func(s *SVG) { s.background = &c } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(s *SVG) { s.title = t } }

// SVG is a Surface that writes an SVG document. The current transform is
// emitted as a matrix attribute on each drawn element.
type SVG struct {
	width, height float64
	background    *color.NRGBA
	title         string
	alpha         float64
	tf            transformStack
	body          bytes.Buffer
	gradients     int
}

// NewSVG returns an empty width x height SVG surface.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{width: width, height: height, alpha: 1, tf: newTransformStack()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) SetAlpha(a float64)       { s.alpha = a }
func (s *SVG) Save()                    { s.tf.save() }
func (s *SVG) Restore()                 { s.tf.restore() }
func (s *SVG) Translate(dx, dy float64) { s.tf.translate(dx, dy) }
func (s *SVG) Scale(sx, sy float64)     { s.tf.scale(sx, sy) }

func (s *SVG) FillPath(p geom.Path, c color.NRGBA) {
	fmt.Fprintf(&s.body, `  <path d="%s"%s fill-rule="nonzero"%s/>`+"\n",
		pathData(p), paintAttrs("fill", c), s.transformAttr())
}

func (s *SVG) FillGradient(p geom.Path, g LinearGradient) {
	s.gradients++
	id := fmt.Sprintf("band%d", s.gradients)
	fmt.Fprintf(&s.body, `  <defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" spreadMethod="pad" x1="%g" y1="%g" x2="%g" y2="%g">`,
		id, g.X0, g.Y0, g.X1, g.Y1)
	for _, st := range g.Stops {
		fmt.Fprintf(&s.body, `<stop offset="%g" stop-color="%s" stop-opacity="%g"/>`,
			st.Offset, rgbHex(st.Color), alphaOf(st.Color))
	}
	s.body.WriteString("</linearGradient></defs>\n")
	fmt.Fprintf(&s.body, `  <path d="%s" fill="url(#%s)" fill-rule="nonzero"%s/>`+"\n",
		pathData(p), id, s.transformAttr())
}

func (s *SVG) StrokePath(p geom.Path, c color.NRGBA, width float64) {
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none"%s stroke-width="%g" stroke-linejoin="round"%s/>`+"\n",
		pathData(p), paintAttrs("stroke", c), width, s.transformAttr())
}

func (s *SVG) DrawText(text string, x, y float64, c color.NRGBA, size float64) {
	fmt.Fprintf(&s.body, `  <text x="%g" y="%g" font-family="Go, sans-serif" font-size="%g"%s%s>%s</text>`+"\n",
		x, y, size, paintAttrs("fill", c), s.transformAttr(), html.EscapeString(text))
}

func (s *SVG) transformAttr() string {
	if s.tf.ctm == matrix.Identity {
		return ""
	}
	m := s.tf.ctm
	return fmt.Sprintf(` transform="matrix(%g %g %g %g %g %g)"`, m[0], m[1], m[2], m[3], m[4], m[5])
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.title))
	}
	if s.background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%"%s/>`+"\n", paintAttrs("fill", *s.background))
	}
	if s.alpha < 1 {
		fmt.Fprintf(&buf, `<g opacity="%.3f">`+"\n", s.alpha)
	}
	buf.Write(s.body.Bytes())
	if s.alpha < 1 {
		buf.WriteString("</g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func pathData(p geom.Path) string {
	var sb strings.Builder
	for _, seg := range p {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch seg.Cmd {
		case geom.MoveTo:
			fmt.Fprintf(&sb, "M%g %g", seg.Pt.X, seg.Pt.Y)
		case geom.LineTo:
			fmt.Fprintf(&sb, "L%g %g", seg.Pt.X, seg.Pt.Y)
		case geom.Close:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func paintAttrs(attr string, c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf(` %s="%s"`, attr, rgbHex(c))
	}
	return fmt.Sprintf(` %s="%s" %s-opacity="%g"`, attr, rgbHex(c), attr, alphaOf(c))
}

func rgbHex(c color.NRGBA) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func alphaOf(c color.NRGBA) float64 { return float64(c.A) / 255 }
