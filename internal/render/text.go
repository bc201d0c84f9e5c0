package render

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *opentype.Font
	defaultFontErr  error
)

// DefaultFont returns the bundled Go Regular font.
func DefaultFont() (*opentype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = opentype.Parse(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// FontMeasurer measures and caches faces of one font at the sizes asked for.
type FontMeasurer struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFontMeasurer returns a measurer for f, or for DefaultFont if f is nil.
func NewFontMeasurer(f *opentype.Font) (*FontMeasurer, error) {
	if f == nil {
		var err error
		if f, err = DefaultFont(); err != nil {
			return nil, err
		}
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Face returns the face for size, creating it on first use. A face that
// cannot be built yields nil.
func (m *FontMeasurer) Face(size float64) font.Face {
	if face, ok := m.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		face = nil
	}
	m.faces[size] = face
	return face
}

// MeasureText returns the width and height of the ink bounds of text.
func (m *FontMeasurer) MeasureText(text string, size float64) (float64, float64) {
	face := m.Face(size)
	if face == nil {
		return EstimateMeasurer{}.MeasureText(text, size)
	}
	b, _ := font.BoundString(face, text)
	return fixedToFloat(b.Max.X - b.Min.X), fixedToFloat(b.Max.Y - b.Min.Y)
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }
