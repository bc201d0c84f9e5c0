package render

import (
	"image/color"
	"unicode/utf8"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/geom"
)

// Paint is the visual style of a frame.
type Paint struct {
	Background  color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64 // in viewport pixels
	Shimmer     color.NRGBA
	Angle       float64 // shimmer tilt in degrees
	AlphaMin    float64
	AlphaMax    float64
	Label       string
	LabelColor  color.NRGBA
	LabelSize   float64
}

// DefaultPaint returns the stock style: gray fill, white shimmer, blue border.
func DefaultPaint() Paint {
	return Paint{
		Background:  color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
		Stroke:      color.NRGBA{B: 0xff, A: 0xff},
		StrokeWidth: 1,
		Shimmer:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Angle:       30,
		AlphaMin:    0.3,
		AlphaMax:    1,
		LabelColor:  color.NRGBA{A: 0xff},
		LabelSize:   15,
	}
}

// TextMeasurer reports the ink bounds of text at a font size.
type TextMeasurer interface {
	MeasureText(text string, size float64) (w, h float64)
}

// EstimateMeasurer approximates text bounds from the rune count, for
// callers without font data.
type EstimateMeasurer struct{}

func (EstimateMeasurer) MeasureText(text string, size float64) (float64, float64) {
	return 0.55 * size * float64(utf8.RuneCountInString(text)), 0.7 * size
}

// Input is everything one frame depends on.
type Input struct {
	Outline geom.Outline
	Fit     geom.FitTransform
	Width   float64 // viewport size
	Height  float64
	Shimmer anim.ShimmerState
	Paint   Paint
}

// RenderFrame builds the draw ops for one frame. The order is fixed: fill
// the outline, draw the label centered in untransformed viewport space,
// sweep the shimmer band (line mode only), then stroke the border with a
// width that stays constant in viewport pixels. Alpha mode only changes the
// frame alpha. A transform that cannot be applied yields an empty frame.
func RenderFrame(in Input, tm TextMeasurer) Frame {
	f := Frame{Alpha: 1}
	if !in.Outline.Valid() || !in.Fit.Usable() {
		return f
	}
	if tm == nil {
		tm = EstimateMeasurer{}
	}
	p := in.Paint
	if in.Shimmer.Running && in.Shimmer.Mode == anim.ModeAlpha {
		f.Alpha = anim.CosinePulse(in.Shimmer.Progress, p.AlphaMin, p.AlphaMax)
	}

	path := in.Outline.Path()
	transformed := func(op Op) {
		f.Ops = append(f.Ops,
			Op{Kind: OpSave},
			Op{Kind: OpTranslate, X: in.Fit.TranslateX, Y: in.Fit.TranslateY},
			Op{Kind: OpScale, X: in.Fit.Scale, Y: in.Fit.Scale},
			op,
			Op{Kind: OpRestore},
		)
	}

	transformed(Op{Kind: OpFillPath, Path: path, Color: p.Background})

	if p.Label != "" {
		w, h := tm.MeasureText(p.Label, p.LabelSize)
		f.Ops = append(f.Ops, Op{
			Kind:  OpDrawText,
			Text:  p.Label,
			X:     in.Width/2 - w/2,
			Y:     in.Height/2 + h/2,
			Color: p.LabelColor,
			Size:  p.LabelSize,
		})
	}

	if in.Shimmer.Running && in.Shimmer.Mode == anim.ModeLine {
		g := ShimmerBand(in.Outline.BBox(), p.Angle, in.Shimmer.Progress, p.Shimmer)
		transformed(Op{Kind: OpFillGradient, Path: path, Gradient: g})
	}

	transformed(Op{Kind: OpStrokePath, Path: path, Color: p.Stroke, Width: p.StrokeWidth / in.Fit.Scale})
	return f
}
