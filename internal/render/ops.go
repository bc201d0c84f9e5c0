// Package render turns an outline, its fit transform and the animation state
// into an ordered list of draw operations, and replays those operations onto
// drawing surfaces: an op recorder, SVG, raster images and terminal braille.
package render

import (
	"fmt"
	"image/color"

	"mapskeleton/internal/geom"
)

// Surface is a 2D drawing target. Transform operations apply to subsequent
// draw operations until the matching Restore.
type Surface interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	FillPath(p geom.Path, c color.NRGBA)
	FillGradient(p geom.Path, g LinearGradient)
	StrokePath(p geom.Path, c color.NRGBA, width float64)
	DrawText(text string, x, y float64, c color.NRGBA, size float64)
}

// Compositor is implemented by surfaces that can apply an opacity to the
// whole composited frame.
type Compositor interface {
	SetAlpha(a float64)
}

// OpKind identifies a draw operation.
type OpKind int

const (
	OpSave OpKind = iota
	OpRestore
	OpTranslate
	OpScale
	OpFillPath
	OpFillGradient
	OpStrokePath
	OpDrawText
)

var opNames = [...]string{"save", "restore", "translate", "scale", "fill", "gradient", "stroke", "text"}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one recorded draw operation. Fields not used by Kind are zero.
type Op struct {
	Kind     OpKind
	X, Y     float64 // translation, scale factors or text origin
	Path     geom.Path
	Color    color.NRGBA
	Width    float64
	Gradient LinearGradient
	Text     string
	Size     float64
}

func (op Op) String() string {
	switch op.Kind {
	case OpTranslate, OpScale:
		return fmt.Sprintf("%s(%g, %g)", op.Kind, op.X, op.Y)
	case OpFillPath:
		return fmt.Sprintf("fill(%d segs, %s)", len(op.Path), hexColor(op.Color))
	case OpFillGradient:
		return fmt.Sprintf("gradient(%d segs, %s)", len(op.Path), op.Gradient)
	case OpStrokePath:
		return fmt.Sprintf("stroke(%d segs, %s, %g)", len(op.Path), hexColor(op.Color), op.Width)
	case OpDrawText:
		return fmt.Sprintf("text(%q at %g,%g, %s, %g)", op.Text, op.X, op.Y, hexColor(op.Color), op.Size)
	}
	return op.Kind.String()
}

func (op Op) apply(s Surface) {
	switch op.Kind {
	case OpSave:
		s.Save()
	case OpRestore:
		s.Restore()
	case OpTranslate:
		s.Translate(op.X, op.Y)
	case OpScale:
		s.Scale(op.X, op.Y)
	case OpFillPath:
		s.FillPath(op.Path, op.Color)
	case OpFillGradient:
		s.FillGradient(op.Path, op.Gradient)
	case OpStrokePath:
		s.StrokePath(op.Path, op.Color, op.Width)
	case OpDrawText:
		s.DrawText(op.Text, op.X, op.Y, op.Color, op.Size)
	}
}

// Frame is the output of one render pass: the ordered ops and the opacity of
// the composited result.
type Frame struct {
	Alpha float64
	Ops   []Op
}

// Replay issues f's ops to s in order. Surfaces implementing Compositor
// receive the frame alpha first.
func Replay(f Frame, s Surface) {
	if c, ok := s.(Compositor); ok {
		c.SetAlpha(f.Alpha)
	}
	for _, op := range f.Ops {
		op.apply(s)
	}
}

// Recorder is a Surface that keeps every operation it receives.
type Recorder struct {
	Alpha float64
	Ops   []Op
}

func (r *Recorder) SetAlpha(a float64) { r.Alpha = a }

func (r *Recorder) Save()    { r.Ops = append(r.Ops, Op{Kind: OpSave}) }
func (r *Recorder) Restore() { r.Ops = append(r.Ops, Op{Kind: OpRestore}) }

func (r *Recorder) Translate(dx, dy float64) {
	r.Ops = append(r.Ops, Op{Kind: OpTranslate, X: dx, Y: dy})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.Ops = append(r.Ops, Op{Kind: OpScale, X: sx, Y: sy})
}

func (r *Recorder) FillPath(p geom.Path, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPath, Path: p, Color: c})
}

func (r *Recorder) FillGradient(p geom.Path, g LinearGradient) {
	r.Ops = append(r.Ops, Op{Kind: OpFillGradient, Path: p, Gradient: g})
}

func (r *Recorder) StrokePath(p geom.Path, c color.NRGBA, width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePath, Path: p, Color: c, Width: width})
}

func (r *Recorder) DrawText(text string, x, y float64, c color.NRGBA, size float64) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, Text: text, X: x, Y: y, Color: c, Size: size})
}

// Frame returns what r has recorded as a Frame.
func (r *Recorder) Frame() Frame {
	return Frame{Alpha: r.Alpha, Ops: r.Ops}
}

func hexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}
