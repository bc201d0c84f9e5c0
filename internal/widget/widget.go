// Package widget holds one skeleton view: its style, the outline, the fit
// transform and the two animators. The host drives it from a single thread
// with Measure, OnFrame and OnGesture and redraws when told to.
package widget

import (
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"mapskeleton/internal/anim"
	"mapskeleton/internal/geom"
	"mapskeleton/internal/render"
)

// Style is the full configuration of a widget.
type Style struct {
	render.Paint
	Mode     anim.Mode
	Duration time.Duration
}

// DefaultStyle returns the stock style in line mode with a 3s cycle.
func DefaultStyle() Style {
	return Style{
		Paint:    render.DefaultPaint(),
		Mode:     anim.ModeLine,
		Duration: anim.DefaultShimmerDuration,
	}
}

// Dirty tells the host what a change requires.
type Dirty uint8

const (
	NeedsRedraw Dirty = 1 << iota
	NeedsRelayout
)

func (d Dirty) Redraw() bool   { return d&NeedsRedraw != 0 }
func (d Dirty) Relayout() bool { return d&NeedsRelayout != 0 }

// MeasureMode is the kind of size constraint given by the host.
type MeasureMode int

const (
	Unspecified MeasureMode = iota
	Exactly
	AtMost
)

// MeasureSpec is a size constraint along one axis.
type MeasureSpec struct {
	Mode MeasureMode
	Size float64
}

// Gesture is a zero-payload touch signal.
type Gesture int

const (
	Press Gesture = iota
	Release
)

// Option configures a Widget.
type Option func(*Widget)

// WithLoader sets the loader used by SetSource and SetPathFunc.
func WithLoader(l *geom.Loader) Option { return func(w *Widget) { w.loader = l } }

// WithLogger sets the logger; the default is log.Default().
func WithLogger(l *log.Logger) Option { return func(w *Widget) { w.logger = l } }

// Widget is not safe for concurrent use.
type Widget struct {
	style   Style
	outline geom.Outline
	shimmer *anim.Shimmer
	bounce  *anim.Bounce
	loader  *geom.Loader
	logger  *log.Logger

	// measured size without bounce, and the size currently laid out
	baseW, baseH float64
	w, h         float64
	fit          geom.FitTransform
}

// New returns a widget showing the fallback outline until a source is set.
func New(style Style, opts ...Option) *Widget {
	w := &Widget{
		style:   style,
		outline: geom.Fallback(),
		bounce:  anim.NewBounce(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	if w.loader == nil {
		w.loader = &geom.Loader{Logger: w.logger}
	}
	w.restartShimmer()
	return w
}

func (w *Widget) restartShimmer() {
	w.shimmer = anim.NewShimmer(w.style.Mode, w.style.Duration)
	w.logger.Debug("shimmer restarted", "mode", w.shimmer.Mode(), "duration", w.shimmer.Duration())
}

func (w *Widget) Style() Style                    { return w.style }
func (w *Widget) Outline() geom.Outline           { return w.outline }
func (w *Widget) Fit() geom.FitTransform          { return w.fit }
func (w *Widget) Size() (float64, float64)        { return w.w, w.h }
func (w *Widget) ShimmerState() anim.ShimmerState { return w.shimmer.State() }
func (w *Widget) BounceState() anim.BounceState   { return w.bounce.State() }

// SetStyle replaces the whole style. A new mode or duration restarts the
// shimmer from zero.
func (w *Widget) SetStyle(s Style) Dirty {
	old := w.style
	w.style = s
	if s.Mode != old.Mode || s.Duration != old.Duration {
		w.restartShimmer()
	}
	return NeedsRedraw
}

func (w *Widget) SetBackground(c color.NRGBA) Dirty {
	w.style.Background = c
	return NeedsRedraw
}

func (w *Widget) SetStroke(c color.NRGBA, width float64) Dirty {
	w.style.Stroke = c
	w.style.StrokeWidth = width
	return NeedsRedraw
}

func (w *Widget) SetShimmerColor(c color.NRGBA) Dirty {
	w.style.Shimmer = c
	return NeedsRedraw
}

// SetAngle sets the shimmer tilt in degrees.
func (w *Widget) SetAngle(deg float64) Dirty {
	w.style.Angle = deg
	return NeedsRedraw
}

func (w *Widget) SetAlphaBounds(lo, hi float64) Dirty {
	w.style.AlphaMin, w.style.AlphaMax = lo, hi
	return NeedsRedraw
}

func (w *Widget) SetLabel(text string) Dirty {
	w.style.Label = text
	return NeedsRedraw
}

func (w *Widget) SetLabelStyle(c color.NRGBA, size float64) Dirty {
	w.style.LabelColor = c
	w.style.LabelSize = size
	return NeedsRedraw
}

// SetMode switches between line and alpha shimmer, restarting it.
func (w *Widget) SetMode(m anim.Mode) Dirty {
	w.style.Mode = m
	w.restartShimmer()
	return NeedsRedraw
}

// SetDuration changes the shimmer cycle length, restarting it.
func (w *Widget) SetDuration(d time.Duration) Dirty {
	w.style.Duration = d
	w.restartShimmer()
	return NeedsRedraw
}

// SetSource loads the outline identified by id through the loader.
// Loading blocks; hosts that must not block load with a geom.Loader off
// the render thread and publish the result with SetOutline.
func (w *Widget) SetSource(id string) Dirty {
	return w.SetOutline(w.loader.Load(id))
}

// SetSourceText parses raw outline text.
func (w *Widget) SetSourceText(text string) Dirty {
	return w.SetOutline(w.loader.FromText(text))
}

// SetPathFunc derives the outline from fn.
func (w *Widget) SetPathFunc(fn geom.PathFunc) Dirty {
	return w.SetOutline(w.loader.FromFunc(fn))
}

// SetOutline publishes a fully built outline. An invalid outline is
// replaced by the fallback circle.
func (w *Widget) SetOutline(o geom.Outline) Dirty {
	if !o.Valid() {
		o = geom.Fallback()
	}
	w.outline = o
	w.refit()
	return NeedsRedraw | NeedsRelayout
}

// Measure resolves the widget size from the host's constraints. An exact
// size on one axis with an at-most bound on the other derives the other
// from the outline's aspect ratio; two exact sizes are taken as given;
// anything else uses the outline's own size.
//
// The unconstrained size is the outline box floored to whole units, so an
// outline smaller than one unit measures 0x0 and its frame is empty. Hosts
// showing such outlines should pass an exact size.
func (w *Widget) Measure(ws, hs MeasureSpec) (float64, float64) {
	box := w.outline.BBox()
	bw, bh := box.Width(), box.Height()
	var width, height float64
	switch {
	case ws.Mode == Exactly && hs.Mode == AtMost:
		width, height = ws.Size, math.Floor(ws.Size*(bh/bw))
	case ws.Mode == AtMost && hs.Mode == Exactly:
		width, height = math.Floor(hs.Size*(bw/bh)), hs.Size
	case ws.Mode == Exactly && hs.Mode == Exactly:
		width, height = ws.Size, hs.Size
	default:
		width, height = math.Floor(bw), math.Floor(bh)
	}
	w.baseW, w.baseH = width, height
	w.relayout()
	return w.w, w.h
}

// relayout applies the bounce delta to the measured size.
func (w *Widget) relayout() bool {
	st := w.bounce.State()
	nw, nh := math.Floor(st.Apply(w.baseW)), math.Floor(st.Apply(w.baseH))
	if nw == w.w && nh == w.h {
		return false
	}
	w.w, w.h = nw, nh
	w.refit()
	return true
}

func (w *Widget) refit() {
	w.fit = geom.Fit(w.w, w.h, w.outline.BBox())
}

// OnFrame advances both animators by dt.
func (w *Widget) OnFrame(dt time.Duration) Dirty {
	w.shimmer.Advance(dt)
	d := NeedsRedraw
	if w.bounce.State().Phase == anim.BounceRunning {
		w.bounce.Advance(dt)
		if w.relayout() {
			d |= NeedsRelayout
		}
	}
	return d
}

// OnGesture feeds a press or release into the bounce animator. A press ends
// any bounce in flight and swells the widget; a release starts the bounce.
func (w *Widget) OnGesture(g Gesture) Dirty {
	switch g {
	case Press:
		w.bounce.Press()
	case Release:
		if !w.bounce.Release() {
			return 0
		}
	default:
		return 0
	}
	if w.relayout() {
		return NeedsRedraw | NeedsRelayout
	}
	return NeedsRedraw
}

// Frame renders the current state.
func (w *Widget) Frame(tm render.TextMeasurer) render.Frame {
	return render.RenderFrame(render.Input{
		Outline: w.outline,
		Fit:     w.fit,
		Width:   w.w,
		Height:  w.h,
		Shimmer: w.shimmer.State(),
		Paint:   w.style.Paint,
	}, tm)
}

// Draw renders the current state onto s.
func (w *Widget) Draw(s render.Surface, tm render.TextMeasurer) {
	render.Replay(w.Frame(tm), s)
}
