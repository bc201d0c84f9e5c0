package anim

import "time"

// Press feedback defaults.
const (
	BounceDuration = 500 * time.Millisecond
	BounceMaxScale = 0.03
	BounceRounds   = 5
)

// BouncePhase is the lifecycle of a press animation.
type BouncePhase int

const (
	// BounceIdle: no press pending, no oscillation.
	BounceIdle BouncePhase = iota
	// BounceArmed: pressed and swollen by MaxScale, waiting for release.
	BounceArmed
	// BounceRunning: the damped oscillation is playing.
	BounceRunning
)

func (p BouncePhase) String() string {
	switch p {
	case BounceIdle:
		return "idle"
	case BounceArmed:
		return "armed"
	case BounceRunning:
		return "running"
	}
	return "unknown"
}

// BounceState is the bounce as seen by layout.
type BounceState struct {
	Phase    BouncePhase
	Progress float64 // in [0, 1] while running
	Delta    float64 // relative size change
}

// Active reports whether the oscillation is playing.
func (s BounceState) Active() bool { return s.Phase == BounceRunning }

// Apply scales size by the state's delta: size + delta*size.
func (s BounceState) Apply(size float64) float64 {
	return size + s.Delta*size
}

// Bounce is a one-shot damped oscillation triggered by press and release.
// At most one run exists at a time: a new press ends the current one.
type Bounce struct {
	Duration time.Duration
	MaxScale float64
	Rounds   float64

	phase   BouncePhase
	elapsed time.Duration
}

// NewBounce returns an idle Bounce with the default constants.
func NewBounce() *Bounce {
	return &Bounce{
		Duration: BounceDuration,
		MaxScale: BounceMaxScale,
		Rounds:   BounceRounds,
	}
}

// Press ends any run in flight, swells by MaxScale and arms the animation.
func (b *Bounce) Press() {
	b.Cancel()
	b.phase = BounceArmed
}

// Release starts the armed animation, or restarts a running one from the
// beginning. It reports whether an animation is now running.
func (b *Bounce) Release() bool {
	switch b.phase {
	case BounceArmed, BounceRunning:
		b.phase = BounceRunning
		b.elapsed = 0
		return true
	}
	return false
}

// Cancel ends the animation immediately at its resting size.
func (b *Bounce) Cancel() {
	b.phase = BounceIdle
	b.elapsed = 0
}

// Advance moves a running animation forward by dt. When the run completes
// the bounce returns to idle with zero delta.
func (b *Bounce) Advance(dt time.Duration) BounceState {
	if b.phase == BounceRunning && dt > 0 {
		b.elapsed += dt
		if b.elapsed >= b.duration() {
			b.Cancel()
		}
	}
	return b.State()
}

// State returns the current state without advancing.
func (b *Bounce) State() BounceState {
	switch b.phase {
	case BounceArmed:
		return BounceState{Phase: BounceArmed, Delta: b.MaxScale}
	case BounceRunning:
		t := float64(b.elapsed) / float64(b.duration())
		return BounceState{
			Phase:    BounceRunning,
			Progress: t,
			Delta:    DampedCosine(t, b.MaxScale, b.Rounds),
		}
	}
	return BounceState{Phase: BounceIdle}
}

func (b *Bounce) duration() time.Duration {
	if b.Duration <= 0 {
		return BounceDuration
	}
	return b.Duration
}
