// Package anim holds the clock-driven animation state machines. Animators
// own no timers: the host advances them with the elapsed time of each frame,
// and cancelling one is replacing or dropping it.
package anim

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how shimmer progress is presented.
type Mode int

const (
	// ModeLine sweeps a diagonal highlight band across the outline.
	ModeLine Mode = iota
	// ModeAlpha pulses the opacity of the whole widget.
	ModeAlpha
)

func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeAlpha:
		return "alpha"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "line" or "alpha", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "":
		return ModeLine, nil
	case "alpha":
		return ModeAlpha, nil
	}
	return ModeLine, fmt.Errorf("unknown shimmer mode %q", s)
}

// DefaultShimmerDuration is the length of one shimmer cycle.
const DefaultShimmerDuration = 3 * time.Second

// ShimmerState is the shimmer as seen by the renderer.
type ShimmerState struct {
	Progress float64 // in [0, 1)
	Mode     Mode
	Running  bool
}

// Shimmer repeats a linear 0..1 ramp forever, restarting at 0 after each
// cycle. A Shimmer is configured once; changing the mode or duration means
// building a new one.
type Shimmer struct {
	mode     Mode
	duration time.Duration
	elapsed  time.Duration
	cycles   int
}

// NewShimmer returns a running shimmer at progress 0. A non-positive
// duration is replaced by DefaultShimmerDuration.
func NewShimmer(mode Mode, duration time.Duration) *Shimmer {
	if duration <= 0 {
		duration = DefaultShimmerDuration
	}
	return &Shimmer{mode: mode, duration: duration}
}

func (s *Shimmer) Mode() Mode              { return s.mode }
func (s *Shimmer) Duration() time.Duration { return s.duration }

// Cycles reports how many full cycles have completed.
func (s *Shimmer) Cycles() int { return s.cycles }

// Advance moves the clock forward by dt and returns the new state.
// Negative dt is ignored.
func (s *Shimmer) Advance(dt time.Duration) ShimmerState {
	if dt > 0 {
		total := s.elapsed + dt
		s.cycles += int(total / s.duration)
		s.elapsed = total % s.duration
	}
	return s.State()
}

// State returns the current state without advancing.
func (s *Shimmer) State() ShimmerState {
	return ShimmerState{
		Progress: float64(s.elapsed) / float64(s.duration),
		Mode:     s.mode,
		Running:  true,
	}
}
