package anim

import "math"

// Curves map a progress value t in [0, 1] to an animated value.

// Linear returns t clamped to [0, 1].
func Linear(t float64) float64 {
	return clamp01(t)
}

// DampedCosine oscillates around zero with a linearly decaying amplitude:
// amplitude*(1-t)*cos(rounds*pi*t). It starts at amplitude, ends at zero and
// changes sign rounds times in between.
func DampedCosine(t, amplitude, rounds float64) float64 {
	t = clamp01(t)
	decay := amplitude * (1 - t)
	return decay * math.Cos(rounds*math.Pi*t)
}

// CosinePulse moves smoothly between hi (at t=0 and t=1) and lo (at t=0.5):
// (hi+lo)/2 + cos(2*pi*t)*(hi-lo)/2.
func CosinePulse(t, lo, hi float64) float64 {
	return (hi+lo)/2 + math.Cos(2*math.Pi*t)*(hi-lo)/2
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
