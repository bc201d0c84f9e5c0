package anim

import (
	"math"
	"testing"
	"time"
)

func TestShimmerAdvance(t *testing.T) {
	s := NewShimmer(ModeLine, 3*time.Second)
	steps := []struct {
		dt     time.Duration
		want   float64
		cycles int
	}{
		{dt: 0, want: 0},
		{dt: time.Second, want: 1.0 / 3},
		{dt: time.Second, want: 2.0 / 3},
		{dt: time.Second, want: 0, cycles: 1},
		{dt: -time.Second, want: 0, cycles: 1},
		{dt: 7 * time.Second, want: 1.0 / 3, cycles: 3},
	}
	for i, st := range steps {
		got := s.Advance(st.dt)
		if math.Abs(got.Progress-st.want) > 1e-9 {
			t.Errorf("step %d: Progress = %v, want %v", i, got.Progress, st.want)
		}
		if s.Cycles() != st.cycles {
			t.Errorf("step %d: Cycles() = %d, want %d", i, s.Cycles(), st.cycles)
		}
		if got.Mode != ModeLine || !got.Running {
			t.Errorf("step %d: state = %+v", i, got)
		}
	}
}

func TestShimmerMonotoneWithinCycle(t *testing.T) {
	s := NewShimmer(ModeAlpha, time.Second)
	prev := s.State().Progress
	resets := 0
	for i := 0; i < 200; i++ {
		p := s.Advance(16 * time.Millisecond).Progress
		if p < 0 || p >= 1 {
			t.Fatalf("tick %d: progress %v out of [0,1)", i, p)
		}
		if p < prev {
			resets++
			if p > 0.016+1e-9 {
				t.Errorf("tick %d: reset landed at %v, want near 0", i, p)
			}
		}
		prev = p
	}
	// 200 ticks of 16ms span 3.2 cycles
	if resets != 3 || s.Cycles() != 3 {
		t.Errorf("resets = %d, Cycles() = %d, want 3", resets, s.Cycles())
	}
}

func TestShimmerLinearRamp(t *testing.T) {
	s := NewShimmer(ModeLine, 3*time.Second)
	var sum float64
	const n = 3000
	for i := 0; i < n; i++ {
		sum += s.Advance(time.Millisecond).Progress
	}
	if mean := sum / n; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("mean progress over one cycle = %v, want ~0.5", mean)
	}
}

func TestNewShimmerDefaultDuration(t *testing.T) {
	if d := NewShimmer(ModeLine, 0).Duration(); d != DefaultShimmerDuration {
		t.Errorf("Duration() = %v, want %v", d, DefaultShimmerDuration)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"line", ModeLine, false},
		{"ALPHA", ModeAlpha, false},
		{" alpha ", ModeAlpha, false},
		{"", ModeLine, false},
		{"pulse", ModeLine, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDampedCosine(t *testing.T) {
	if got := DampedCosine(0, BounceMaxScale, BounceRounds); got != BounceMaxScale {
		t.Errorf("DampedCosine(0) = %v, want %v", got, BounceMaxScale)
	}
	if got := DampedCosine(1, BounceMaxScale, BounceRounds); math.Abs(got) > 1e-12 {
		t.Errorf("DampedCosine(1) = %v, want 0", got)
	}

	changes := 0
	prevSign := 1.0
	for k := 1; k < 1000; k++ {
		v := DampedCosine(float64(k)/1000, BounceMaxScale, BounceRounds)
		if math.Abs(v) < 1e-12 {
			continue
		}
		sign := math.Copysign(1, v)
		if sign != prevSign {
			changes++
			prevSign = sign
		}
	}
	if changes != BounceRounds {
		t.Errorf("sign changes = %d, want %d", changes, BounceRounds)
	}
}

func TestCosinePulse(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 1},
		{0.25, 0.65},
		{0.5, 0.3},
		{1, 1},
	}
	for _, tt := range tests {
		if got := CosinePulse(tt.t, 0.3, 1); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CosinePulse(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestBounceLifecycle(t *testing.T) {
	b := NewBounce()
	if st := b.State(); st.Phase != BounceIdle || st.Delta != 0 {
		t.Fatalf("initial state = %+v", st)
	}
	if b.Release() {
		t.Error("Release() without press should not start")
	}

	b.Press()
	st := b.Advance(100 * time.Millisecond)
	if st.Phase != BounceArmed || st.Delta != BounceMaxScale {
		t.Fatalf("armed state = %+v", st)
	}
	if got := st.Apply(100); math.Abs(got-103) > 1e-9 {
		t.Errorf("Apply(100) = %v, want 103", got)
	}

	if !b.Release() {
		t.Fatal("Release() after press should start")
	}
	st = b.State()
	if !st.Active() || st.Progress != 0 || st.Delta != BounceMaxScale {
		t.Fatalf("started state = %+v", st)
	}

	st = b.Advance(250 * time.Millisecond)
	if !st.Active() || st.Progress != 0.5 {
		t.Fatalf("mid state = %+v", st)
	}
	want := DampedCosine(0.5, BounceMaxScale, BounceRounds)
	if st.Delta != want {
		t.Errorf("mid Delta = %v, want %v", st.Delta, want)
	}

	st = b.Advance(250 * time.Millisecond)
	if st.Phase != BounceIdle || st.Delta != 0 {
		t.Errorf("completed state = %+v", st)
	}
}

func TestBounceRepressEndsRun(t *testing.T) {
	b := NewBounce()
	b.Press()
	b.Release()
	b.Advance(300 * time.Millisecond)

	b.Press()
	if st := b.State(); st.Phase != BounceArmed {
		t.Fatalf("re-press state = %+v, want armed", st)
	}
	b.Release()
	if st := b.Advance(100 * time.Millisecond); st.Progress != 0.2 {
		t.Errorf("restarted Progress = %v, want 0.2", st.Progress)
	}
}

func TestBounceReleaseMidFlightRestarts(t *testing.T) {
	b := NewBounce()
	b.Press()
	b.Release()
	b.Advance(400 * time.Millisecond)
	if !b.Release() {
		t.Fatal("Release() mid-flight should restart")
	}
	if st := b.State(); st.Progress != 0 || !st.Active() {
		t.Errorf("state after restart = %+v", st)
	}
}

func TestBounceCancel(t *testing.T) {
	b := NewBounce()
	b.Press()
	b.Release()
	b.Advance(100 * time.Millisecond)
	b.Cancel()
	if st := b.Advance(100 * time.Millisecond); st.Phase != BounceIdle || st.Delta != 0 {
		t.Errorf("state after Cancel = %+v", st)
	}
}
