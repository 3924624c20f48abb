package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/hopalong/internal/hopalong"
)

func batchOf(x float64) hopalong.Batch {
	return hopalong.Batch{{X: x, Y: x}}
}

func TestHistory_Push(t *testing.T) {
	var h History
	for i := 0; i < 7; i++ {
		h = h.Push(batchOf(float64(i)), 3)
		want := i + 1
		if want > 3 {
			want = 3
		}
		if len(h) != want {
			t.Fatalf("push %d: expected len %d, got %d", i, want, len(h))
		}
	}

	for i, b := range h {
		if b[0].X != float64(4+i) {
			t.Errorf("entry %d: expected batch %d, got %v", i, 4+i, b[0].X)
		}
	}
}

func TestHistory_PushDoesNotMutate(t *testing.T) {
	h := History{batchOf(1), batchOf(2)}
	next := h.Push(batchOf(3), 2)

	if h[0][0].X != 1 || h[1][0].X != 2 {
		t.Errorf("receiver mutated: %v", h)
	}
	if next[0][0].X != 2 || next[1][0].X != 3 {
		t.Errorf("unexpected history: %v", next)
	}
}

func TestHistory_PushDisabled(t *testing.T) {
	h := History{batchOf(1)}.Push(batchOf(2), 0)
	if len(h) != 0 {
		t.Errorf("expected empty history, got %d entries", len(h))
	}
}

func TestConfig_Opacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hist = 4
	cfg.AlphaInit = 0.4

	tests := []struct {
		rank     int
		expected float64
	}{
		{0, 0.1},
		{1, 0.2},
		{3, 0.4},
	}

	for _, tt := range tests {
		got := cfg.Opacity(tt.rank)
		if diff := got - tt.expected; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("Opacity(%d) = %v, want %v", tt.rank, got, tt.expected)
		}
	}
}

func TestConfig_Interval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Interval(); got != 40*time.Millisecond {
		t.Errorf("expected 40ms at 25 fps, got %v", got)
	}
}

func TestConfig_ResetDue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reset = 3
	for frame, want := range map[int]bool{1: false, 2: false, 3: true, 6: true, 7: false} {
		if got := cfg.ResetDue(frame); got != want {
			t.Errorf("ResetDue(%d) = %v, want %v", frame, got, want)
		}
	}

	cfg.Reset = 0
	if cfg.ResetDue(10) {
		t.Error("expected no reset when disabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative iters", func(c *Config) { c.Iters = -1 }},
		{"negative hist", func(c *Config) { c.Hist = -1 }},
		{"negative reset", func(c *Config) { c.Reset = -2 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"fps below duration range", func(c *Config) { c.FPS = 1e-10 }},
		{"infinite fps", func(c *Config) { c.FPS = math.Inf(1) }},
		{"zero alpha", func(c *Config) { c.AlphaInit = 0 }},
		{"alpha above one", func(c *Config) { c.AlphaInit = 1.5 }},
		{"inverted range", func(c *Config) { c.MinVal, c.MaxVal = 5, -5 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, hopalong.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestAdvance_SeedContinuity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iters = 50
	cfg.Reset = 0
	prm := hopalong.Params{A: 1.5, B: -2, C: 3}

	st := NewState(prm)
	for i := 0; i < 5; i++ {
		seed := st.Seed
		next, batch, err := Advance(st, cfg, hopalong.NewSeededRandomizer(1))
		if err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		want, _ := hopalong.Generate(seed, prm, cfg.Iters)
		if batch[0] != want[0] {
			t.Errorf("frame %d: batch not seeded from previous last point", i)
		}
		last, _ := batch.Last()
		if next.Seed != last {
			t.Errorf("frame %d: expected seed %v, got %v", i, last, next.Seed)
		}
		st = next
	}
}

func TestAdvance_ZeroIters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iters = 0
	st := NewState(hopalong.Params{A: 1, B: 1, C: 1})
	st.Seed = hopalong.Point{X: 2, Y: 3}

	next, batch, err := Advance(st, cfg, nil)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("expected empty batch, got %d points", len(batch))
	}
	if next.Seed != st.Seed {
		t.Errorf("expected seed unchanged, got %v", next.Seed)
	}
}

func TestConfig_IntervalNeverNegative(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{1, time.Second},
		{1000, time.Millisecond},
		{1e-12, time.Duration(math.MaxInt64)},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.FPS = tt.fps
		if got := cfg.Interval(); got != tt.want {
			t.Errorf("Interval at %g fps = %v, want %v", tt.fps, got, tt.want)
		}
	}

	cfg := DefaultConfig()
	cfg.FPS = MinFPS
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected MinFPS to be accepted, got %v", err)
	}
	if got := cfg.Interval(); got <= 0 {
		t.Errorf("expected a positive interval at MinFPS, got %v", got)
	}
}

func TestAdvance_NilRandomizerOnReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iters = 10
	cfg.Reset = 1
	cfg.MinVal, cfg.MaxVal = 3, 3

	next, _, err := Advance(NewState(hopalong.Params{A: 1, B: 2, C: 3}), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if next.Params != (hopalong.Params{A: 3, B: 3, C: 3}) {
		t.Errorf("expected redrawn params, got %v", next.Params)
	}
	if next.Seed != hopalong.Origin {
		t.Errorf("expected seed back at origin, got %v", next.Seed)
	}
}

func TestAdvance_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iters = -5
	if _, _, err := Advance(NewState(hopalong.Params{}), cfg, nil); !errors.Is(err, hopalong.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFrameError(t *testing.T) {
	cause := errors.New("window closed")
	err := error(&FrameError{Frame: 3, Op: "draw", Wrapped: cause})

	if !errors.Is(err, ErrRenderer) {
		t.Error("expected FrameError to match ErrRenderer")
	}
	if !errors.Is(err, cause) {
		t.Error("expected FrameError to match its cause")
	}
	if err.Error() != "frame 3: draw: window closed" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
