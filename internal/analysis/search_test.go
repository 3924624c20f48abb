package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hopalong/internal/hopalong"
)

func TestCandidate_Score(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		want float64
	}{
		{"bounded", Candidate{Lyapunov: 0.4}, 0.4},
		{"diverged", Candidate{Lyapunov: 0.4, Diverged: 3}, math.Inf(-1)},
		{"nan", Candidate{Lyapunov: math.NaN()}, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Score(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	c := Evaluate(hopalong.Params{A: 7.17, B: 8.44, C: 2.56}, 2000)
	if c.Diverged != 0 {
		t.Errorf("expected bounded orbit, got %d diverged", c.Diverged)
	}
	if c.Area <= 0 {
		t.Errorf("expected positive area, got %v", c.Area)
	}
}

func TestEnsemble_Deterministic(t *testing.T) {
	first, err := Ensemble(context.Background(), 8, 42, -10, 10, 500)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Ensemble(context.Background(), 8, 42, -10, 10, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 8 {
		t.Fatalf("expected 8 candidates, got %d", len(first))
	}
	for i := range first {
		if first[i].Params != second[i].Params {
			t.Errorf("candidate %d differs between runs: %v vs %v", i, first[i].Params, second[i].Params)
		}
		if i > 0 && first[i].Score() > first[i-1].Score() {
			t.Errorf("candidates not sorted at %d", i)
		}
	}
}

func TestEnsemble_Errors(t *testing.T) {
	if _, err := Ensemble(context.Background(), -1, 0, -1, 1, 10); !errors.Is(err, hopalong.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
	if _, err := Ensemble(context.Background(), 2, 0, 1, -1, 10); !errors.Is(err, hopalong.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for inverted bounds, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Ensemble(ctx, 4, 0, -1, 1, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch(-2, 2, 3)
	best, err := g.Search(context.Background(), 300)
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range []float64{-2, 0, 2} {
		for _, c := range []float64{-2, 0, 2} {
			other := Evaluate(hopalong.Params{A: a, B: 2, C: c}, 300)
			if other.Score() > best.Score() {
				t.Errorf("grid point %v beats reported best %v", other.Params, best.Params)
			}
		}
	}
}

func TestGridSearch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGridSearch(-1, 1, 2).Search(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPowerSpectrum_Period(t *testing.T) {
	// period-4 cycle, as produced by the rotation a = b = c = 0
	orbit, _ := hopalong.Generate(hopalong.Point{X: 1, Y: 0}, hopalong.Params{}, 64)
	ps := PowerSpectrum(orbit.Xs())
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}
	if got := DominantPeriod(ps, 64); math.Abs(got-4) > 1e-9 {
		t.Errorf("expected period 4, got %v", got)
	}
}

func TestPowerSpectrum_Constant(t *testing.T) {
	ps := PowerSpectrum([]float64{3, 3, 3, 3, 3})
	if got := DominantPeriod(ps, 5); got != 0 {
		t.Errorf("expected no period for a constant series, got %v", got)
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil spectrum for a single sample")
	}
}

func TestGridSearch_AllDiverged(t *testing.T) {
	g := NewGridSearch(math.NaN(), math.NaN(), 2)
	best, err := g.Search(context.Background(), 50)
	if !errors.Is(err, ErrNoCandidate) {
		t.Fatalf("expected ErrNoCandidate, got %v (best %+v)", err, best)
	}
	if best != (Candidate{}) {
		t.Errorf("expected zero candidate, got %+v", best)
	}
}
