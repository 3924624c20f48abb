package analysis

import (
	"sort"

	"github.com/san-kum/hopalong/internal/hopalong"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bounds describes the extent of a batch. Lo/Hi fields are the q and 1-q
// quantiles, which ignore the few far-flung points of a diverging orbit.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
	LoX, HiX, LoY, HiY     float64
	Finite, Total          int
}

// Empty reports whether no finite point was seen.
func (b Bounds) Empty() bool { return b.Finite == 0 }

// ComputeBounds skips NaN and Inf points. q is clamped to [0, 0.5].
func ComputeBounds(batch hopalong.Batch, q float64) Bounds {
	b := Bounds{Total: len(batch)}

	xs := make([]float64, 0, len(batch))
	ys := make([]float64, 0, len(batch))
	for _, p := range batch {
		if p.IsFinite() {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	b.Finite = len(xs)
	if b.Finite == 0 {
		return b
	}

	if q < 0 {
		q = 0
	} else if q > 0.5 {
		q = 0.5
	}

	b.MinX, b.MaxX = floats.Min(xs), floats.Max(xs)
	b.MinY, b.MaxY = floats.Min(ys), floats.Max(ys)

	sort.Float64s(xs)
	sort.Float64s(ys)
	if q == 0 {
		b.LoX, b.HiX, b.LoY, b.HiY = b.MinX, b.MaxX, b.MinY, b.MaxY
		return b
	}
	b.LoX = stat.Quantile(q, stat.Empirical, xs, nil)
	b.HiX = stat.Quantile(1-q, stat.Empirical, xs, nil)
	b.LoY = stat.Quantile(q, stat.Empirical, ys, nil)
	b.HiY = stat.Quantile(1-q, stat.Empirical, ys, nil)
	return b
}

// Divergence counts the non-finite points of a batch.
func Divergence(batch hopalong.Batch) int {
	n := 0
	for _, p := range batch {
		if !p.IsFinite() {
			n++
		}
	}
	return n
}
