package hopalong

import (
	"fmt"
	"math"
)

// sign returns -1 for negative x and +1 otherwise, so both zeros map to +1.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Step applies one iteration of the map to p.
func Step(p Point, prm Params) Point {
	f := -sign(p.X) * math.Sqrt(math.Abs(prm.B*p.X-prm.C))
	return Point{X: p.Y + f, Y: prm.A - p.X}
}

// Generate iterates the map n times from seed and returns the n produced
// points. The seed itself is not part of the batch.
func Generate(seed Point, prm Params, n int) (Batch, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: iteration count must be non-negative, got %d", ErrInvalidArgument, n)
	}
	return GenerateInto(make(Batch, 0, n), seed, prm, n)
}

// GenerateInto is Generate appending into dst[:0], reusing its storage when
// the capacity allows.
func GenerateInto(dst Batch, seed Point, prm Params, n int) (Batch, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: iteration count must be non-negative, got %d", ErrInvalidArgument, n)
	}
	dst = dst[:0]
	if dst == nil {
		dst = make(Batch, 0, n)
	}
	p := seed
	for i := 0; i < n; i++ {
		p = Step(p, prm)
		dst = append(dst, p)
	}
	return dst, nil
}
