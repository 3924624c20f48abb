package hopalong

import (
	"fmt"
	"math"
)

// Point is one position of the trajectory.
type Point struct {
	X, Y float64
}

// Origin is the seed used at start-up and after every reset.
var Origin = Point{}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// Params holds the three scalars defining one instance of the map.
type Params struct {
	A, B, C float64
}

func (p Params) String() string {
	return fmt.Sprintf("a=%.4f b=%.4f c=%.4f", p.A, p.B, p.C)
}

// Batch is a run of consecutive points in iteration order. Index 0 is the
// first point produced after the seed.
type Batch []Point

// Last returns the final point of the batch, or false when it is empty.
func (b Batch) Last() (Point, bool) {
	if len(b) == 0 {
		return Point{}, false
	}
	return b[len(b)-1], true
}

func (b Batch) Clone() Batch {
	c := make(Batch, len(b))
	copy(c, b)
	return c
}

// Xs returns the x coordinates in order.
func (b Batch) Xs() []float64 {
	xs := make([]float64, len(b))
	for i, p := range b {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y coordinates in order.
func (b Batch) Ys() []float64 {
	ys := make([]float64, len(b))
	for i, p := range b {
		ys[i] = p.Y
	}
	return ys
}
