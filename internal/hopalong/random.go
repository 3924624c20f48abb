package hopalong

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultMin = -10.0
	DefaultMax = 10.0
)

// Randomizer draws parameter sets from a uniform distribution.
type Randomizer struct {
	src rand.Source
}

// NewRandomizer returns a Randomizer backed by src. A nil src uses the
// process-wide math/rand/v2 source, which is seeded by the runtime.
func NewRandomizer(src rand.Source) *Randomizer {
	return &Randomizer{src: src}
}

// NewSeededRandomizer returns a reproducible Randomizer.
func NewSeededRandomizer(seed uint64) *Randomizer {
	return NewRandomizer(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Params draws a, b and c independently from [min, max].
func (r *Randomizer) Params(min, max float64) (Params, error) {
	if !(min <= max) {
		return Params{}, fmt.Errorf("%w: min %v must not exceed max %v", ErrInvalidArgument, min, max)
	}
	u := distuv.Uniform{Min: min, Max: max, Src: r.src}
	return Params{A: u.Rand(), B: u.Rand(), C: u.Rand()}, nil
}

var defaultRandomizer = NewRandomizer(nil)

// RandomParams draws a parameter set from the process-wide source.
func RandomParams(min, max float64) (Params, error) {
	return defaultRandomizer.Params(min, max)
}
