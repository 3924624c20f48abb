package analysis

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/san-kum/hopalong/internal/hopalong"
	"gonum.org/v1/gonum/floats"
)

// ErrNoCandidate is returned by GridSearch.Search when every grid point
// diverged.
var ErrNoCandidate = errors.New("analysis: no bounded candidate")

// Candidate is a parameter set with the diagnostics used to rank it.
type Candidate struct {
	Params   hopalong.Params
	Lyapunov float64
	Area     float64 // area of the 1%-99% box
	Diverged int
}

// Score ranks candidates. Diverging orbits score -Inf, the rest by their
// Lyapunov exponent.
func (c Candidate) Score() float64 {
	if c.Diverged > 0 || math.IsNaN(c.Lyapunov) {
		return math.Inf(-1)
	}
	return c.Lyapunov
}

// Evaluate runs iters steps from the origin and scores the orbit.
func Evaluate(prm hopalong.Params, iters int) Candidate {
	c := Candidate{Params: prm, Lyapunov: LyapunovExponent(prm, hopalong.Origin, iters, 1e-9)}
	orbit, err := hopalong.Generate(hopalong.Origin, prm, iters)
	if err != nil {
		return c
	}
	b := ComputeBounds(orbit, 0.01)
	c.Diverged = b.Total - b.Finite
	if !b.Empty() {
		c.Area = (b.HiX - b.LoX) * (b.HiY - b.LoY)
	}
	return c
}

// SortCandidates orders cs best first.
func SortCandidates(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Score() > cs[j].Score() })
}

// Ensemble evaluates n random parameter sets in [min, max] concurrently.
// Draw i uses seed seedStart+i, so results do not depend on scheduling.
func Ensemble(ctx context.Context, n int, seedStart uint64, min, max float64, iters int) ([]Candidate, error) {
	if n < 0 {
		return nil, hopalong.ErrInvalidArgument
	}
	results := make([]Candidate, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			rnd := hopalong.NewSeededRandomizer(seedStart + uint64(idx))
			prm, err := rnd.Params(min, max)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = Evaluate(prm, iters)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	SortCandidates(results)
	return results, nil
}

// GridSearch walks every combination of the a, b and c grids.
type GridSearch struct {
	grids [3][]float64
}

// NewGridSearch spans each parameter evenly over [min, max] with steps
// values.
func NewGridSearch(min, max float64, steps int) *GridSearch {
	if steps < 2 {
		steps = 2
	}
	var g GridSearch
	for i := range g.grids {
		g.grids[i] = floats.Span(make([]float64, steps), min, max)
	}
	return &g
}

// Search returns the best scoring candidate. It stops early, returning the
// best so far and ctx.Err(), when ctx is done, and returns ErrNoCandidate
// when no grid point stayed bounded.
func (g *GridSearch) Search(ctx context.Context, iters int) (Candidate, error) {
	best := Candidate{Lyapunov: math.NaN()}
	if err := g.searchRecursive(ctx, 0, [3]float64{}, iters, &best); err != nil {
		return best, err
	}
	if math.IsInf(best.Score(), -1) {
		return Candidate{}, ErrNoCandidate
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current [3]float64, iters int, best *Candidate) error {
	if depth == len(g.grids) {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := Evaluate(hopalong.Params{A: current[0], B: current[1], C: current[2]}, iters)
		if c.Score() > best.Score() {
			*best = c
		}
		return nil
	}

	for _, val := range g.grids[depth] {
		current[depth] = val
		if err := g.searchRecursive(ctx, depth+1, current, iters, best); err != nil {
			return err
		}
	}
	return nil
}
