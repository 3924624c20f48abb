package analysis

import (
	"math"

	"github.com/san-kum/hopalong/internal/hopalong"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the map for
// prm using the trajectory separation method.
//
// Algorithm:
// 1. Iterate the orbit and a copy displaced by perturbation along x
// 2. After each step record ln(d/d0) and pull the copy back to distance d0
// 3. λ ≈ mean of the recorded logarithms
//
// Steps where either orbit is no longer finite end the estimate.
func LyapunovExponent(prm hopalong.Params, x0 hopalong.Point, iters int, perturbation float64) float64 {
	if iters <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0
	xp := hopalong.Point{X: x0.X + perturbation, Y: x0.Y}
	d0 := perturbation

	sumLog := 0.0
	count := 0

	for i := 0; i < iters; i++ {
		x = hopalong.Step(x, prm)
		xp = hopalong.Step(xp, prm)
		if !x.IsFinite() || !xp.IsFinite() {
			break
		}

		dx, dy := xp.X-x.X, xp.Y-x.Y
		sep := math.Hypot(dx, dy)
		if sep == 0 {
			// The orbits merged; restart the copy along x.
			xp = hopalong.Point{X: x.X + d0, Y: x.Y}
			continue
		}

		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		xp = hopalong.Point{X: x.X + dx*scale, Y: x.Y + dy*scale}
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}
