package analysis

import (
	"math"

	"github.com/san-kum/hopalong/internal/hopalong"
	"gonum.org/v1/gonum/stat"
)

// BifurcationPoint summarizes the orbit for one parameter value.
type BifurcationPoint struct {
	Param    float64
	Spread   float64 // standard deviation of the orbit radius
	Mean     float64 // mean orbit radius
	Lyapunov float64
}

// BifurcationDiagram sweeps one of "a", "b" or "c" over [paramMin, paramMax]
// keeping the others from base. Each orbit starts at the origin, discards
// transient iterations and then records iters more.
func BifurcationDiagram(
	base hopalong.Params,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	transient, iters int,
) []BifurcationPoint {
	if paramSteps <= 1 {
		paramSteps = 2 // Prevent division by zero
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)

	results := make([]BifurcationPoint, 0, paramSteps)
	radii := make([]float64, 0, iters)
	buf := make(hopalong.Batch, 0, iters)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		prm := base
		switch paramName {
		case "a":
			prm.A = param
		case "b":
			prm.B = param
		case "c":
			prm.C = param
		default:
			return nil
		}

		p := hopalong.Origin
		for j := 0; j < transient; j++ {
			p = hopalong.Step(p, prm)
		}

		var err error
		buf, err = hopalong.GenerateInto(buf, p, prm, iters)
		if err != nil {
			return nil
		}

		radii = radii[:0]
		for _, q := range buf {
			if q.IsFinite() {
				radii = append(radii, math.Hypot(q.X, q.Y))
			}
		}

		bp := BifurcationPoint{Param: param}
		if len(radii) > 1 {
			bp.Mean, bp.Spread = stat.MeanStdDev(radii, nil)
		}
		bp.Lyapunov = LyapunovExponent(prm, p, iters, 1e-9)
		results = append(results, bp)
	}

	return results
}
