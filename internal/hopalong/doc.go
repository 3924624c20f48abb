// Package hopalong provides the recurrence engine for hopalong attractors.
//
// One iteration of the map takes a point (x, y) and parameters (a, b, c) to
//
//	x' = y - sign(x) * sqrt(|b*x - c|)
//	y' = a - x
//
// with sign(0) = +1. The map is chaotic and sensitive to rounding, so the
// engine reproduces the stepwise recurrence exactly and never clamps or
// validates intermediate values: NaN and Inf propagate.
//
//   - [Step]: one iteration
//   - [Generate]: a [Batch] of n consecutive iterations from a seed
//   - [Randomizer]: uniform parameter draws in [min, max]
//
// # Example
//
//	prm, _ := hopalong.RandomParams(hopalong.DefaultMin, hopalong.DefaultMax)
//	batch, _ := hopalong.Generate(hopalong.Origin, prm, 1000)
//	seed, _ := batch.Last()
package hopalong
