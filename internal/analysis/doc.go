// Package analysis provides diagnostics for hopalong trajectories.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [ComputeBounds]: extent and robust quantile bounds of a batch
//   - [BifurcationDiagram]: sweep of one parameter against orbit spread
//   - [Ensemble], [GridSearch]: search for bounded chaotic parameter sets
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(prm, hopalong.Origin, 10000, 1e-9)
//	if lambda > 0 {
//	    // orbit is chaotic
//	}
package analysis
