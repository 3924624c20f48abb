// Package sim runs the hopalong frame loop.
//
// Each frame generates a batch of points seeded from the last point of the
// previous batch, draws it together with the retained history at decaying
// opacity, trims the history and, every Reset frames, draws fresh
// parameters and restarts the trajectory from the origin.
//
//   - [State]: explicit run state (seed, parameters, frame, history)
//   - [Advance]: pure frame transition without rendering
//   - [Loop]: drives frames against a [Renderer] at a fixed interval
//
// # Example
//
//	loop, _ := sim.New(sim.DefaultConfig(), prm, renderer, nil)
//	err := loop.Run(ctx)
//
// # Thread Safety
//
// A Loop is NOT thread-safe. It is driven by a single goroutine, either
// through [Loop.Run] or by calling [Loop.Frame] from a UI tick.
package sim
