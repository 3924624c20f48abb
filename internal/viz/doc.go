// Package viz renders hopalong frames in the terminal.
//
// The package implements the renderer side of the frame loop:
//
//   - [Canvas]: Braille-based pixel canvas with per-cell tone and opacity
//   - [CanvasRenderer]: a sim.Renderer drawing batches onto a Canvas
//   - [Model]: Bubble Tea program running one frame per tick
//   - [Recorder]: GIF capture of presented frames
//   - Theme selection with 4 built-in colormaps
//
// # Key Bindings
//
//	Q, Esc, Ctrl+C - Quit
//
// # Colors
//
// Points are colored by their index within a batch, from the first to the
// last stop of the theme colormap, and faded toward the background by the
// opacity they were drawn with.
package viz
