package viz

import (
	"github.com/san-kum/hopalong/internal/hopalong"
)

// CanvasRenderer draws batches onto a Canvas. Points are colored by their
// index within the batch. The viewport is fitted to the first non-empty
// batch drawn and again after every Refit.
type CanvasRenderer struct {
	canvas  *Canvas
	view    Viewport
	fitted  bool
	present func(*Canvas)
	plotted int
}

func NewCanvasRenderer(w, h int) *CanvasRenderer {
	return &CanvasRenderer{canvas: NewCanvas(w, h)}
}

// OnPresent registers fn to receive the finished canvas right before it
// is cleared.
func (r *CanvasRenderer) OnPresent(fn func(*Canvas)) { r.present = fn }

func (r *CanvasRenderer) Canvas() *Canvas    { return r.canvas }
func (r *CanvasRenderer) Viewport() Viewport { return r.view }
func (r *CanvasRenderer) Refit()             { r.fitted = false }

// Plotted is the number of points that landed on the canvas since the last
// Clear.
func (r *CanvasRenderer) Plotted() int { return r.plotted }

// Resize replaces the canvas with a blank one of w x h cells.
func (r *CanvasRenderer) Resize(w, h int) {
	r.canvas = NewCanvas(w, h)
}

func (r *CanvasRenderer) Draw(points hopalong.Batch, opacity float64) error {
	if len(points) == 0 {
		return nil
	}
	if !r.fitted {
		r.view = FitViewport(points)
		r.fitted = true
	}

	w, h := r.canvas.SubWidth(), r.canvas.SubHeight()
	last := float64(len(points) - 1)
	if last == 0 {
		last = 1
	}
	for i, p := range points {
		x, y, ok := r.view.Map(p, w, h)
		if !ok {
			continue
		}
		r.canvas.Plot(x, y, float64(i)/last, opacity)
		r.plotted++
	}
	return nil
}

func (r *CanvasRenderer) Clear() error {
	if r.present != nil {
		r.present(r.canvas)
	}
	r.canvas.Clear()
	r.plotted = 0
	return nil
}
