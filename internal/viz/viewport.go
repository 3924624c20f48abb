package viz

import (
	"math"

	"github.com/san-kum/hopalong/internal/analysis"
	"github.com/san-kum/hopalong/internal/hopalong"
)

// quantile trims this fraction of points from each side when fitting.
const quantile = 0.01

// Viewport maps attractor coordinates onto a canvas.
type Viewport struct {
	MinX, MaxX, MinY, MaxY float64
}

// DefaultViewport is used when a batch has no finite points.
var DefaultViewport = Viewport{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}

// FitViewport frames the bulk of batch with 10% padding.
func FitViewport(batch hopalong.Batch) Viewport {
	b := analysis.ComputeBounds(batch, quantile)
	if b.Empty() {
		return DefaultViewport
	}

	v := Viewport{MinX: b.LoX, MaxX: b.HiX, MinY: b.LoY, MaxY: b.HiY}
	rangeX := v.MaxX - v.MinX
	rangeY := v.MaxY - v.MinY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	v.MinX -= rangeX * 0.1
	v.MaxX += rangeX * 0.1
	v.MinY -= rangeY * 0.1
	v.MaxY += rangeY * 0.1
	return v
}

// Map converts p to sub-pixel coordinates on a w x h dot grid with y up.
// Non-finite points and points outside the viewport report false.
func (v Viewport) Map(p hopalong.Point, w, h int) (int, int, bool) {
	if !p.IsFinite() || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	fx := (p.X - v.MinX) / (v.MaxX - v.MinX)
	fy := (p.Y - v.MinY) / (v.MaxY - v.MinY)
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 || math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	px := int(fx * float64(w-1))
	py := h - 1 - int(fy*float64(h-1))
	return px, py, true
}
