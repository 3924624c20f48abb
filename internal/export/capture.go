package export

import (
	"github.com/san-kum/hopalong/internal/hopalong"
)

// Capture is a sim.Renderer that draws nothing and remembers the layers
// of the last completed frame. Batches are kept by reference.
type Capture struct {
	pending []Layer
	last    []Layer
	frames  int
}

func (c *Capture) Draw(points hopalong.Batch, opacity float64) error {
	c.pending = append(c.pending, Layer{Points: points, Opacity: opacity})
	return nil
}

func (c *Capture) Clear() error {
	c.last, c.pending = c.pending, nil
	c.frames++
	return nil
}

// Layers returns the draw calls of the last cleared frame in draw order.
func (c *Capture) Layers() []Layer { return c.last }

// Frames is the number of completed frames.
func (c *Capture) Frames() int { return c.frames }
