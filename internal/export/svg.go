package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/hopalong/internal/hopalong"
	"github.com/san-kum/hopalong/internal/viz"
)

// Layer is one draw call of a frame: a batch and the opacity it was drawn at.
type Layer struct {
	Points  hopalong.Batch
	Opacity float64
}

// Fit frames every finite point of layers.
func Fit(layers []Layer) viz.Viewport {
	n := 0
	for _, l := range layers {
		n += len(l.Points)
	}
	all := make(hopalong.Batch, 0, n)
	for _, l := range layers {
		all = append(all, l.Points...)
	}
	return viz.FitViewport(all)
}

// BatchesToSVG draws layers as dots, one group per layer with the layer
// opacity, colored by point index like the live view.
func BatchesToSVG(layers []Layer, width, height int, th viz.Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	view := Fit(layers)
	br, bg, bb := th.RGB(0, 0)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#%02x%02x%02x"/>
`, width, height, width, height, br, bg, bb))

	for _, l := range layers {
		if len(l.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("<g fill-opacity=\"%.3f\">\n", l.Opacity))
		last := toneDenominator(len(l.Points))
		for i, p := range l.Points {
			x, y, ok := view.Map(p, width, height)
			if !ok {
				continue
			}
			r, g, b := th.RGB(float64(i)/last, 1)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%d.5\" cy=\"%d.5\" r=\"0.6\" fill=\"#%02x%02x%02x\"/>\n", x, y, r, g, b))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func toneDenominator(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}
