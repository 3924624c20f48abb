package export

import (
	"image"
	"image/color"

	"github.com/san-kum/hopalong/internal/viz"
)

// BatchesToPNG rasterizes layers onto the theme background, blending each
// point over what is already there with the layer opacity.
func BatchesToPNG(layers []Layer, width, height int, th viz.Theme) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := th.RGBA(0, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	view := Fit(layers)
	for _, l := range layers {
		last := toneDenominator(len(l.Points))
		for i, p := range l.Points {
			x, y, ok := view.Map(p, width, height)
			if !ok {
				continue
			}
			blend(img, x, y, th.RGBA(float64(i)/last, 1), l.Opacity)
		}
	}
	return img
}

func blend(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	dst := img.RGBAAt(x, y)
	mix := func(d, s uint8) uint8 {
		return uint8(float64(d)*(1-alpha) + float64(s)*alpha + 0.5)
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(dst.R, c.R), G: mix(dst.G, c.G), B: mix(dst.B, c.B), A: 0xff})
}
