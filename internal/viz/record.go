package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
)

const (
	charW, charH = 8, 16
	gifTones     = 16
)

// Recorder captures presented canvases as GIF frames.
type Recorder struct {
	gain    float64
	delay   int
	palette color.Palette
	frames  []*image.Paletted
}

// NewRecorder builds the palette from th. gain is applied like in
// Canvas.Render; fps sets the frame delay.
func NewRecorder(th Theme, gain, fps float64) *Recorder {
	delay := 4
	if fps > 0 {
		delay = int(100/fps + 0.5)
		if delay < 2 {
			delay = 2
		}
	}

	pal := make(color.Palette, 0, 1+gifTones*levels)
	pal = append(pal, th.RGBA(0, 0))
	for tone := 0; tone < gifTones; tone++ {
		for lvl := 1; lvl <= levels; lvl++ {
			pal = append(pal, th.RGBA(float64(tone)/(gifTones-1), float64(lvl)/levels))
		}
	}

	return &Recorder{gain: gain, delay: delay, palette: pal}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterizes c, one dotW x dotH block per braille dot.
func (r *Recorder) Capture(c *Canvas) {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), r.palette)
	dotW, dotH := charW/2, charH/4

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			cell := c.Grid[row][col]
			if cell == blank {
				continue
			}
			idx := r.paletteIndex(c.Tone[row][col], c.Level[row][col])
			pattern := int(cell - blank)
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) paletteIndex(tone, level float64) uint8 {
	lvl := int(clamp01(level*r.gain)*levels + 0.5)
	if lvl < 1 {
		lvl = 1
	}
	t := int(clamp01(tone)*(gifTones-1) + 0.5)
	return uint8(1 + t*levels + lvl - 1)
}

// Encode writes all captured frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return errors.New("viz: no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}
