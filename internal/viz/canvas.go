package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille canvas. Each cell also keeps the opacity and
// colormap tone of the most opaque dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Level         [][]float64
	Tone          [][]float64
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Level:  make([][]float64, h),
		Tone:   make([][]float64, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Level[i] = make([]float64, w)
		c.Tone[i] = make([]float64, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight give the canvas size in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Plot sets the dot at (x, y) in sub-pixel coordinates and records tone and opacity for its cell. A later, more
// opaque dot in the same cell takes over the cell color.
func (c *Canvas) Plot(x, y int, tone, opacity float64) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if opacity >= c.Level[row][col] {
		c.Level[row][col] = opacity
		c.Tone[row][col] = tone
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Level[i][j] = 0
			c.Tone[i][j] = 0
		}
	}
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	d := NewCanvas(c.Width, c.Height)
	for i := range c.Grid {
		copy(d.Grid[i], c.Grid[i])
		copy(d.Level[i], c.Level[i])
		copy(d.Tone[i], c.Tone[i])
	}
	return d
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// levels is the number of brightness steps used when coloring cells.
const levels = 8

// Render colors every cell with th. gain scales opacity to brightness so
// that the newest batch (drawn at alpha) shows at full brightness.
func (c *Canvas) Render(th Theme, gain float64) string {
	cache := make(map[[2]int]lipgloss.Style)
	var b strings.Builder
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			lvl := int(clamp01(c.Level[row][col]*gain)*levels + 0.5)
			if lvl < 1 {
				lvl = 1
			}
			tone := int(c.Tone[row][col]*31 + 0.5)
			key := [2]int{lvl, tone}
			style, ok := cache[key]
			if !ok {
				style = lipgloss.NewStyle().Foreground(th.Color(float64(tone)/31, float64(lvl)/levels))
				cache[key] = style
			}
			b.WriteString(style.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
