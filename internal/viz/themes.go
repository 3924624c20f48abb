package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the colormap and panel colors for the TUI.
type Theme struct {
	Name       string
	Stops      []lipgloss.Color // colormap from first to last point of a batch
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
}

// Available themes
var (
	ThemePlasma = Theme{
		Name: "plasma",
		// matplotlib plasma anchors
		Stops:      []lipgloss.Color{"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Accent:     lipgloss.Color("#f89540"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Stops:      []lipgloss.Color{"#005500", "#00cc00", "#88ff88"},
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Accent:     lipgloss.Color("#88ff88"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Stops:      []lipgloss.Color{"#0077be", "#00a8cc", "#e0f0ff"},
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Stops:      []lipgloss.Color{"#888888", "#ffffff"},
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#0088ff"),
	}

	// All available themes
	Themes = []Theme{
		ThemePlasma,
		ThemeRetro,
		ThemeOcean,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to plasma.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePlasma
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// RGB returns the colormap at tone t in [0, 1] faded toward the background
// by level in [0, 1].
func (th Theme) RGB(tone, level float64) (r, g, b int) {
	tone = clamp01(tone)
	level = clamp01(level)

	var c colorful.Color
	switch len(th.Stops) {
	case 0:
		c = parseHex(th.Text)
	case 1:
		c = parseHex(th.Stops[0])
	default:
		pos := tone * float64(len(th.Stops)-1)
		i := int(pos)
		if i >= len(th.Stops)-1 {
			i = len(th.Stops) - 2
		}
		c = parseHex(th.Stops[i]).BlendRgb(parseHex(th.Stops[i+1]), pos-float64(i))
	}

	r8, g8, b8 := parseHex(th.Background).BlendRgb(c, level).RGB255()
	return int(r8), int(g8), int(b8)
}

// Color is RGB as a lipgloss color.
func (th Theme) Color(tone, level float64) lipgloss.Color {
	r, g, b := th.RGB(tone, level)
	return lipgloss.Color(colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex())
}

// RGBA is RGB as an opaque image color.
func (th Theme) RGBA(tone, level float64) color.RGBA {
	r, g, b := th.RGB(tone, level)
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// parseHex falls back to white for malformed colors.
func parseHex(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
