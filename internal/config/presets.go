package config

import "sort"

// Presets follow the usual advice: a reset every frame is very chaotic,
// larger reset periods such as 10 settle into stable structures.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": {
		Iters: 1500, Hist: 20, Reset: 40, FPS: 20, Alpha: 0.3,
		MinVal: -10, MaxVal: 10, Theme: "ocean",
	},
	"chaotic": {
		Iters: 1000, Hist: 10, Reset: 1, FPS: 25, Alpha: 0.3,
		MinVal: -10, MaxVal: 10, Theme: "plasma",
	},
	"long-trails": {
		Iters: 500, Hist: 40, Reset: 80, FPS: 30, Alpha: 0.5,
		MinVal: -10, MaxVal: 10, Theme: "plasma",
	},
	"frozen": {
		Iters: 2000, Hist: 10, Reset: 0, FPS: 25, Alpha: 0.3,
		MinVal: -10, MaxVal: 10, Theme: "retro",
	},
	"gingham": {
		Iters: 1000, Hist: 15, Reset: 0, FPS: 25, Alpha: 0.3,
		MinVal: -10, MaxVal: 10, Theme: "plasma",
		Params: &ParamsConfig{A: 7.17, B: 8.44, C: 2.56},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if p.Params != nil {
		prm := *p.Params
		cfg.Params = &prm
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
