package config

import (
	"fmt"
	"os"

	"github.com/san-kum/hopalong/internal/hopalong"
	"github.com/san-kum/hopalong/internal/sim"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Iters  int           `yaml:"niters"`
	Hist   int           `yaml:"nhist"`
	Reset  int           `yaml:"nreset"`
	FPS    float64       `yaml:"fps"`
	Alpha  float64       `yaml:"alpha"`
	MinVal float64       `yaml:"min_val"`
	MaxVal float64       `yaml:"max_val"`
	Theme  string        `yaml:"theme"`
	Seed   uint64        `yaml:"seed,omitempty"`
	Params *ParamsConfig `yaml:"params,omitempty"`
}

// ParamsConfig pins the initial a, b, c. Later resets still draw at random.
type ParamsConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

func DefaultConfig() *Config {
	return &Config{
		Iters:  sim.DefaultIters,
		Hist:   sim.DefaultHist,
		Reset:  sim.DefaultReset,
		FPS:    sim.DefaultFPS,
		Alpha:  sim.DefaultAlpha,
		MinVal: hopalong.DefaultMin,
		MaxVal: hopalong.DefaultMax,
		Theme:  "plasma",
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep the
// values of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if base.Params != nil {
		prm := *base.Params
		cfg.Params = &prm
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.SimConfig().Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Iters:     c.Iters,
		Hist:      c.Hist,
		Reset:     c.Reset,
		AlphaInit: c.Alpha,
		FPS:       c.FPS,
		MinVal:    c.MinVal,
		MaxVal:    c.MaxVal,
	}
}

// InitialParams returns the pinned parameters, or a fresh draw from rnd in
// [MinVal, MaxVal] when none are set.
func (c *Config) InitialParams(rnd *hopalong.Randomizer) (hopalong.Params, error) {
	if c.Params != nil {
		return hopalong.Params{A: c.Params.A, B: c.Params.B, C: c.Params.C}, nil
	}
	return rnd.Params(c.MinVal, c.MaxVal)
}

// Randomizer returns a seeded randomizer when Seed is set, otherwise one on
// the process-wide source.
func (c *Config) Randomizer() *hopalong.Randomizer {
	if c.Seed != 0 {
		return hopalong.NewSeededRandomizer(c.Seed)
	}
	return hopalong.NewRandomizer(nil)
}
