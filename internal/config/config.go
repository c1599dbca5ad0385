package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/conditions"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
	"github.com/san-kum/heatsim/internal/schemes"
)

const (
	DefaultPrecision = "double"
	DefaultAlpha     = 0.2
	DefaultLength    = 1.0
	DefaultDx        = 0.1
	DefaultDt        = 0.004
	DefaultMaxT      = 2.0
	DefaultBC0       = 0.0
	DefaultBC1       = 1.0
	DefaultIC        = "const(1)"
	DefaultAlgorithm = "ftcs"
	DefaultOutEvery  = 100
	DefaultProbName  = "heat"
	DefaultOutDir    = "."

	// MinPoints is the smallest grid with an interior point.
	MinPoints = 3
)

// Config is the full set of run options. A negative MaxT selects threshold
// mode: the run stops once the change between steps drops below MaxT^2.
type Config struct {
	Precision string  `yaml:"precision" json:"precision"`
	Alpha     float64 `yaml:"alpha" json:"alpha"`
	Length    float64 `yaml:"lenx" json:"lenx"`
	Dx        float64 `yaml:"dx" json:"dx"`
	Dt        float64 `yaml:"dt" json:"dt"`
	MaxT      float64 `yaml:"maxt" json:"maxt"`
	BC0       float64 `yaml:"bc0" json:"bc0"`
	BC1       float64 `yaml:"bc1" json:"bc1"`
	IC        string  `yaml:"ic" json:"ic"`
	Algorithm string  `yaml:"alg" json:"alg"`

	OutEvery  int    `yaml:"outi" json:"outi"`
	SaveEvery int    `yaml:"savi" json:"savi"`
	Save      bool   `yaml:"save" json:"save"`
	NoOutput  bool   `yaml:"noout" json:"noout"`
	ProbName  string `yaml:"probnm" json:"probnm"`
	OutDir    string `yaml:"outdir" json:"outdir"`
	MaxSteps  int    `yaml:"max_steps" json:"max_steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Precision: DefaultPrecision,
		Alpha:     DefaultAlpha,
		Length:    DefaultLength,
		Dx:        DefaultDx,
		Dt:        DefaultDt,
		MaxT:      DefaultMaxT,
		BC0:       DefaultBC0,
		BC1:       DefaultBC1,
		IC:        DefaultIC,
		Algorithm: DefaultAlgorithm,
		OutEvery:  DefaultOutEvery,
		ProbName:  DefaultProbName,
		OutDir:    DefaultOutDir,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file on top of a copy of base; keys absent from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks every option and reports the first bad one as a
// heat.ConfigError.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"alpha", c.Alpha},
		{"lenx", c.Length},
		{"dx", c.Dx},
		{"dt", c.Dt},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return &heat.ConfigError{Field: p.name, Value: formatFloat(p.v), Reason: "must be positive"}
		}
	}
	if math.IsNaN(c.MaxT) || c.MaxT == 0 {
		return &heat.ConfigError{Field: "maxt", Value: formatFloat(c.MaxT), Reason: "must be a time limit or a negative threshold"}
	}
	if n, _ := c.Grid(); n < MinPoints {
		return &heat.ConfigError{Field: "dx", Value: formatFloat(c.Dx), Reason: fmt.Sprintf("grid needs at least %d points, got %d", MinPoints, n)}
	}
	if _, err := numeric.ParsePrecision(c.Precision); err != nil {
		return &heat.ConfigError{Field: "precision", Value: c.Precision, Reason: err.Error()}
	}
	if _, err := conditions.Parse(c.IC); err != nil {
		return err
	}
	if _, err := schemes.New(c.Algorithm, c.Params(), nil); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    int
	}{{"outi", c.OutEvery}, {"savi", c.SaveEvery}, {"max_steps", c.MaxSteps}} {
		if f.v < 0 {
			return &heat.ConfigError{Field: f.name, Value: strconv.Itoa(f.v), Reason: "must not be negative"}
		}
	}
	if c.ProbName == "" {
		return &heat.ConfigError{Field: "probnm", Value: c.ProbName, Reason: "must not be empty"}
	}
	return nil
}

// Grid returns the point count and adjusted spacing.
func (c *Config) Grid() (int, float64) {
	return heat.GridSize(c.Length, c.Dx)
}

// Params returns the updater inputs for the adjusted grid.
func (c *Config) Params() heat.Params {
	n, dx := c.Grid()
	return heat.Params{N: n, Alpha: c.Alpha, Dx: dx, Dt: c.Dt, BC0: c.BC0, BC1: c.BC1}
}

// ThresholdMode reports whether the run stops on convergence.
func (c *Config) ThresholdMode() bool {
	return c.MaxT < 0
}

// Threshold is the change below which a threshold-mode run stops.
func (c *Config) Threshold() float64 {
	return c.MaxT * c.MaxT
}

// NumericPrecision parses Precision, falling back to double when invalid.
func (c *Config) NumericPrecision() numeric.Precision {
	p, err := numeric.ParsePrecision(c.Precision)
	if err != nil {
		return numeric.Double
	}
	return p
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
