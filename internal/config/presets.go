package config

import "sort"

// Presets are named starting points for common comparisons. They are
// copied before use, so callers may modify what GetPreset returns.
var Presets = map[string]*Config{
	"sine-decay": {
		Alpha: 0.2, Length: 1, Dx: 0.05, Dt: 0.002, MaxT: 1,
		IC: "sin(Pi*x)", Algorithm: "ftcs", Save: true, SaveEvery: 100,
	},
	"const-decay": {
		Alpha: 0.2, Length: 1, Dx: 0.05, Dt: 0.002, MaxT: 1,
		IC: "const(1)", Algorithm: "crankn", Save: true,
	},
	"step": {
		Alpha: 0.2, Length: 1, Dx: 0.02, Dt: 0.0005, MaxT: 0.5,
		BC1: 1, IC: "step(0,0.5,1)", Algorithm: "ftcs", SaveEvery: 200,
	},
	"spikes": {
		Alpha: 0.2, Length: 1, Dx: 0.1, Dt: 0.004, MaxT: 1,
		BC1: 1, IC: "spikes(0,5,3,5,7)", Algorithm: "upwind15", Save: true,
	},
	"converge": {
		Alpha: 0.2, Length: 1, Dx: 0.1, Dt: 0.004, MaxT: -1e-7,
		BC1: 1, IC: "const(1)", Algorithm: "ftcs", Save: true,
	},
	"large-dt": {
		Alpha: 0.2, Length: 1, Dx: 0.05, Dt: 0.05, MaxT: 2,
		BC1: 1, IC: "rand(7,1)", Algorithm: "crankn",
	},
}

// GetPreset returns a copy of the named preset with unset output options
// filled from DefaultConfig, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	def := DefaultConfig()
	if cfg.Precision == "" {
		cfg.Precision = def.Precision
	}
	if cfg.OutEvery == 0 {
		cfg.OutEvery = def.OutEvery
	}
	if cfg.ProbName == "" {
		cfg.ProbName = name
	}
	if cfg.OutDir == "" {
		cfg.OutDir = def.OutDir
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
