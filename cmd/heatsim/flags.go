package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/config"
)

// runFlags holds the configuration flags shared by run, compare and live.
type runFlags struct {
	cfg        config.Config
	configFile string
	preset     string
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	d := config.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&f.cfg.Precision, "prec", d.Precision, "floating point precision (half, float, double)")
	fs.Float64Var(&f.cfg.Alpha, "alpha", d.Alpha, "material thermal diffusivity")
	fs.Float64Var(&f.cfg.Length, "lenx", d.Length, "domain length")
	fs.Float64Var(&f.cfg.Dx, "dx", d.Dx, "x spacing, adjusted so the grid spans the domain")
	fs.Float64Var(&f.cfg.Dt, "dt", d.Dt, "time step")
	fs.Float64Var(&f.cfg.MaxT, "maxt", d.MaxT, "max time, or -T to stop once change < T^2")
	fs.Float64Var(&f.cfg.BC0, "bc0", d.BC0, "boundary value at x=0")
	fs.Float64Var(&f.cfg.BC1, "bc1", d.BC1, "boundary value at x=lenx")
	fs.StringVar(&f.cfg.IC, "ic", d.IC, "initial condition: const(v), step(l,xmid,r), ramp(l,r), rand(seed,amp), sin(Pi*x), spikes(base,amp,idx,...)")
	fs.StringVar(&f.cfg.Algorithm, "alg", d.Algorithm, "algorithm: ftcs, upwind15, crankn")
	fs.IntVar(&f.cfg.OutEvery, "outi", d.OutEvery, "progress output every N steps (0 for none)")
	fs.IntVar(&f.cfg.SaveEvery, "savi", d.SaveEvery, "save a snapshot every N steps (0 for none)")
	fs.BoolVar(&f.cfg.Save, "save", d.Save, "save error history and final error")
	fs.BoolVar(&f.cfg.NoOutput, "noout", d.NoOutput, "disable all curve output")
	fs.StringVar(&f.cfg.ProbName, "probnm", d.ProbName, "problem name prefixed to output files")
	fs.StringVar(&f.cfg.OutDir, "outdir", d.OutDir, "directory for curve and run files")
	fs.IntVar(&f.cfg.MaxSteps, "max-steps", d.MaxSteps, "stop after N steps (0 for no cap)")
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&f.preset, "preset", "", "start from a named preset")
}

// resolve layers defaults, the preset, the config file and then any flag
// set on the command line, and validates the result. A config file only
// overrides the preset keys it names.
func (f *runFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if f.preset != "" {
		cfg = config.GetPreset(f.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets())
		}
	}

	if f.configFile != "" {
		loaded, err := config.LoadOver(f.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"prec":      func() { cfg.Precision = f.cfg.Precision },
		"alpha":     func() { cfg.Alpha = f.cfg.Alpha },
		"lenx":      func() { cfg.Length = f.cfg.Length },
		"dx":        func() { cfg.Dx = f.cfg.Dx },
		"dt":        func() { cfg.Dt = f.cfg.Dt },
		"maxt":      func() { cfg.MaxT = f.cfg.MaxT },
		"bc0":       func() { cfg.BC0 = f.cfg.BC0 },
		"bc1":       func() { cfg.BC1 = f.cfg.BC1 },
		"ic":        func() { cfg.IC = f.cfg.IC },
		"alg":       func() { cfg.Algorithm = f.cfg.Algorithm },
		"outi":      func() { cfg.OutEvery = f.cfg.OutEvery },
		"savi":      func() { cfg.SaveEvery = f.cfg.SaveEvery },
		"save":      func() { cfg.Save = f.cfg.Save },
		"noout":     func() { cfg.NoOutput = f.cfg.NoOutput },
		"probnm":    func() { cfg.ProbName = f.cfg.ProbName },
		"outdir":    func() { cfg.OutDir = f.cfg.OutDir },
		"max-steps": func() { cfg.MaxSteps = f.cfg.MaxSteps },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
