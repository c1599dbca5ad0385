// Package schemes implements the time-stepping updaters for the heat
// equation: explicit FTCS, the one-sided Upwind15 sweep, and implicit
// Crank-Nicholson. Every updater overwrites both boundary points with the
// configured values after its interior update.
package schemes

import (
	"sort"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
)

// Factory builds an updater for one run.
type Factory func(p heat.Params, c *numeric.Counter) heat.Stepper

var factories = map[string]Factory{
	"ftcs":     func(p heat.Params, c *numeric.Counter) heat.Stepper { return NewFTCS(p, c) },
	"upwind15": func(p heat.Params, c *numeric.Counter) heat.Stepper { return NewUpwind15(p, c) },
	"crankn":   func(p heat.Params, c *numeric.Counter) heat.Stepper { return NewCrankNicholson(p, c) },
}

// New returns the updater registered under name.
func New(name string, p heat.Params, c *numeric.Counter) (heat.Stepper, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, &heat.ConfigError{Field: "algorithm", Value: name, Reason: "expected one of ftcs, upwind15, crankn"}
	}
	return fn(p, c), nil
}

// Names lists the registered algorithms in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Limit returns the largest stable r for an explicit scheme, or 0 when the
// scheme has no bound.
func Limit(name string) float64 {
	switch name {
	case "ftcs":
		return FTCSLimit
	case "upwind15":
		return UpwindLimit
	default:
		return 0
	}
}
