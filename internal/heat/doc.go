// Package heat provides the core types for 1-D heat equation runs.
//
// The equation u_t = alpha * u_xx is sampled on a uniform grid over
// [0, length] with Dirichlet values at both ends:
//
//   - [Params]: grid size, diffusivity, spacing and boundary values
//   - [Grid]: the previous and current solution buffers plus histories
//   - [Stepper]: advances one time level (see package schemes)
//   - [L2Norm]: mean squared difference used as the change metric
//
// # Example
//
//	p := heat.Params{N: 11, Alpha: 0.2, Dx: 0.1, Dt: 0.004, BC1: 1}
//	g := heat.NewGrid(p.N, p.Dx, false, nil)
//	stepper, _ := schemes.New("ftcs", p, nil)
//	err := stepper.Step(g.Curr, g.Prev)
//
// # Errors
//
// Failures are typed ([StabilityError], [ConfigError], [IndexError],
// [IOError]) and match the package sentinels with errors.Is.
package heat
