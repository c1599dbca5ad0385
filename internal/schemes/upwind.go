package schemes

import (
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
)

// UpwindLimit bounds r for Upwind15. Past it the weight on prev[i] turns
// negative and the sweep can overshoot.
const UpwindLimit = 1.0

// Upwind15 is a one-sided explicit sweep taken in the direction heat flows.
// Each point uses the neighbour already advanced on its upstream side:
//
//	(1+r) u[i]' = r u[i-1]' + (1-r) u[i] + r u[i+1]
//
// for a left-to-right sweep, mirrored when the right end is hotter. The
// upstream end is seeded with its boundary value.
type Upwind15 struct {
	p heat.Params
	c *numeric.Counter
}

func NewUpwind15(p heat.Params, c *numeric.Counter) *Upwind15 {
	return &Upwind15{p: p, c: c}
}

func (u *Upwind15) Name() string { return "upwind15" }

func (u *Upwind15) Step(curr, prev []float64) error {
	c, n := u.c, u.p.N
	if err := checkLen(n, curr, prev); err != nil {
		return err
	}

	r := stability(c, u.p)
	if r >= UpwindLimit {
		return &heat.StabilityError{Scheme: u.Name(), R: r, Limit: UpwindLimit}
	}

	w := c.Div(1, c.Add(1, r))
	keep := c.Sub(1, r)

	if prev[0] >= prev[n-1] {
		up := u.p.BC0
		for i := 1; i < n-1; i++ {
			v := c.Add(c.Mul(r, up), c.Mul(keep, prev[i]))
			v = c.Add(v, c.Mul(r, prev[i+1]))
			curr[i] = c.Mul(v, w)
			up = curr[i]
		}
	} else {
		up := u.p.BC1
		for i := n - 2; i > 0; i-- {
			v := c.Add(c.Mul(r, up), c.Mul(keep, prev[i]))
			v = c.Add(v, c.Mul(r, prev[i-1]))
			curr[i] = c.Mul(v, w)
			up = curr[i]
		}
	}

	curr[0] = u.p.BC0
	curr[n-1] = u.p.BC1
	return nil
}
