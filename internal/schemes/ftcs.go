package schemes

import (
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
)

// FTCSLimit is the stability bound on r for FTCS. r at or above it fails.
const FTCSLimit = 0.5

// FTCS is the explicit forward-time centered-space update.
type FTCS struct {
	p heat.Params
	c *numeric.Counter
}

func NewFTCS(p heat.Params, c *numeric.Counter) *FTCS {
	return &FTCS{p: p, c: c}
}

func (f *FTCS) Name() string { return "ftcs" }

func (f *FTCS) Step(curr, prev []float64) error {
	c, n := f.c, f.p.N
	if err := checkLen(n, curr, prev); err != nil {
		return err
	}

	r := stability(c, f.p)
	if r >= FTCSLimit {
		return &heat.StabilityError{Scheme: f.Name(), R: r, Limit: FTCSLimit}
	}

	centre := c.Sub(1, c.Mul(2, r))
	for i := 1; i < n-1; i++ {
		v := c.Add(c.Mul(r, prev[i+1]), c.Mul(centre, prev[i]))
		curr[i] = c.Add(v, c.Mul(r, prev[i-1]))
	}

	curr[0] = f.p.BC0
	curr[n-1] = f.p.BC1
	return nil
}

func stability(c *numeric.Counter, p heat.Params) float64 {
	return c.Div(c.Mul(p.Alpha, p.Dt), c.Mul(p.Dx, p.Dx))
}

func checkLen(n int, bufs ...[]float64) error {
	for _, b := range bufs {
		if len(b) < n {
			return &heat.IndexError{Index: n - 1, Len: len(b)}
		}
	}
	return nil
}
