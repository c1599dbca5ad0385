package conditions

import (
	"math"

	"github.com/san-kum/heatsim/internal/numeric"
)

// SeriesTerms bounds the Fourier sine series for the constant profile: terms
// n = 1 .. SeriesTerms-1 are summed. The truncation is fixed, not adaptive.
const SeriesTerms = 200

// Reference evaluates the solution used to measure error for a run.
type Reference struct {
	IC     *Initial
	Alpha  float64
	BC0    float64
	BC1    float64
	Length float64
}

func (r Reference) length() float64 {
	if r.Length <= 0 {
		return 1
	}
	return r.Length
}

// HasClosedForm reports whether Eval returns the true transient solution
// rather than the steady-state line. sin(Pi*x) only meets a zero boundary
// at x=L when L is a whole number.
func (r Reference) HasClosedForm() bool {
	if r.BC0 != 0 || r.BC1 != 0 || r.IC == nil {
		return false
	}
	switch r.IC.Kind {
	case Sine:
		l := r.length()
		return l == math.Trunc(l)
	case Const:
		return true
	}
	return false
}

// Eval fills a with the reference solution at time t on x_i = i*dx. Its
// arithmetic is recorded on c and rounded to c's precision; c may be nil.
func (r Reference) Eval(c *numeric.Counter, a []float64, dx, t float64) {
	length := r.length()
	switch {
	case r.HasClosedForm() && r.IC.Kind == Sine:
		decay := math.Exp(c.Mul(c.Mul(-r.Alpha, c.Mul(math.Pi, math.Pi)), t))
		for i := range a {
			x := c.Mul(float64(i), dx)
			a[i] = c.Mul(math.Sin(c.Mul(math.Pi, x)), decay)
		}
	case r.HasClosedForm() && r.IC.Kind == Const:
		for i := range a {
			a[i] = constSeries(c, r.IC.Value, c.Mul(float64(i), dx), length, r.Alpha, t)
		}
	default:
		// Only the steady state is known here. Callers use it for the trend
		// of the error as t grows, not as an exact check.
		slope := c.Div(c.Sub(r.BC1, r.BC0), length)
		for i := range a {
			a[i] = c.Add(r.BC0, c.Mul(slope, c.Mul(float64(i), dx)))
		}
	}
}

// constSeries sums the sine series of a constant v held between zero
// boundaries on [0, length].
func constSeries(c *numeric.Counter, v, x, length, alpha, t float64) float64 {
	sum := 0.0
	for n := 1; n < SeriesTerms; n += 2 {
		// even terms vanish: 1 - (-1)^n = 0
		npi := c.Mul(float64(n), math.Pi)
		k := c.Div(npi, length)
		coeff := c.Div(c.Mul(4, v), npi)
		decay := math.Exp(c.Mul(c.Mul(-alpha, c.Mul(k, k)), t))
		sum = c.Add(sum, c.Mul(c.Mul(coeff, math.Sin(c.Mul(k, x))), decay))
	}
	return sum
}
