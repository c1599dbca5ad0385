package heat

import "github.com/san-kum/heatsim/internal/numeric"

// L2Norm returns (1/N) * sum((a_i - b_i)^2) over the common length N.
// Despite the name it is a mean squared difference, not a root.
func L2Norm(a, b []float64) float64 {
	return CountedL2Norm(nil, a, b)
}

// CountedL2Norm is L2Norm with its arithmetic recorded on c.
func CountedL2Norm(c *numeric.Counter, a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	sum := numeric.From(c, 0)
	for i := 0; i < n; i++ {
		diff := numeric.From(c, a[i]).Sub(numeric.From(c, b[i]))
		sum = sum.Add(diff.Square())
	}
	return sum.Div(numeric.From(c, float64(n))).Value()
}
