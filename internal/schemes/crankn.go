package schemes

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
)

// CNMatrix is the left-hand side of the Crank-Nicholson system. Boundary
// rows are identity; interior rows are [-r/2, 1+r, -r/2]. It is built once
// and only read while stepping.
type CNMatrix struct {
	band *mat.BandDense
	n    int
}

// NewCNMatrix builds the n×n tridiagonal matrix for alpha, dx and dt.
func NewCNMatrix(n int, alpha, dx, dt float64) *CNMatrix {
	r := alpha * dt / (dx * dx)
	band := mat.NewBandDense(n, n, 1, 1, nil)
	for i := 0; i < n; i++ {
		if i == 0 || i == n-1 {
			band.SetBand(i, i, 1)
			continue
		}
		band.SetBand(i, i-1, -r/2)
		band.SetBand(i, i, 1+r)
		band.SetBand(i, i+1, -r/2)
	}
	return &CNMatrix{band: band, n: n}
}

func (m *CNMatrix) Size() int { return m.n }

// At returns entry (i, j); entries off the three diagonals are zero.
func (m *CNMatrix) At(i, j int) float64 { return m.band.At(i, j) }

// Band exposes the matrix for gonum operations. Callers must not modify it.
func (m *CNMatrix) Band() mat.Banded { return m.band }

// diagonals copies the band into sub, diag and super slices.
func (m *CNMatrix) diagonals() (sub, diag, sup []float64) {
	n := m.n
	sub = make([]float64, n)
	diag = make([]float64, n)
	sup = make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = m.band.At(i, i)
		if i > 0 {
			sub[i] = m.band.At(i, i-1)
		}
		if i < n-1 {
			sup[i] = m.band.At(i, i+1)
		}
	}
	return sub, diag, sup
}

// CrankNicholson is the implicit trapezoidal update. It has no stability
// bound but solves a tridiagonal system every step.
type CrankNicholson struct {
	p heat.Params
	c *numeric.Counter
	m *CNMatrix

	sub, diag, sup []float64
	rhs, cp, dp    []float64
}

// NewCrankNicholson builds the matrix from p and wraps it in a stepper.
func NewCrankNicholson(p heat.Params, c *numeric.Counter) *CrankNicholson {
	return NewCrankNicholsonFromMatrix(p, NewCNMatrix(p.N, p.Alpha, p.Dx, p.Dt), c)
}

// NewCrankNicholsonFromMatrix steps with a prebuilt matrix of size p.N.
func NewCrankNicholsonFromMatrix(p heat.Params, m *CNMatrix, c *numeric.Counter) *CrankNicholson {
	sub, diag, sup := m.diagonals()
	c.Alloc(m.n * 3)
	return &CrankNicholson{
		p:    p,
		c:    c,
		m:    m,
		sub:  sub,
		diag: diag,
		sup:  sup,
		rhs:  c.Make(m.n),
		cp:   c.Make(m.n),
		dp:   c.Make(m.n),
	}
}

func (cn *CrankNicholson) Name() string { return "crankn" }

func (cn *CrankNicholson) Matrix() *CNMatrix { return cn.m }

func (cn *CrankNicholson) Step(curr, prev []float64) error {
	c, n := cn.c, cn.m.n
	if err := checkLen(n, curr, prev); err != nil {
		return err
	}

	// The explicit half mirrors the implicit rows: -a, 2-d, -c.
	cn.rhs[0] = cn.p.BC0
	cn.rhs[n-1] = cn.p.BC1
	for i := 1; i < n-1; i++ {
		v := c.Mul(c.Sub(2, cn.diag[i]), prev[i])
		v = c.Sub(v, c.Mul(cn.sub[i], prev[i-1]))
		cn.rhs[i] = c.Sub(v, c.Mul(cn.sup[i], prev[i+1]))
	}

	solveTridiagonal(c, cn.sub, cn.diag, cn.sup, cn.rhs, curr[:n], cn.cp, cn.dp)

	curr[0] = cn.p.BC0
	curr[n-1] = cn.p.BC1
	return nil
}

// solveTridiagonal solves the system with the Thomas algorithm, writing
// the solution into x. cp and dp are scratch space of the same length.
func solveTridiagonal(c *numeric.Counter, sub, diag, sup, rhs, x, cp, dp []float64) {
	n := len(diag)
	if n == 0 {
		return
	}

	cp[0] = c.Div(sup[0], diag[0])
	dp[0] = c.Div(rhs[0], diag[0])
	for i := 1; i < n; i++ {
		denom := c.Sub(diag[i], c.Mul(sub[i], cp[i-1]))
		if i < n-1 {
			cp[i] = c.Div(sup[i], denom)
		}
		dp[i] = c.Div(c.Sub(rhs[i], c.Mul(sub[i], dp[i-1])), denom)
	}

	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = c.Sub(dp[i], c.Mul(cp[i], x[i+1]))
	}
}
