package heat

import (
	"math"

	"github.com/san-kum/heatsim/internal/numeric"
)

// Params are the inputs every updater needs.
type Params struct {
	N     int
	Alpha float64
	Dx    float64
	Dt    float64
	BC0   float64
	BC1   float64
}

// R returns the stability parameter alpha*dt/dx^2.
func (p Params) R() float64 {
	return p.Alpha * p.Dt / (p.Dx * p.Dx)
}

// GridSize returns the point count and spacing for a domain of the given
// length sampled roughly every dx. The spacing is recomputed so the points
// span [0, length] exactly.
func GridSize(length, dx float64) (int, float64) {
	n := int(math.Round(length / dx))
	if n < 2 {
		return n, dx
	}
	return n, length / float64(n-1)
}

// Stepper advances the solution by one time level. Step reads prev and
// writes curr; both have length N. On error curr must be treated as
// unwritten.
type Stepper interface {
	Name() string
	Step(curr, prev []float64) error
}

// Grid holds the live solution buffers of a run. Prev is time level k and
// Curr level k+1; Advance makes Curr the new Prev.
type Grid struct {
	N  int
	Dx float64

	Prev []float64
	Curr []float64

	// Present only when saving error data.
	Exact         []float64
	ChangeHistory []float64
	ErrorHistory  []float64
}

// NewGrid allocates the buffers for n points. Allocations are recorded on c.
func NewGrid(n int, dx float64, save bool, c *numeric.Counter) *Grid {
	g := &Grid{
		N:    n,
		Dx:   dx,
		Prev: c.Make(n),
		Curr: c.Make(n),
	}
	if save {
		g.Exact = c.Make(n)
		g.ChangeHistory = make([]float64, 0, 64)
		g.ErrorHistory = make([]float64, 0, 64)
	}
	return g
}

// X returns the coordinate of point i.
func (g *Grid) X(i int) float64 {
	return float64(i) * g.Dx
}

// Saving reports whether exact/error buffers are allocated.
func (g *Grid) Saving() bool {
	return g.Exact != nil
}

// Record appends one step's change and error to the histories.
func (g *Grid) Record(change, err float64) {
	g.ChangeHistory = append(g.ChangeHistory, change)
	g.ErrorHistory = append(g.ErrorHistory, err)
}

// Advance copies Curr into Prev.
func (g *Grid) Advance() {
	copy(g.Prev, g.Curr)
}
