package numeric

import "fmt"

// bytesPerValue is the storage size of one float64 sample.
const bytesPerValue = 8

// Counts is a snapshot of the arithmetic performed through a Counter.
type Counts struct {
	Adds  int64 `json:"adds" yaml:"adds"`
	Mults int64 `json:"mults" yaml:"mults"`
	Divs  int64 `json:"divs" yaml:"divs"`
	Bytes int64 `json:"bytes" yaml:"bytes"`
}

func (c Counts) String() string {
	return fmt.Sprintf("adds=%d mults=%d divs=%d bytes=%d", c.Adds, c.Mults, c.Divs, c.Bytes)
}

// Total is the number of floating point operations recorded.
func (c Counts) Total() int64 {
	return c.Adds + c.Mults + c.Divs
}

// Counter tallies floating point operations for a single run. Methods are
// safe on a nil receiver, in which case they only compute.
//
// Counter is not safe for concurrent use; a run steps on one goroutine.
type Counter struct {
	prec   Precision
	counts Counts
}

// NewCounter returns a counter that rounds every result to prec.
func NewCounter(prec Precision) *Counter {
	return &Counter{prec: prec}
}

func (c *Counter) Precision() Precision {
	if c == nil {
		return Double
	}
	return c.prec
}

func (c *Counter) round(v float64) float64 {
	if c == nil {
		return v
	}
	return c.prec.Round(v)
}

// Add returns a+b.
func (c *Counter) Add(a, b float64) float64 {
	if c != nil {
		c.counts.Adds++
	}
	return c.round(a + b)
}

// Sub returns a-b. Subtractions are tallied as adds.
func (c *Counter) Sub(a, b float64) float64 {
	if c != nil {
		c.counts.Adds++
	}
	return c.round(a - b)
}

// Mul returns a*b.
func (c *Counter) Mul(a, b float64) float64 {
	if c != nil {
		c.counts.Mults++
	}
	return c.round(a * b)
}

// Div returns a/b.
func (c *Counter) Div(a, b float64) float64 {
	if c != nil {
		c.counts.Divs++
	}
	return c.round(a / b)
}

// Alloc records the allocation of n values.
func (c *Counter) Alloc(n int) {
	if c == nil {
		return
	}
	c.counts.Bytes += int64(n) * bytesPerValue
}

// Make allocates a zeroed slice of n values and records it.
func (c *Counter) Make(n int) []float64 {
	c.Alloc(n)
	return make([]float64, n)
}

func (c *Counter) Counts() Counts {
	if c == nil {
		return Counts{}
	}
	return c.counts
}

func (c *Counter) String() string {
	return c.Counts().String()
}
