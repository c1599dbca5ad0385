package numeric

// Scalar is a float64 whose arithmetic is recorded on a Counter. A nil
// Counter only computes.
type Scalar struct {
	v float64
	c *Counter
}

// From wraps v as an operand on c. Wrapping is not an allocation.
func From(c *Counter, v float64) Scalar {
	return Scalar{v: v, c: c}
}

func (s Scalar) Value() float64 { return s.v }

func (s Scalar) Add(o Scalar) Scalar { return Scalar{v: s.c.Add(s.v, o.v), c: s.c} }
func (s Scalar) Sub(o Scalar) Scalar { return Scalar{v: s.c.Sub(s.v, o.v), c: s.c} }
func (s Scalar) Mul(o Scalar) Scalar { return Scalar{v: s.c.Mul(s.v, o.v), c: s.c} }
func (s Scalar) Div(o Scalar) Scalar { return Scalar{v: s.c.Div(s.v, o.v), c: s.c} }

// Square returns s*s.
func (s Scalar) Square() Scalar { return s.Mul(s) }
