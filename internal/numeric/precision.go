package numeric

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedPrecision is returned for precisions with no native Go type.
var ErrUnsupportedPrecision = errors.New("numeric: unsupported precision")

// Precision selects the floating point width results are rounded to.
type Precision int

const (
	Double Precision = iota
	Float
	Half
	Quad
)

// halfMantissaBits is the significand width of an IEEE binary16 value,
// including the implicit leading bit.
const halfMantissaBits = 11

var precisionNames = map[Precision]string{
	Half:   "half",
	Float:  "float",
	Double: "double",
	Quad:   "quad",
}

func (p Precision) String() string {
	if s, ok := precisionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("precision(%d)", int(p))
}

// ParsePrecision maps a precision name to a Precision. Quad is recognized
// but rejected since float64 is the widest native type.
func ParsePrecision(name string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "double":
		return Double, nil
	case "float", "single":
		return Float, nil
	case "half":
		return Half, nil
	case "quad", "long double":
		return Quad, fmt.Errorf("%w: %s", ErrUnsupportedPrecision, name)
	default:
		return Double, fmt.Errorf("%w: %q", ErrUnsupportedPrecision, name)
	}
}

// Round returns v rounded to the precision. Half rounding only narrows the
// significand; the exponent range stays that of float64.
func (p Precision) Round(v float64) float64 {
	switch p {
	case Float:
		return float64(float32(v))
	case Half:
		return roundSignificand(v, halfMantissaBits)
	default:
		return v
	}
}

func roundSignificand(v float64, bits int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	frac, exp := math.Frexp(v)
	scaled := math.RoundToEven(math.Ldexp(frac, bits))
	return math.Ldexp(scaled, exp-bits)
}
