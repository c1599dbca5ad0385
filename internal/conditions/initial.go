// Package conditions evaluates initial-condition descriptors and the
// reference solutions used for error tracking.
package conditions

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/san-kum/heatsim/internal/heat"
)

// Kind identifies the shape of an initial condition.
type Kind int

const (
	Const Kind = iota
	Step
	Ramp
	Random
	Sine
	Spikes
)

var kindNames = map[Kind]string{
	Const:  "const",
	Step:   "step",
	Ramp:   "ramp",
	Random: "rand",
	Sine:   "sin",
	Spikes: "spikes",
}

func (k Kind) String() string { return kindNames[k] }

// sineDescriptor is the only accepted spelling of the sine profile.
const sineDescriptor = "sin(Pi*x)"

// Spike overrides one grid point.
type Spike struct {
	Amp   float64
	Index int
}

// Initial is a parsed initial-condition descriptor.
type Initial struct {
	Kind Kind
	Desc string

	Value float64 // const value, spikes base
	Left  float64 // step, ramp
	Mid   float64 // step
	Right float64 // step, ramp
	Seed  int64   // rand
	Amp   float64 // rand

	Spikes []Spike
}

// Parse reads a descriptor of the form
//
//	const(v)
//	step(left,xmid,right)
//	ramp(left,right)
//	rand(seed,amp)
//	sin(Pi*x)
//	spikes(base,amp,idx,amp,idx,...)
func Parse(desc string) (*Initial, error) {
	s := strings.TrimSpace(desc)
	if s == sineDescriptor {
		return &Initial{Kind: Sine, Desc: s}, nil
	}

	name, args, err := splitCall(s)
	if err != nil {
		return nil, err
	}

	ic := &Initial{Desc: s}
	switch name {
	case "const":
		vals, err := floats(s, args, 1)
		if err != nil {
			return nil, err
		}
		ic.Kind, ic.Value = Const, vals[0]
	case "step":
		vals, err := floats(s, args, 3)
		if err != nil {
			return nil, err
		}
		ic.Kind, ic.Left, ic.Mid, ic.Right = Step, vals[0], vals[1], vals[2]
	case "ramp":
		vals, err := floats(s, args, 2)
		if err != nil {
			return nil, err
		}
		ic.Kind, ic.Left, ic.Right = Ramp, vals[0], vals[1]
	case "rand":
		if len(args) != 2 {
			return nil, badDescriptor(s, "rand takes seed and amplitude")
		}
		seed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, badDescriptor(s, "seed must be an integer")
		}
		amp, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, badDescriptor(s, "amplitude must be a number")
		}
		ic.Kind, ic.Seed, ic.Amp = Random, seed, amp
	case "spikes":
		if len(args) == 0 || len(args)%2 != 1 {
			return nil, badDescriptor(s, "spikes takes a base value and amplitude/index pairs")
		}
		vals, err := floats(s, args, len(args))
		if err != nil {
			return nil, err
		}
		ic.Kind, ic.Value = Spikes, vals[0]
		for i := 1; i < len(vals); i += 2 {
			idx := vals[i+1]
			if idx != math.Trunc(idx) {
				return nil, badDescriptor(s, fmt.Sprintf("spike index %v is not an integer", idx))
			}
			ic.Spikes = append(ic.Spikes, Spike{Amp: vals[i], Index: int(idx)})
		}
	default:
		return nil, badDescriptor(s, "unknown initial condition")
	}
	return ic, nil
}

func splitCall(s string) (string, []string, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, badDescriptor(s, "expected name(args)")
	}
	name := s[:open]
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return name, nil, nil
	}
	args := strings.Split(inner, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return name, args, nil
}

func floats(desc string, args []string, want int) ([]float64, error) {
	if len(args) != want {
		return nil, badDescriptor(desc, fmt.Sprintf("expected %d arguments, got %d", want, len(args)))
	}
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, badDescriptor(desc, fmt.Sprintf("argument %q is not a number", a))
		}
		vals[i] = v
	}
	return vals, nil
}

func badDescriptor(desc, reason string) error {
	return &heat.ConfigError{Field: "initial condition", Value: desc, Reason: reason}
}

// Fill writes the initial condition into a, sampled at x_i = i*dx. Spike
// indices are checked before anything is written.
func (ic *Initial) Fill(a []float64, dx float64) error {
	n := len(a)
	switch ic.Kind {
	case Const:
		for i := range a {
			a[i] = ic.Value
		}
	case Step:
		for i := range a {
			if float64(i)*dx < ic.Mid {
				a[i] = ic.Left
			} else {
				a[i] = ic.Right
			}
		}
	case Ramp:
		if n == 1 {
			a[0] = ic.Left
			return nil
		}
		dv := (ic.Right - ic.Left) / float64(n-1)
		for i := range a {
			a[i] = ic.Left + float64(i)*dv
		}
	case Random:
		rng := rand.New(rand.NewSource(ic.Seed))
		for i := range a {
			a[i] = ic.Amp * rng.Float64()
		}
	case Sine:
		for i := range a {
			a[i] = math.Sin(math.Pi * float64(i) * dx)
		}
	case Spikes:
		for _, sp := range ic.Spikes {
			if sp.Index < 0 || sp.Index >= n {
				return &heat.IndexError{Index: sp.Index, Len: n}
			}
		}
		for i := range a {
			a[i] = ic.Value
		}
		for _, sp := range ic.Spikes {
			a[sp.Index] = sp.Amp
		}
	default:
		return badDescriptor(ic.Desc, "unknown initial condition")
	}
	return nil
}

func (ic *Initial) String() string { return ic.Desc }
