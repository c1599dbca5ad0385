package sim

import "math"

// StopReason says why a run ended.
type StopReason string

const (
	StopRunning   StopReason = ""
	StopTime      StopReason = "time limit"
	StopConverged StopReason = "converged"
	StopMaxSteps  StopReason = "step limit"
	StopCancelled StopReason = "cancelled"
)

// Tracker decides when a run ends and when to report progress.
//
// With MaxT >= 0 the run takes steps while steps*dt < MaxT. With MaxT < 0 it
// runs until the change between consecutive steps drops below MaxT^2. A
// positive MaxSteps caps either mode.
type Tracker struct {
	Dt       float64
	MaxT     float64
	MaxSteps int
	OutEvery int
}

func (t Tracker) ThresholdMode() bool { return t.MaxT < 0 }

func (t Tracker) Threshold() float64 {
	if !t.ThresholdMode() {
		return 0
	}
	return t.MaxT * t.MaxT
}

// Before reports whether the run must stop before taking another step,
// given the number of steps completed so far.
func (t Tracker) Before(steps int) StopReason {
	if t.MaxSteps > 0 && steps >= t.MaxSteps {
		return StopMaxSteps
	}
	if !t.ThresholdMode() && float64(steps)*t.Dt >= t.MaxT {
		return StopTime
	}
	return StopRunning
}

// After reports whether the step that produced change ends the run.
func (t Tracker) After(change float64) StopReason {
	if t.ThresholdMode() && change < t.Threshold() {
		return StopConverged
	}
	return StopRunning
}

// Progress reports whether step should be reported.
func (t Tracker) Progress(step int) bool {
	return t.OutEvery > 0 && step%t.OutEvery == 0
}

// Estimate returns the number of steps a fixed-time run takes, or 0 when
// it cannot be known in advance.
func (t Tracker) Estimate() int {
	if t.ThresholdMode() {
		return t.MaxSteps
	}
	n := int(math.Ceil(t.MaxT / t.Dt))
	if t.MaxSteps > 0 && t.MaxSteps < n {
		return t.MaxSteps
	}
	return n
}
