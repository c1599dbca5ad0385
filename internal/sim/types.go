package sim

import (
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
)

// Snapshot describes the grid right after a step. Grid is shared with the
// simulator; observers must copy anything they keep.
type Snapshot struct {
	Step   int
	Time   float64
	Change float64
	Error  float64
	Grid   *heat.Grid
}

// Observer is notified as a run progresses.
type Observer interface {
	OnStart(g *heat.Grid)
	OnStep(s Snapshot)
	OnFinish(r *Result)
}

// Result summarises a finished run.
type Result struct {
	Algorithm   string
	Steps       int
	FinalTime   float64
	FinalChange float64
	FinalError  float64
	Stop        StopReason

	Dx    float64
	Final []float64
	Exact []float64

	ChangeHistory []float64
	ErrorHistory  []float64

	Counts numeric.Counts
}
