package sim

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/storage"
)

// Comparison is one algorithm's outcome on a shared configuration.
type Comparison struct {
	Algorithm string
	Result    *Result
	// MaxDiff is the largest |u - reference| at the final time.
	MaxDiff float64
	// ClosedForm is false when the reference is only the steady state.
	ClosedForm bool
	Elapsed    time.Duration
	Err        error
}

// Compare runs each algorithm on a copy of cfg without file output. A
// failing algorithm is recorded in its Comparison and does not stop the
// others; only cancellation aborts the whole comparison.
func Compare(ctx context.Context, cfg *config.Config, algorithms []string, logger *zap.Logger) ([]Comparison, error) {
	out := make([]Comparison, 0, len(algorithms))

	for _, alg := range algorithms {
		c := *cfg
		c.Algorithm = alg
		c.NoOutput = true

		cmp := Comparison{Algorithm: alg, MaxDiff: math.NaN()}
		start := time.Now()

		s, err := New(&c, logger)
		if err != nil {
			cmp.Err = err
			out = append(out, cmp)
			continue
		}

		res, err := s.Run(ctx)
		cmp.Elapsed = time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				return out, err
			}
			cmp.Err = err
			out = append(out, cmp)
			continue
		}

		cmp.Result = res
		cmp.ClosedForm = s.HasClosedForm()
		cmp.MaxDiff = floats.Distance(res.Final, s.Reference(res.FinalTime), math.Inf(1))
		out = append(out, cmp)
	}
	return out, nil
}

// Metadata describes a finished run for the run store.
func Metadata(cfg *config.Config, s *Simulator, res *Result, curves []string) *storage.RunMetadata {
	p := s.Params()
	return &storage.RunMetadata{
		ID:          cfg.ProbName,
		Timestamp:   time.Now(),
		Config:      *cfg,
		N:           p.N,
		Dx:          p.Dx,
		R:           p.R(),
		Steps:       res.Steps,
		FinalTime:   res.FinalTime,
		FinalChange: res.FinalChange,
		FinalError:  res.FinalError,
		StopReason:  string(res.Stop),
		Counts:      res.Counts,
		Curves:      curves,
	}
}
