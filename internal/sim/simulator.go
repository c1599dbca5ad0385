package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/heatsim/internal/conditions"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/logging"
	"github.com/san-kum/heatsim/internal/numeric"
	"github.com/san-kum/heatsim/internal/schemes"
)

// Simulator owns the buffers of one run and steps them with the configured
// scheme. It is not safe for concurrent use.
type Simulator struct {
	cfg       config.Config
	params    heat.Params
	stepper   heat.Stepper
	ic        *conditions.Initial
	ref       conditions.Reference
	grid      *heat.Grid
	counter   *numeric.Counter
	tracker   Tracker
	observers []Observer
	logger    *zap.Logger

	started bool
	steps   int
	change  float64
	err     float64
	stop    StopReason
}

// New validates cfg and allocates the run. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	counter := numeric.NewCounter(cfg.NumericPrecision())
	params := cfg.Params()

	stepper, err := schemes.New(cfg.Algorithm, params, counter)
	if err != nil {
		return nil, err
	}
	ic, err := conditions.Parse(cfg.IC)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		cfg:     *cfg,
		params:  params,
		stepper: stepper,
		ic:      ic,
		ref: conditions.Reference{
			IC:     ic,
			Alpha:  cfg.Alpha,
			BC0:    cfg.BC0,
			BC1:    cfg.BC1,
			Length: cfg.Length,
		},
		grid:    heat.NewGrid(params.N, params.Dx, cfg.Save, counter),
		counter: counter,
		tracker: Tracker{
			Dt:       cfg.Dt,
			MaxT:     cfg.MaxT,
			MaxSteps: cfg.MaxSteps,
			OutEvery: cfg.OutEvery,
		},
		observers: make([]Observer, 0),
		logger:    logging.OrNop(logger),
	}, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Grid() *heat.Grid       { return s.grid }
func (s *Simulator) Params() heat.Params    { return s.params }
func (s *Simulator) Tracker() Tracker       { return s.tracker }
func (s *Simulator) Algorithm() string      { return s.stepper.Name() }
func (s *Simulator) Counts() numeric.Counts { return s.counter.Counts() }
func (s *Simulator) Steps() int             { return s.steps }
func (s *Simulator) Change() float64        { return s.change }

// Start fills the initial condition and notifies observers. Run calls it;
// callers stepping with Next must call it first.
func (s *Simulator) Start() error {
	if s.started {
		return nil
	}
	if err := s.ic.Fill(s.grid.Prev, s.grid.Dx); err != nil {
		return err
	}
	prec := s.counter.Precision()
	for i, v := range s.grid.Prev {
		s.grid.Prev[i] = prec.Round(v)
	}
	copy(s.grid.Curr, s.grid.Prev)
	s.started = true

	s.logger.Debug("run started",
		zap.String("algorithm", s.stepper.Name()),
		zap.Int("n", s.params.N),
		zap.Float64("dx", s.params.Dx),
		zap.Float64("r", s.params.R()),
		zap.String("ic", s.ic.String()))

	for _, obs := range s.observers {
		obs.OnStart(s.grid)
	}
	return nil
}

// Next takes one step. It returns a non-empty StopReason once the run is
// over; errors from the scheme are wrapped in *heat.StepError.
func (s *Simulator) Next(ctx context.Context) (StopReason, error) {
	if s.stop != StopRunning {
		return s.stop, nil
	}
	if err := ctx.Err(); err != nil {
		s.stop = StopCancelled
		return s.stop, err
	}
	if reason := s.tracker.Before(s.steps); reason != StopRunning {
		s.stop = reason
		return s.stop, nil
	}

	g := s.grid
	t := float64(s.steps+1) * s.cfg.Dt
	if err := s.stepper.Step(g.Curr, g.Prev); err != nil {
		return StopRunning, &heat.StepError{Step: s.steps + 1, Time: t, Wrapped: err}
	}
	s.steps++

	s.change = heat.CountedL2Norm(s.counter, g.Curr, g.Prev)
	if g.Saving() {
		// Curr holds time level steps, i.e. t = steps*dt.
		s.ref.Eval(s.counter, g.Exact, g.Dx, t)
		s.err = heat.CountedL2Norm(s.counter, g.Curr, g.Exact)
		g.Record(s.change, s.err)
	}

	if s.tracker.Progress(s.steps) {
		s.logger.Info(fmt.Sprintf("Iteration %04d: last change l2=%g", s.steps, s.change))
	}

	snap := Snapshot{Step: s.steps, Time: t, Change: s.change, Error: s.err, Grid: g}
	for _, obs := range s.observers {
		obs.OnStep(snap)
	}

	if reason := s.tracker.After(s.change); reason != StopRunning {
		s.stop = reason
		s.logger.Info(fmt.Sprintf("Stopped after %06d iterations for threshold %g", s.steps, s.change))
		return s.stop, nil
	}

	g.Advance()
	return StopRunning, nil
}

// Finish builds the result and notifies observers. Curr holds the last
// computed time level.
func (s *Simulator) Finish() *Result {
	g := s.grid
	res := &Result{
		Algorithm:   s.stepper.Name(),
		Steps:       s.steps,
		FinalTime:   float64(s.steps) * s.cfg.Dt,
		FinalChange: s.change,
		FinalError:  s.err,
		Stop:        s.stop,
		Dx:          g.Dx,
		Final:       append([]float64(nil), g.Curr...),
		Counts:      s.counter.Counts(),
	}
	if g.Saving() {
		res.Exact = append([]float64(nil), g.Exact...)
		res.ChangeHistory = append([]float64(nil), g.ChangeHistory...)
		res.ErrorHistory = append([]float64(nil), g.ErrorHistory...)
	}

	s.logger.Info(fmt.Sprintf("Iteration %04d: last change l2=%g", s.steps, s.change),
		zap.String("stop", string(s.stop)))
	s.logger.Info("Counts: " + res.Counts.String())

	for _, obs := range s.observers {
		obs.OnFinish(res)
	}
	return res
}

// Run steps until the tracker stops the run or ctx is cancelled. On
// cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.Start(); err != nil {
		return nil, err
	}

	for {
		reason, err := s.Next(ctx)
		if err != nil {
			if reason == StopCancelled {
				return s.Finish(), err
			}
			return nil, err
		}
		if reason != StopRunning {
			return s.Finish(), nil
		}
	}
}

// Reference evaluates the error reference at time t into a new slice.
func (s *Simulator) Reference(t float64) []float64 {
	a := make([]float64, s.params.N)
	s.ref.Eval(nil, a, s.params.Dx, t)
	return a
}

// HasClosedForm reports whether Reference is the true transient solution.
func (s *Simulator) HasClosedForm() bool { return s.ref.HasClosedForm() }
