package sim

import (
	"go.uber.org/zap"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/logging"
	"github.com/san-kum/heatsim/internal/storage"
)

// CurveWriter is an observer that persists snapshots as curve files. Write
// failures are logged and skipped.
type CurveWriter struct {
	curves    *storage.Curves
	dt        float64
	saveEvery int
	logger    *zap.Logger

	written []string
	failed  int
}

func NewCurveWriter(curves *storage.Curves, dt float64, saveEvery int, logger *zap.Logger) *CurveWriter {
	return &CurveWriter{
		curves:    curves,
		dt:        dt,
		saveEvery: saveEvery,
		logger:    logging.OrNop(logger),
		written:   make([]string, 0),
	}
}

// Written lists the files written so far.
func (w *CurveWriter) Written() []string { return w.written }

// Failed is the number of files that could not be written.
func (w *CurveWriter) Failed() int { return w.failed }

func (w *CurveWriter) OnStart(g *heat.Grid) {
	path := w.curves.KindPath(storage.KindStart)
	w.record(path, w.curves.WriteSoln(path, g.Dx, g.Prev))
}

func (w *CurveWriter) OnStep(s Snapshot) {
	if w.saveEvery <= 0 || s.Step%w.saveEvery != 0 {
		return
	}
	g := s.Grid
	if g.Saving() {
		path := w.curves.ExactPath(s.Step)
		w.record(path, w.curves.WriteExact(path, g.Dx, g.Exact))
	}
	path := w.curves.SolnPath(s.Step)
	w.record(path, w.curves.WriteSoln(path, g.Dx, g.Curr))
}

func (w *CurveWriter) OnFinish(r *Result) {
	path := w.curves.KindPath(storage.KindFinal)
	w.record(path, w.curves.WriteSoln(path, r.Dx, r.Final))

	if r.ChangeHistory == nil {
		return
	}
	w.record(w.curves.KindPath(storage.KindChange), w.curves.WriteHistory(storage.KindChange, w.dt, r.ChangeHistory))
	w.record(w.curves.KindPath(storage.KindError), w.curves.WriteHistory(storage.KindError, w.dt, r.ErrorHistory))
}

func (w *CurveWriter) record(path string, err error) {
	if err != nil {
		w.failed++
		w.logger.Warn("skipping curve", zap.String("path", path), zap.Error(err))
		return
	}
	w.written = append(w.written, path)
}
