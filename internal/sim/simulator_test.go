package sim_test

import (
	"context"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heatsim/internal/conditions"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/schemes"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
)

// baseConfig has 10 points, dx = 1/9 and a power-of-two dt so that the
// fixed-time loop takes exactly maxt/dt steps.
func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Dt = 0.015625
	cfg.MaxT = 0.125
	cfg.OutEvery = 0
	cfg.NoOutput = true
	return cfg
}

type recorder struct {
	starts, finishes int
	steps            []int
	changes          []float64
	startProfile     []float64
}

func (r *recorder) OnStart(g *heat.Grid) {
	r.starts++
	r.startProfile = append([]float64(nil), g.Prev...)
}

func (r *recorder) OnStep(s sim.Snapshot) {
	r.steps = append(r.steps, s.Step)
	r.changes = append(r.changes, s.Change)
}

func (r *recorder) OnFinish(*sim.Result) { r.finishes++ }

var _ = Describe("Simulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("takes maxt/dt steps in fixed mode", func() {
		s, err := sim.New(baseConfig(), nil)
		Expect(err).NotTo(HaveOccurred())

		rec := &recorder{}
		s.AddObserver(rec)

		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(8))
		Expect(res.Stop).To(Equal(sim.StopTime))
		Expect(res.FinalTime).To(Equal(0.125))
		Expect(res.Algorithm).To(Equal("ftcs"))

		Expect(rec.starts).To(Equal(1))
		Expect(rec.finishes).To(Equal(1))
		Expect(rec.steps).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}))
		Expect(rec.startProfile).To(HaveEach(1.0))
	})

	It("keeps boundaries and matches stepping by hand", func() {
		cfg := baseConfig()
		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		p := cfg.Params()
		stepper := schemes.NewFTCS(p, nil)
		prev := make([]float64, p.N)
		curr := make([]float64, p.N)
		for i := range prev {
			prev[i] = 1
		}
		for k := 0; k < res.Steps; k++ {
			Expect(stepper.Step(curr, prev)).To(Succeed())
			copy(prev, curr)
		}

		Expect(res.Final).To(Equal(curr))
		Expect(res.Final[0]).To(Equal(cfg.BC0))
		Expect(res.Final[p.N-1]).To(Equal(cfg.BC1))
	})

	It("stops at the first step whose change is below maxt squared", func() {
		cfg := baseConfig()
		cfg.Dt = 0.004
		cfg.MaxT = -1e-3
		cfg.MaxSteps = 100000
		cfg.Save = true

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Stop).To(Equal(sim.StopConverged))

		threshold := cfg.Threshold()
		Expect(res.ChangeHistory).To(HaveLen(res.Steps))
		Expect(res.ChangeHistory[res.Steps-1]).To(BeNumerically("<", threshold))
		for k := 0; k < res.Steps-1; k++ {
			Expect(res.ChangeHistory[k]).To(BeNumerically(">=", threshold), "step %d", k+1)
		}

		// Replay with the bare scheme to find the first step independently.
		p := cfg.Params()
		stepper := schemes.NewFTCS(p, nil)
		prev := make([]float64, p.N)
		curr := make([]float64, p.N)
		for i := range prev {
			prev[i] = 1
		}
		first := 0
		for k := 1; k <= cfg.MaxSteps; k++ {
			Expect(stepper.Step(curr, prev)).To(Succeed())
			if heat.L2Norm(curr, prev) < threshold {
				first = k
				break
			}
			copy(prev, curr)
		}
		Expect(first).To(BeNumerically(">", 1))
		Expect(res.Steps).To(Equal(first))
	})

	It("honours the step cap in threshold mode", func() {
		cfg := baseConfig()
		cfg.MaxT = -1e-12
		cfg.MaxSteps = 25

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(25))
		Expect(res.Stop).To(Equal(sim.StopMaxSteps))
	})

	It("aborts on an unstable explicit step with the step number", func() {
		cfg := baseConfig()
		cfg.Dt = 0.1

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx)
		Expect(res).To(BeNil())
		Expect(err).To(MatchError(heat.ErrUnstable))

		var se *heat.StepError
		Expect(err).To(BeAssignableToTypeOf(se))
		Expect(err.(*heat.StepError).Step).To(Equal(1))
	})

	It("rejects invalid configuration before allocating", func() {
		cfg := baseConfig()
		cfg.IC = "spikes(0,1)"
		_, err := sim.New(cfg, nil)
		Expect(err).To(MatchError(heat.ErrConfig))

		cfg = baseConfig()
		cfg.Algorithm = "leapfrog"
		_, err = sim.New(cfg, nil)
		Expect(err).To(MatchError(heat.ErrConfig))
	})

	It("fails to start on an out of range spike", func() {
		cfg := baseConfig()
		cfg.IC = "spikes(0,5,42)"
		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run(ctx)
		Expect(err).To(MatchError(heat.ErrIndex))
	})

	It("returns the partial result when cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		s, err := sim.New(baseConfig(), nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(cancelled)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).NotTo(BeNil())
		Expect(res.Stop).To(Equal(sim.StopCancelled))
		Expect(res.Steps).To(BeZero())
	})

	It("counts arithmetic and allocations", func() {
		cfg := baseConfig()
		cfg.Save = true
		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		n, _ := cfg.Grid()
		Expect(res.Counts.Bytes).To(Equal(int64(3 * n * 8)))
		Expect(res.Counts.Mults).To(BeNumerically(">", 0))
		Expect(res.Counts.Adds).To(BeNumerically(">", 0))
		Expect(res.Counts.Divs).To(BeNumerically(">=", res.Steps))
	})

	It("counts the reference and error arithmetic when saving", func() {
		plain, err := sim.New(baseConfig(), nil)
		Expect(err).NotTo(HaveOccurred())
		bare, err := plain.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		cfg := baseConfig()
		cfg.Save = true
		saving, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		saved, err := saving.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(saved.Steps).To(Equal(bare.Steps))
		Expect(saved.Final).To(Equal(bare.Final))
		Expect(saved.Counts.Adds).To(BeNumerically(">", bare.Counts.Adds))
		Expect(saved.Counts.Mults).To(BeNumerically(">", bare.Counts.Mults))
		Expect(saved.Counts.Divs).To(BeNumerically(">", bare.Counts.Divs))
	})

	It("rounds the reference to the run precision", func() {
		cfg := baseConfig()
		cfg.IC = "sin(Pi*x)"
		cfg.BC1 = 0
		cfg.Precision = "float"
		cfg.Save = true

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Exact).NotTo(BeEmpty())
		for i, v := range res.Exact {
			Expect(float64(float32(v))).To(Equal(v), "index %d", i)
		}
	})

	It("tracks error against the closed-form sine decay", func() {
		cfg := baseConfig()
		cfg.IC = "sin(Pi*x)"
		cfg.BC1 = 0
		cfg.Dx = 0.02
		cfg.Dt = 0.0005
		cfg.MaxT = 0.1
		cfg.Save = true

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.HasClosedForm()).To(BeTrue())
		res, err := s.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.ErrorHistory).To(HaveLen(res.Steps))
		Expect(res.FinalError).To(BeNumerically("<", 1e-4))
		want := math.Exp(-cfg.Alpha * math.Pi * math.Pi * res.FinalTime)
		mid := (len(res.Exact) - 1) / 2
		Expect(res.Exact[mid]).To(BeNumerically("~", want*math.Sin(math.Pi*float64(mid)*res.Dx), 1e-12))
	})
})

var _ = Describe("CurveWriter", func() {
	It("writes start, periodic, exact, final and history curves", func() {
		dir := GinkgoT().TempDir()
		cfg := baseConfig()
		cfg.Save = true
		cfg.SaveEvery = 4
		cfg.NoOutput = false
		cfg.OutDir = dir
		cfg.ProbName = "run"

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		w := sim.NewCurveWriter(storage.NewCurves(dir, cfg.ProbName), cfg.Dt, cfg.SaveEvery, nil)
		s.AddObserver(w)

		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Failed()).To(BeZero())

		for _, name := range []string{
			"run_soln_00000.curve",
			"run_soln_00004.curve",
			"run_exact_00004.curve",
			"run_soln_00008.curve",
			"run_exact_00008.curve",
			"run_soln_final.curve",
			"run_change.curve",
			"run_error.curve",
		} {
			Expect(filepath.Join(dir, name)).To(BeAnExistingFile())
		}
		Expect(filepath.Join(dir, "run_soln_00002.curve")).NotTo(BeAnExistingFile())
		Expect(w.Written()).To(HaveLen(8))

		final, err := storage.ReadCurve(filepath.Join(dir, "run_soln_final.curve"))
		Expect(err).NotTo(HaveOccurred())
		Expect(final.Y).To(HaveLen(len(res.Final)))
		for i, v := range res.Final {
			Expect(final.Y[i]).To(BeNumerically("~", v, 5e-4*math.Max(math.Abs(v), 1e-3)))
		}

		change, err := storage.ReadCurve(filepath.Join(dir, "run_change.curve"))
		Expect(err).NotTo(HaveOccurred())
		Expect(change.Y).To(HaveLen(res.Steps))
	})

	It("skips curves it cannot write and lets the run finish", func() {
		dir := filepath.Join(GinkgoT().TempDir(), "absent")
		cfg := baseConfig()

		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		w := sim.NewCurveWriter(storage.NewCurves(dir, "x"), cfg.Dt, 1, nil)
		s.AddObserver(w)

		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(8))
		Expect(w.Written()).To(BeEmpty())
		Expect(w.Failed()).To(Equal(1 + 8 + 1))

		_, statErr := os.Stat(dir)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
})

var _ = Describe("Compare", func() {
	It("runs each algorithm and records failures per algorithm", func() {
		cfg := baseConfig()
		cfg.MaxT = 4

		out, err := sim.Compare(context.Background(), cfg, []string{"ftcs", "crankn", "upwind15", "leapfrog"}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(4))

		for _, c := range out[:3] {
			Expect(c.Err).NotTo(HaveOccurred(), c.Algorithm)
			Expect(c.Result.Algorithm).To(Equal(c.Algorithm))
			Expect(c.ClosedForm).To(BeFalse())
			// Long enough to settle onto the steady line.
			Expect(c.MaxDiff).To(BeNumerically("<", 5e-3), c.Algorithm)
		}
		Expect(out[3].Err).To(MatchError(heat.ErrConfig))
		Expect(math.IsNaN(out[3].MaxDiff)).To(BeTrue())
	})

	It("builds run metadata", func() {
		cfg := baseConfig()
		s, err := sim.New(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		meta := sim.Metadata(cfg, s, res, []string{"a.curve"})
		Expect(meta.ID).To(Equal("heat"))
		Expect(meta.N).To(Equal(10))
		Expect(meta.Steps).To(Equal(8))
		Expect(meta.StopReason).To(Equal("time limit"))
		Expect(meta.R).To(BeNumerically("~", s.Params().R(), 1e-15))
	})
})

var _ = Describe("Reference", func() {
	It("uses the steady line when no closed form applies", func() {
		r := conditions.Reference{Alpha: 0.2, BC0: 0, BC1: 1, Length: 1}
		a := make([]float64, 5)
		r.Eval(nil, a, 0.25, 10)
		Expect(a).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})
})
