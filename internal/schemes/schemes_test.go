package schemes_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/heatsim/internal/heat"
	"github.com/san-kum/heatsim/internal/numeric"
	"github.com/san-kum/heatsim/internal/schemes"
)

// params returns a grid on [0, 1] with the given point count and r.
func params(n int, r, bc0, bc1 float64) heat.Params {
	dx := 1.0 / float64(n-1)
	alpha := 0.2
	return heat.Params{N: n, Alpha: alpha, Dx: dx, Dt: r * dx * dx / alpha, BC0: bc0, BC1: bc1}
}

// exactR returns unit spacing parameters where r equals alpha exactly.
func exactR(n int, r float64) heat.Params {
	return heat.Params{N: n, Alpha: r, Dx: 1, Dt: 1, BC1: 1}
}

func randomProfile(rng *rand.Rand, n int) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = rng.Float64()*20 - 10
	}
	return a
}

func linear(n int, bc0, bc1 float64) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = bc0 + (bc1-bc0)*float64(i)/float64(n-1)
	}
	return a
}

func sentinel(n int) []float64 {
	a := make([]float64, n)
	for i := range a {
		a[i] = -999
	}
	return a
}

func run(s heat.Stepper, prev []float64, steps int) []float64 {
	prev = append([]float64(nil), prev...)
	curr := make([]float64, len(prev))
	for k := 0; k < steps; k++ {
		Expect(s.Step(curr, prev)).To(Succeed())
		copy(prev, curr)
	}
	return curr
}

var _ = Describe("FTCS", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(1))
	})

	It("writes both boundary values exactly for every grid size", func() {
		for n := 3; n <= 40; n++ {
			p := params(n, 0.4, rng.Float64(), -rng.Float64())
			curr := make([]float64, n)
			Expect(schemes.NewFTCS(p, nil).Step(curr, randomProfile(rng, n))).To(Succeed())
			Expect(curr[0]).To(Equal(p.BC0))
			Expect(curr[n-1]).To(Equal(p.BC1))
		}
	})

	It("applies the centred stencil to interior points", func() {
		p := params(5, 0.25, 0, 0)
		prev := []float64{0, 1, 2, 4, 0}
		curr := make([]float64, 5)
		Expect(schemes.NewFTCS(p, nil).Step(curr, prev)).To(Succeed())

		r := p.R()
		for i := 1; i < 4; i++ {
			want := r*prev[i+1] + (1-2*r)*prev[i] + r*prev[i-1]
			Expect(curr[i]).To(BeNumerically("~", want, 1e-14))
		}
	})

	DescribeTable("rejects r at or above the bound regardless of contents",
		func(r float64) {
			for trial := 0; trial < 20; trial++ {
				n := 3 + rng.Intn(30)
				p := exactR(n, r)
				curr := sentinel(n)

				err := schemes.NewFTCS(p, nil).Step(curr, randomProfile(rng, n))
				Expect(err).To(MatchError(heat.ErrUnstable))

				var se *heat.StabilityError
				Expect(err).To(BeAssignableToTypeOf(se))
				Expect(curr).To(Equal(sentinel(n)), "target buffer must be untouched")
			}
		},
		Entry("exactly at the bound", 0.5),
		Entry("just above", 0.5000001),
		Entry("far above", 3.0),
	)

	It("keeps a linear profile fixed", func() {
		n := 11
		p := params(n, 0.45, 1, 3)
		got := run(schemes.NewFTCS(p, nil), linear(n, 1, 3), 50)
		Expect(floats.Distance(got, linear(n, 1, 3), math.Inf(1))).To(BeNumerically("<", 1e-12))
	})

	It("counts its arithmetic without changing the result", func() {
		n := 9
		p := params(n, 0.3, 0, 1)
		prev := randomProfile(rng, n)

		plain := make([]float64, n)
		counted := make([]float64, n)
		c := numeric.NewCounter(numeric.Double)
		Expect(schemes.NewFTCS(p, nil).Step(plain, prev)).To(Succeed())
		Expect(schemes.NewFTCS(p, c).Step(counted, prev)).To(Succeed())

		Expect(counted).To(Equal(plain))
		Expect(c.Counts().Mults).To(BeNumerically(">", int64(3*(n-2))))
	})
})

var _ = Describe("Upwind15", func() {
	It("guards r at the same strictness as FTCS", func() {
		p := exactR(11, schemes.UpwindLimit)
		curr := sentinel(11)
		err := schemes.NewUpwind15(p, nil).Step(curr, linear(11, 0, 1))
		Expect(err).To(MatchError(heat.ErrUnstable))
		Expect(curr).To(Equal(sentinel(11)))
	})

	It("accepts r between the FTCS and upwind bounds", func() {
		p := params(11, 0.8, 0, 1)
		curr := make([]float64, 11)
		Expect(schemes.NewUpwind15(p, nil).Step(curr, linear(11, 0, 1))).To(Succeed())
	})

	DescribeTable("sweeps in either direction and keeps the boundaries",
		func(bc0, bc1 float64) {
			n := 21
			p := params(n, 0.6, bc0, bc1)
			prev := make([]float64, n)
			prev[0], prev[n-1] = bc0, bc1

			curr := run(schemes.NewUpwind15(p, nil), prev, 1)
			Expect(curr[0]).To(Equal(bc0))
			Expect(curr[n-1]).To(Equal(bc1))

			lo, hi := math.Min(bc0, bc1), math.Max(bc0, bc1)
			for _, v := range curr {
				Expect(v).To(BeNumerically(">=", lo-1e-12))
				Expect(v).To(BeNumerically("<=", hi+1e-12))
			}
		},
		Entry("hot left end", 5.0, 0.0),
		Entry("hot right end", 0.0, 5.0),
	)

	It("keeps a linear profile fixed", func() {
		n := 15
		p := params(n, 0.7, -2, 4)
		got := run(schemes.NewUpwind15(p, nil), linear(n, -2, 4), 40)
		Expect(floats.Distance(got, linear(n, -2, 4), math.Inf(1))).To(BeNumerically("<", 1e-12))
	})
})

var _ = Describe("Crank-Nicholson", func() {
	It("builds a tridiagonal matrix with identity boundary rows", func() {
		p := params(6, 0.8, 0, 0)
		m := schemes.NewCNMatrix(p.N, p.Alpha, p.Dx, p.Dt)
		r := p.R()

		Expect(m.Size()).To(Equal(6))
		Expect(m.At(0, 0)).To(Equal(1.0))
		Expect(m.At(0, 1)).To(Equal(0.0))
		Expect(m.At(5, 5)).To(Equal(1.0))
		Expect(m.At(5, 4)).To(Equal(0.0))
		for i := 1; i < 5; i++ {
			Expect(m.At(i, i)).To(BeNumerically("~", 1+r, 1e-14))
			Expect(m.At(i, i-1)).To(BeNumerically("~", -r/2, 1e-14))
			Expect(m.At(i, i+1)).To(BeNumerically("~", -r/2, 1e-14))
		}
		Expect(m.At(1, 3)).To(Equal(0.0))
	})

	It("produces a solution of the implicit system", func() {
		n := 12
		p := params(n, 2.5, 1, -1)
		rng := rand.New(rand.NewSource(3))
		prev := randomProfile(rng, n)
		prev[0], prev[n-1] = p.BC0, p.BC1

		cn := schemes.NewCrankNicholson(p, nil)
		curr := make([]float64, n)
		Expect(cn.Step(curr, prev)).To(Succeed())

		// A·curr must equal the explicit half evaluated on prev.
		r := p.R()
		var lhs mat.VecDense
		lhs.MulVec(cn.Matrix().Band(), mat.NewVecDense(n, curr))
		Expect(lhs.AtVec(0)).To(BeNumerically("~", p.BC0, 1e-12))
		Expect(lhs.AtVec(n - 1)).To(BeNumerically("~", p.BC1, 1e-12))
		for i := 1; i < n-1; i++ {
			want := r/2*prev[i-1] + (1-r)*prev[i] + r/2*prev[i+1]
			Expect(lhs.AtVec(i)).To(BeNumerically("~", want, 1e-10))
		}
	})

	It("stays bounded far beyond the explicit limit", func() {
		n := 21
		p := params(n, 50, 0, 0)
		rng := rand.New(rand.NewSource(9))
		prev := randomProfile(rng, n)
		prev[0], prev[n-1] = 0, 0
		got := run(schemes.NewCrankNicholson(p, nil), prev, 200)
		Expect(floats.Norm(got, 2)).To(BeNumerically("<=", floats.Norm(prev, 2)+1e-12))
		Expect(got[0]).To(Equal(0.0))
		Expect(got[n-1]).To(Equal(0.0))
	})

	It("reaches the same steady state as FTCS", func() {
		n := 11
		p := heat.Params{N: n, Alpha: 0.2, Dx: 0.1, Dt: 0.004, BC0: 0, BC1: 1}
		start := make([]float64, n)
		for i := range start {
			start[i] = 1
		}

		ftcs := run(schemes.NewFTCS(p, nil), start, 5000)
		cn := run(schemes.NewCrankNicholson(p, nil), start, 5000)
		steady := linear(n, 0, 1)

		Expect(floats.Distance(ftcs, cn, math.Inf(1))).To(BeNumerically("<", 1e-6))
		Expect(floats.Distance(cn, steady, math.Inf(1))).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("Registry", func() {
	It("lists the algorithms", func() {
		Expect(schemes.Names()).To(Equal([]string{"crankn", "ftcs", "upwind15"}))
	})

	It("builds each registered scheme under its own name", func() {
		for _, name := range schemes.Names() {
			s, err := schemes.New(name, params(5, 0.1, 0, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name()).To(Equal(name))
		}
	})

	It("rejects unknown algorithms with a config error", func() {
		_, err := schemes.New("leapfrog", params(5, 0.1, 0, 1), nil)
		Expect(err).To(MatchError(heat.ErrConfig))
		Expect(err.Error()).To(ContainSubstring("leapfrog"))
	})

	It("reports explicit limits", func() {
		Expect(schemes.Limit("ftcs")).To(Equal(0.5))
		Expect(schemes.Limit("upwind15")).To(Equal(1.0))
		Expect(schemes.Limit("crankn")).To(BeZero())
	})
})
