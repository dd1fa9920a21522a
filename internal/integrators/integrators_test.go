package integrators

import (
	"math"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odestep/internal/dynamo"
)

type solver func(f dynamo.Func, x0 float64, t []float64) (dynamo.Trajectory, error)

type method struct {
	name  string
	solve solver
	order int
}

var methods = []method{
	{"euler", SolveEuler, 1},
	{"rk2", SolveRK2, 2},
	{"rk4", SolveRK4, 4},
}

func constant(c float64) dynamo.Func {
	return func(x, t float64) float64 { return c }
}

func decay(x, t float64) float64 { return -x }

// finalError integrates dx/dt = -x from 1 on [0, 1] with n steps and returns
// the absolute error at t = 1.
func finalError(solve solver, n int) float64 {
	grid, err := dynamo.Linspace(0, 1, n+1)
	Expect(err).NotTo(HaveOccurred())
	x, err := solve(decay, 1, grid)
	Expect(err).NotTo(HaveOccurred())
	return math.Abs(x.Last() - math.Exp(-1))
}

var _ = Describe("fixed-step integrators", func() {
	for _, m := range methods {
		m := m

		Describe(m.name, func() {
			It("starts the trajectory at x0 exactly", func() {
				for _, x0 := range []float64{0, 1.5, -3.25, 1e-300, math.MaxFloat64} {
					x, err := m.solve(cubicSine, x0, []float64{0, 0.1, 0.2})
					Expect(err).NotTo(HaveOccurred())
					Expect(x[0]).To(Equal(x0))
				}
			})

			It("returns one state per grid point", func() {
				for _, n := range []int{2, 3, 17, 1000} {
					grid, err := dynamo.Linspace(0, 5, n)
					Expect(err).NotTo(HaveOccurred())
					x, err := m.solve(cubicSine, 0, grid)
					Expect(err).NotTo(HaveOccurred())
					Expect(x).To(HaveLen(n))
				}
			})

			DescribeTable("rejects invalid grids",
				func(grid []float64) {
					x, err := m.solve(cubicSine, 1, grid)
					Expect(err).To(MatchError(dynamo.ErrInvalidGrid))
					Expect(x).To(BeNil())
				},
				Entry("empty", []float64{}),
				Entry("single point", []float64{0}),
				Entry("zero spacing", []float64{2, 2, 2}),
				Entry("non-uniform spacing", []float64{0, 1, 1.5}),
			)

			It("keeps a zero derivative constant", func() {
				x, err := m.solve(constant(0), 5, []float64{0, 1, 2})
				Expect(err).NotTo(HaveOccurred())
				Expect(x).To(Equal(dynamo.Trajectory{5, 5, 5}))
			})

			It("is exact for unit slope on an integer grid", func() {
				x, err := m.solve(constant(1), 0, []float64{0, 1, 2, 3})
				Expect(err).NotTo(HaveOccurred())
				Expect(x).To(Equal(dynamo.Trajectory{0, 1, 2, 3}))
			})

			It("reproduces x0 + c*t for any constant slope", func() {
				grid, err := dynamo.Linspace(0, 2, 41)
				Expect(err).NotTo(HaveOccurred())
				x, err := m.solve(constant(-2.5), 1.25, grid)
				Expect(err).NotTo(HaveOccurred())
				for i, ti := range grid {
					Expect(x[i]).To(BeNumerically("~", 1.25-2.5*ti, 1e-12))
				}
			})

			It("integrates backward on a decreasing grid", func() {
				grid, err := dynamo.Linspace(1, 0, 201)
				Expect(err).NotTo(HaveOccurred())
				x, err := m.solve(decay, math.Exp(-1), grid)
				Expect(err).NotTo(HaveOccurred())
				Expect(x.Last()).To(BeNumerically("~", 1.0, 0.01))
			})

			It("converges at its nominal order on dx/dt = -x", func() {
				want := math.Pow(2, float64(m.order))
				prev := finalError(m.solve, 10)
				for _, n := range []int{20, 40} {
					e := finalError(m.solve, n)
					ratio := prev / e
					Expect(ratio).To(BeNumerically(">=", want/2), "n=%d", n)
					Expect(ratio).To(BeNumerically("<=", want*2), "n=%d", n)
					prev = e
				}
			})

			It("is deterministic", func() {
				grid, err := dynamo.Linspace(0, 10, 500)
				Expect(err).NotTo(HaveOccurred())
				a, err := m.solve(cubicSine, 0.3, grid)
				Expect(err).NotTo(HaveOccurred())
				b, err := m.solve(cubicSine, 0.3, grid)
				Expect(err).NotTo(HaveOccurred())
				Expect(cmp.Diff(a, b)).To(BeEmpty())
			})

			It("propagates NaN without failing", func() {
				f := func(x, t float64) float64 {
					if t > 0.5 {
						return math.NaN()
					}
					return 1
				}
				x, err := m.solve(f, 0, []float64{0, 0.5, 1.0, 1.5})
				Expect(err).NotTo(HaveOccurred())
				Expect(math.IsNaN(x[3])).To(BeTrue())
			})
		})
	}

	Describe("step formulas", func() {
		It("uses only the midpoint slope in RK2", func() {
			// f = t: k1 = 0, k2 = h*(t+h/2). An averaged scheme would give h*h/2.
			f := func(x, t float64) float64 { return t }
			Expect(NewRK2().Step(f, 0, 0, 0.5)).To(Equal(0.125))
		})

		It("perturbs the third RK4 stage with k2", func() {
			// f = x with h = 1: k1 = 1, k2 = 1.5, k3 = 1.75, k4 = 2.75.
			f := func(x, t float64) float64 { return x }
			Expect(NewRK4().Step(f, 1, 0, 1)).To(BeNumerically("~", 1+(1+3+3.5+2.75)/6, 1e-15))
		})

		It("evaluates the right-hand side once per stage", func() {
			for _, s := range []dynamo.Stepper{NewEuler(), NewRK2(), NewRK4()} {
				calls := 0
				f := func(x, t float64) float64 {
					calls++
					return x
				}
				s.Step(f, 1, 0, 0.1)
				Expect(calls).To(Equal(s.Stages()), s.Name())
			}
		})

		It("reaches e within method accuracy for dx/dt = x", func() {
			grid, err := dynamo.Linspace(0, 1, 101)
			Expect(err).NotTo(HaveOccurred())
			growth := func(x, t float64) float64 { return x }

			x, err := SolveRK4(growth, 1, grid)
			Expect(err).NotTo(HaveOccurred())
			Expect(x.Last()).To(BeNumerically("~", math.E, 1e-8))
		})
	})

	Describe("lookup", func() {
		It("resolves every listed name", func() {
			for _, name := range Names() {
				s, err := New(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Name()).To(Equal(name))
			}
		})

		It("accepts midpoint as an alias of rk2", func() {
			s, err := New("midpoint")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name()).To(Equal("rk2"))
		})

		It("lists methods in increasing order", func() {
			Expect(Names()).To(Equal([]string{"euler", "rk2", "rk4"}))
		})

		It("rejects unknown methods", func() {
			_, err := New("rk45")
			Expect(err).To(MatchError(ErrUnknownMethod))
		})
	})
})
