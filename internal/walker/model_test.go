package walker_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/randwalk/internal/walker"
)

var _ = Describe("SideFor", func() {
	DescribeTable("largest side whose square fits the population",
		func(n, side int) {
			Expect(walker.SideFor(n)).To(Equal(side))
		},
		Entry("N=100", 100, 10),
		Entry("N=5", 5, 2),
		Entry("N=500", 500, 22),
		Entry("N=1", 1, 1),
		Entry("N=3", 3, 1),
		Entry("N=4", 4, 2),
		Entry("N=99", 99, 9),
		Entry("N=0", 0, 0),
		Entry("N=MaxInt64", math.MaxInt64, 3037000499),
		Entry("N=3037000499^2", 3037000499*3037000499, 3037000499),
		Entry("N=3037000499^2-1", 3037000499*3037000499-1, 3037000498),
	)
})

var _ = Describe("Model", func() {
	Describe("construction", func() {
		It("places exactly one walker inside the grid", func() {
			for seed := int64(0); seed < 200; seed++ {
				m, err := walker.New(50, 0.5, walker.Periodic, rand.New(rand.NewSource(seed)))
				Expect(err).NotTo(HaveOccurred())

				pos, ok := m.Position()
				Expect(ok).To(BeTrue())
				Expect(pos.X).To(BeNumerically(">=", 0))
				Expect(pos.X).To(BeNumerically("<", m.Side()))
				Expect(pos.Y).To(BeNumerically(">=", 0))
				Expect(pos.Y).To(BeNumerically("<", m.Side()))

				g := m.Grid()
				Expect(g.Occupied()).To(Equal(1))
				Expect(g.At(pos.X, pos.Y)).To(Equal(uint8(1)))
			}
		})

		It("draws x before y", func() {
			src := &scriptedSource{ints: []int{2, 1}}
			m, err := walker.New(9, 0.5, walker.Periodic, src)
			Expect(err).NotTo(HaveOccurred())
			pos, _ := m.Position()
			Expect(pos).To(Equal(walker.Position{X: 2, Y: 1}))
			Expect(m.Grid().Rows()[1][2]).To(Equal(uint8(1)))
		})

		It("keeps hop probability and boundary", func() {
			m, err := walker.New(16, 0.25, walker.Absorbing, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())
			Expect(m.HopProbability()).To(Equal(0.25))
			Expect(m.Boundary()).To(Equal(walker.Absorbing))
			Expect(m.Side()).To(Equal(4))
		})

		DescribeTable("rejects invalid parameters",
			func(n int, hop float64, b walker.Boundary) {
				m, err := walker.New(n, hop, b, rand.New(rand.NewSource(1)))
				Expect(err).To(MatchError(walker.ErrInvalidParameter))
				Expect(m).To(BeNil())
			},
			Entry("zero population", 0, 0.5, walker.Periodic),
			Entry("negative population", -4, 0.5, walker.Periodic),
			Entry("negative hop", 10, -0.1, walker.Periodic),
			Entry("hop above one", 10, 1.01, walker.Periodic),
			Entry("NaN hop", 10, math.NaN(), walker.Periodic),
			Entry("unknown boundary", 10, 0.5, walker.Boundary(9)),
			Entry("mirror on a single cell", 3, 0.5, walker.Mirror),
			Entry("grid too large to allocate", math.MaxInt64, 0.5, walker.Periodic),
			Entry("side one past the limit", (walker.MaxSide+1)*(walker.MaxSide+1), 0.5, walker.Periodic),
		)

		It("accepts the largest allowed side", func() {
			m, err := walker.New(walker.MaxSide*walker.MaxSide, 0.5, walker.Periodic, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Side()).To(Equal(walker.MaxSide))
		})

		It("rejects a nil source", func() {
			m, err := walker.New(10, 0.5, walker.Periodic, nil)
			Expect(err).To(MatchError(walker.ErrInvalidParameter))
			Expect(m).To(BeNil())
		})

		It("rejects a start cell outside the grid", func() {
			m, err := walker.NewAt(9, 0.5, walker.Periodic, &scriptedSource{}, walker.Position{X: 3, Y: 0})
			Expect(err).To(MatchError(walker.ErrInvalidParameter))
			Expect(m).To(BeNil())
		})

		It("accepts a single cell for periodic and absorbing", func() {
			for _, b := range []walker.Boundary{walker.Periodic, walker.Absorbing} {
				m, err := walker.New(1, 1, b, &scriptedSource{})
				Expect(err).NotTo(HaveOccurred())
				Expect(m.Side()).To(Equal(1))
			}
		})
	})

	Describe("Step", func() {
		It("never moves with hop probability zero", func() {
			m, err := walker.New(100, 0, walker.Absorbing, rand.New(rand.NewSource(3)))
			Expect(err).NotTo(HaveOccurred())
			before := m.Grid()
			start, _ := m.Position()

			for i := 0; i < 1000; i++ {
				Expect(m.Step()).To(Equal(walker.Outcome{Kind: walker.Stayed}))
			}
			Expect(m.Grid()).To(Equal(before))
			pos, ok := m.Position()
			Expect(ok).To(BeTrue())
			Expect(pos).To(Equal(start))
		})

		It("stays when the hop draw equals the probability", func() {
			src := &scriptedSource{floats: []float64{0.5}}
			m, err := walker.NewAt(9, 0.5, walker.Periodic, src, walker.Position{X: 1, Y: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Step().Kind).To(Equal(walker.Stayed))
			Expect(src.draws).To(Equal(1))
		})

		It("moves in the drawn direction", func() {
			src := &scriptedSource{floats: []float64{0.1}, ints: []int{int(walker.North)}}
			m, err := walker.NewAt(9, 0.5, walker.Periodic, src, walker.Position{X: 1, Y: 1})
			Expect(err).NotTo(HaveOccurred())

			out := m.Step()
			Expect(out).To(Equal(walker.Outcome{Kind: walker.Moved, Pos: walker.Position{X: 1, Y: 2}}))
			g := m.Grid()
			Expect(g.Occupied()).To(Equal(1))
			Expect(g.At(1, 2)).To(Equal(uint8(1)))
			Expect(g.At(1, 1)).To(Equal(uint8(0)))
		})

		It("bounces off the low edge on a 2x2 mirror grid", func() {
			m, err := walker.NewAt(4, 1, walker.Mirror, &scriptedSource{}, walker.Position{X: 0, Y: 0})
			Expect(err).NotTo(HaveOccurred())

			Expect(m.StepToward(walker.West)).To(Equal(walker.Outcome{Kind: walker.Moved, Pos: walker.Position{X: 1, Y: 0}}))
			Expect(m.StepToward(walker.East)).To(Equal(walker.Outcome{Kind: walker.Moved, Pos: walker.Position{X: 0, Y: 0}}))
		})

		It("absorbs a walker leaving through the west edge", func() {
			m, err := walker.NewAt(9, 1, walker.Absorbing, &scriptedSource{}, walker.Position{X: 0, Y: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(m.StepToward(walker.West).Kind).To(Equal(walker.Absorbed))
			Expect(m.Absorbed()).To(BeTrue())
			Expect(m.Grid().Occupied()).To(BeZero())
			_, ok := m.Position()
			Expect(ok).To(BeFalse())
		})

		It("absorbs within side steps when driven toward an edge", func() {
			m, err := walker.NewAt(25, 1, walker.Absorbing, &scriptedSource{}, walker.Position{X: 4, Y: 2})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 4; i++ {
				Expect(m.StepToward(walker.West).Kind).To(Equal(walker.Moved))
			}
			Expect(m.StepToward(walker.West).Kind).To(Equal(walker.Absorbed))
			Expect(m.Grid().Occupied()).To(BeZero())
		})

		It("eventually absorbs with hop probability one", func() {
			m, err := walker.New(25, 1, walker.Absorbing, rand.New(rand.NewSource(11)))
			Expect(err).NotTo(HaveOccurred())

			absorbed := false
			for i := 0; i < 100000 && !absorbed; i++ {
				absorbed = m.Step().Kind == walker.Absorbed
			}
			Expect(absorbed).To(BeTrue())
			Expect(m.Grid().Occupied()).To(BeZero())
		})

		It("stays absorbed without drawing", func() {
			src := &scriptedSource{}
			m, err := walker.NewAt(4, 1, walker.Absorbing, src, walker.Position{X: 0, Y: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.StepToward(walker.South).Kind).To(Equal(walker.Absorbed))

			draws := src.draws
			for i := 0; i < 10; i++ {
				Expect(m.Step().Kind).To(Equal(walker.Absorbed))
			}
			Expect(src.draws).To(Equal(draws))
			Expect(m.Grid().Occupied()).To(BeZero())
		})

		It("keeps the single cell occupied on a periodic 1x1 grid", func() {
			m, err := walker.New(1, 1, walker.Periodic, &scriptedSource{ints: []int{0, 0, 2}})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Step()).To(Equal(walker.Outcome{Kind: walker.Moved, Pos: walker.Position{}}))
			Expect(m.Grid().Occupied()).To(Equal(1))
		})

		It("keeps exactly one occupied cell on non-absorbing grids", func() {
			for _, b := range []walker.Boundary{walker.Periodic, walker.Mirror} {
				m, err := walker.New(30, 0.7, b, rand.New(rand.NewSource(5)))
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 2000; i++ {
					m.Step()
					pos, ok := m.Position()
					Expect(ok).To(BeTrue())
					g := m.Grid()
					Expect(g.Occupied()).To(Equal(1))
					Expect(g.At(pos.X, pos.Y)).To(Equal(uint8(1)))
				}
			}
		})
	})

	Describe("determinism", func() {
		It("replays identically from the same seed", func() {
			for _, b := range walker.Boundaries() {
				a, err := walker.New(64, 0.6, b, rand.New(rand.NewSource(99)))
				Expect(err).NotTo(HaveOccurred())
				c, err := walker.New(64, 0.6, b, rand.New(rand.NewSource(99)))
				Expect(err).NotTo(HaveOccurred())

				for i := 0; i < 500; i++ {
					Expect(a.Step()).To(Equal(c.Step()))
				}
				Expect(a.Grid()).To(Equal(c.Grid()))
			}
		})
	})
})
