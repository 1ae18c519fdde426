package flow_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/flow"
)

var linear = field.Func(func(x, y float64) float64 { return x - y })

func newState(f field.Field, start flow.Position) *flow.State {
	return flow.NewState(f, 0.05, flow.DefaultRadiusScale, flow.NewDetector(flow.DefaultThreshold), flow.NewMarker(start))
}

func activeLen(st *flow.State) int {
	seg, ok := st.Trails.Active()
	Expect(ok).To(BeTrue())
	return seg.Len()
}

var _ = Describe("State.Tick", func() {
	var st *flow.State

	BeforeEach(func() {
		st = newState(linear, flow.Position{0, 0, 0})
	})

	Context("on the first tick", func() {
		It("opens a segment at the marker without integrating", func() {
			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Opened))
			Expect(st.Marker.Pos).To(Equal(flow.Position{0, 0, 0}))
			Expect(st.Marker.Active).To(Equal(step.Segment))
			Expect(st.Trails.Len()).To(Equal(1))
			Expect(activeLen(st)).To(Equal(1))
		})
	})

	Context("following x - y from the origin", func() {
		It("matches the hand-computed trajectory", func() {
			_, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())

			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Advanced))
			Expect(step.Pos[0]).To(BeNumerically("~", 0.05, 1e-12))
			Expect(step.Pos[1]).To(BeNumerically("~", 0, 1e-12))
			Expect(step.Speed).To(BeNumerically("~", 0.05, 1e-12))
			Expect(step.Radius).To(BeNumerically("~", 0.4, 1e-12))

			step, err = st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Pos[0]).To(BeNumerically("~", 0.10, 1e-12))
			Expect(step.Pos[1]).To(BeNumerically("~", 0.0025, 1e-12))
			Expect(step.Speed).To(BeNumerically("~", math.Hypot(0.05, 0.0025), 1e-12))
			Expect(step.Radius).To(BeNumerically("~", 0.4005, 1e-4))

			seg, _ := st.Trails.Active()
			samples := seg.Samples()
			Expect(samples).To(HaveLen(3))
			Expect(samples[1].Pos).To(Equal(flow.Position{0.05, 0, 0}))
			Expect(samples[2].Radius).To(Equal(step.Radius))
		})

		It("records the applied position as prev", func() {
			for i := 0; i < 4; i++ {
				_, err := st.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(st.Marker.Prev).To(Equal(st.Marker.Pos))
		})
	})

	Context("when the host moves the marker between ticks", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				_, err := st.Tick()
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("opens a new segment seeded at the new position", func() {
			oldID := st.Marker.Active
			st.Marker.MoveTo(3, 3)

			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Perturbed))
			Expect(step.Motion).To(Equal(flow.External))
			Expect(step.Segment).NotTo(Equal(oldID))
			Expect(st.Marker.Active).To(Equal(step.Segment))
			Expect(st.Marker.Prev).To(Equal(flow.Position{3, 3, 0}))

			seg, ok := st.Trails.Active()
			Expect(ok).To(BeTrue())
			Expect(seg.Samples()).To(Equal([]flow.Sample{{Pos: flow.Position{3, 3, 0}}}))

			old, ok := st.Trails.Get(oldID)
			Expect(ok).To(BeTrue())
			Expect(old.Sealed()).To(BeTrue())
			Expect(old.Len()).To(Equal(3))
		})

		It("does not integrate on the perturbed tick", func() {
			st.Marker.MoveTo(3, 3)
			_, _ = st.Tick()
			Expect(st.Marker.Pos).To(Equal(flow.Position{3, 3, 0}))
		})

		It("resumes normal flow from the new position", func() {
			st.Marker.MoveTo(3, 3)
			_, _ = st.Tick()

			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Advanced))
			Expect(step.Pos[0]).To(BeNumerically("~", 3.05, 1e-12))
			Expect(step.Pos[1]).To(BeNumerically("~", 3, 1e-12))
			Expect(activeLen(st)).To(Equal(2))
		})

		It("treats a small nudge as normal motion", func() {
			before := activeLen(st)
			st.Marker.MoveTo(st.Marker.Pos[0]+0.1, st.Marker.Pos[1])

			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Advanced))
			Expect(activeLen(st)).To(Equal(before + 1))
			Expect(step.Radius).To(BeNumerically("~", step.Speed*flow.DefaultRadiusScale, 1e-12))
		})
	})

	Context("when the marker is removed", func() {
		It("does nothing", func() {
			_, _ = st.Tick()
			st.Marker = nil

			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Skipped))
			Expect(st.Trails.Points()).To(Equal(1))
		})
	})

	Context("when the active segment is deleted by the host", func() {
		It("opens a fresh segment without appending", func() {
			_, _ = st.Tick()
			_, _ = st.Tick()
			old := st.Marker.Active
			Expect(st.Trails.Delete(old)).To(BeTrue())

			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Opened))
			Expect(step.Segment).To(BeNumerically(">", old))
			Expect(activeLen(st)).To(Equal(1))
			Expect(st.Marker.Pos[0]).To(BeNumerically("~", 0.05, 1e-12))
		})
	})

	Context("when the field is undefined at the marker", func() {
		var ratio = field.Func(func(x, y float64) float64 { return x / y })

		It("skips integration for that tick only", func() {
			st = newState(ratio, flow.Position{1, 0, 0})
			_, _ = st.Tick()

			step, err := st.Tick()
			Expect(step.Kind).To(Equal(flow.Faulted))

			var tickErr *flow.TickError
			Expect(errors.As(err, &tickErr)).To(BeTrue())
			Expect(tickErr.Pos).To(Equal(flow.Position{1, 0, 0}))

			var evalErr *field.EvaluationError
			Expect(errors.As(err, &evalErr)).To(BeTrue())
			Expect(evalErr.X).To(Equal(1.0))
			Expect(evalErr.Y).To(Equal(0.0))

			Expect(st.Marker.Pos).To(Equal(flow.Position{1, 0, 0}))
			Expect(activeLen(st)).To(Equal(1))

			st.Marker.MoveTo(1, 0.1)
			step, err = st.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(step.Kind).To(Equal(flow.Advanced))
		})
	})

	It("carries the z coordinate through unchanged", func() {
		st = newState(linear, flow.Position{0, 0, 7})
		for i := 0; i < 5; i++ {
			_, _ = st.Tick()
		}
		Expect(st.Marker.Pos[2]).To(Equal(7.0))
		seg, _ := st.Trails.Active()
		for _, s := range seg.Samples() {
			Expect(s.Pos[2]).To(Equal(7.0))
		}
	})

	It("never shrinks a segment and never leaves one empty", func() {
		lens := map[flow.SegmentID]int{}
		for i := 0; i < 60; i++ {
			if i%15 == 7 {
				st.Marker.MoveTo(float64(i%4), -2)
			}
			_, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())

			for _, seg := range st.Trails.Segments() {
				Expect(seg.Len()).To(BeNumerically(">=", 1))
				Expect(seg.Len()).To(BeNumerically(">=", lens[seg.ID()]))
				lens[seg.ID()] = seg.Len()
			}
		}
		Expect(st.Ticks()).To(Equal(60))
	})

	It("keeps radius equal to scale times speed", func() {
		sine := field.Func(func(x, y float64) float64 { return math.Sin(x) - y })
		st = newState(sine, flow.Position{-2, 1, 0})
		for i := 0; i < 40; i++ {
			step, err := st.Tick()
			Expect(err).NotTo(HaveOccurred())
			if step.Kind == flow.Advanced {
				Expect(step.Speed).To(BeNumerically(">=", 0))
				Expect(step.Radius).To(Equal(step.Speed * flow.DefaultRadiusScale))
			}
		}
	})
})
