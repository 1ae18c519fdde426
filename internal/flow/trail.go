package flow

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// SegmentID identifies a trail segment. The zero value means "none".
type SegmentID uint64

// Sample is one trail point and the radius the trail has there.
type Sample struct {
	Pos    Position
	Radius float64
}

// Segment is a continuous run of trail samples. It always holds at least
// the sample it was opened with and only grows while it is active.
type Segment struct {
	id      SegmentID
	samples []Sample
	sealed  bool
}

func (s *Segment) ID() SegmentID { return s.id }
func (s *Segment) Len() int      { return len(s.samples) }

// Sealed reports whether a newer segment has superseded this one.
func (s *Segment) Sealed() bool { return s.sealed }

func (s *Segment) At(i int) Sample { return s.samples[i] }
func (s *Segment) Last() Sample    { return s.samples[len(s.samples)-1] }

// Samples returns a copy of the segment's points in order.
func (s *Segment) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// TrailManager owns every trail segment, in the order they were opened.
// Only the most recently opened segment accepts samples.
type TrailManager struct {
	segments *orderedmap.OrderedMap[SegmentID, *Segment]
	lastID   SegmentID
	active   SegmentID
}

func NewTrailManager() *TrailManager {
	return &TrailManager{
		segments: orderedmap.NewOrderedMap[SegmentID, *Segment](),
	}
}

// Open starts a new active segment seeded with loc and seals the previous
// one.
func (m *TrailManager) Open(loc Position) SegmentID {
	if prev, ok := m.segments.Get(m.active); ok {
		prev.sealed = true
	}

	m.lastID++
	seg := &Segment{
		id:      m.lastID,
		samples: make([]Sample, 1, 64),
	}
	seg.samples[0] = Sample{Pos: loc}

	m.segments.Set(seg.id, seg)
	m.active = seg.id
	return seg.id
}

// Append adds a sample to the active segment. It returns ErrStaleSegment
// when id is not the active segment; the caller is expected to Open a new
// one.
func (m *TrailManager) Append(id SegmentID, loc Position, radius float64) error {
	seg, ok := m.segments.Get(id)
	if !ok || id != m.active || seg.sealed {
		return fmt.Errorf("%w: %d", ErrStaleSegment, id)
	}
	seg.samples = append(seg.samples, Sample{Pos: loc, Radius: radius})
	return nil
}

func (m *TrailManager) Get(id SegmentID) (*Segment, bool) {
	return m.segments.Get(id)
}

// Active returns the segment currently accepting samples, if any.
func (m *TrailManager) Active() (*Segment, bool) {
	return m.segments.Get(m.active)
}

// IsActive reports whether id names the live, appendable segment.
func (m *TrailManager) IsActive(id SegmentID) bool {
	if id == 0 || id != m.active {
		return false
	}
	_, ok := m.segments.Get(id)
	return ok
}

// Delete removes a segment. Deleting the active segment leaves the manager
// without one until the next Open.
func (m *TrailManager) Delete(id SegmentID) bool {
	if !m.segments.Delete(id) {
		return false
	}
	if id == m.active {
		m.active = 0
	}
	return true
}

// Segments returns all segments, oldest first.
func (m *TrailManager) Segments() []*Segment {
	out := make([]*Segment, 0, m.segments.Len())
	for el := m.segments.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func (m *TrailManager) Len() int {
	return m.segments.Len()
}

// Points returns the total number of samples across all segments.
func (m *TrailManager) Points() int {
	n := 0
	for el := m.segments.Front(); el != nil; el = el.Next() {
		n += el.Value.Len()
	}
	return n
}
