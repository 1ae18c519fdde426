package flow

import "github.com/san-kum/slopefield/internal/field"

// DefaultRadiusScale converts speed to trail radius.
const DefaultRadiusScale = 8.0

// State is the complete simulation state. The host owns it and may remove
// the marker (set it to nil) or delete segments between ticks.
type State struct {
	Dt          float64
	RadiusScale float64
	Field       field.Field
	Detector    Detector
	Integrator  *Euler
	Trails      *TrailManager
	Marker      *Marker

	ticks int
}

func NewState(f field.Field, dt, radiusScale float64, det Detector, marker *Marker) *State {
	return &State{
		Dt:          dt,
		RadiusScale: radiusScale,
		Field:       f,
		Detector:    det,
		Integrator:  NewEuler(),
		Trails:      NewTrailManager(),
		Marker:      marker,
	}
}

// Ticks returns how many times Tick has been called.
func (s *State) Ticks() int { return s.ticks }

// Tick performs one discrete update. It never leaves the state in a shape
// the next tick cannot handle; a field evaluation failure only skips this
// tick's integration and is returned wrapped in *TickError.
func (s *State) Tick() (Step, error) {
	s.ticks++

	mk := s.Marker
	if mk == nil {
		return Step{Kind: Skipped}, nil
	}

	if !s.Trails.IsActive(mk.Active) {
		id := s.Trails.Open(mk.Pos)
		mk.Active = id
		mk.Prev = mk.Pos
		return Step{Kind: Opened, Segment: id, Pos: mk.Pos}, nil
	}

	motion := s.Detector.Classify(mk.Pos, mk.Prev)
	if motion == External {
		id := s.Trails.Open(mk.Pos)
		mk.Active = id
		mk.Prev = mk.Pos
		return Step{Kind: Perturbed, Motion: External, Segment: id, Pos: mk.Pos}, nil
	}

	next, err := s.Integrator.Step(mk.Pos, s.Dt, s.Field)
	if err != nil {
		return Step{Kind: Faulted, Motion: Normal, Segment: mk.Active, Pos: mk.Pos},
			&TickError{Tick: s.ticks, Pos: mk.Pos, Wrapped: err}
	}

	speed := PlanarDistance(next, mk.Prev)
	radius := speed * s.RadiusScale
	if err := s.Trails.Append(mk.Active, next, radius); err != nil {
		return Step{Kind: Faulted, Motion: Normal, Segment: mk.Active, Pos: mk.Pos},
			&TickError{Tick: s.ticks, Pos: mk.Pos, Wrapped: err}
	}
	mk.Pos[0] = next[0]
	mk.Pos[1] = next[1]
	mk.Prev = mk.Pos

	return Step{
		Kind:    Advanced,
		Motion:  Normal,
		Segment: mk.Active,
		Pos:     mk.Pos,
		Speed:   speed,
		Radius:  radius,
	}, nil
}
