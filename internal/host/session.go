package host

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/flow"
)

// Stats counts tick outcomes since the last Reset.
type Stats struct {
	Ticks       int
	Advanced    int
	Opened      int
	Perturbed   int
	Faults      int
	Skipped     int
	MaxSpeed    float64
	LastSpeed   float64
	LastFault   error
	LastSegment flow.SegmentID
}

// Session owns one simulation and its tick subscription.
type Session struct {
	cfg   *config.Config
	field field.Field
	sched *Scheduler
	log   zerolog.Logger

	state *flow.State
	token Token
	stats Stats
	last  flow.Step
}

// NewSession validates cfg and builds the initial state. The tick handler
// is not installed until Install is called.
func NewSession(cfg *config.Config, f field.Field, sched *Scheduler, log zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("host: nil field")
	}
	s := &Session{
		cfg:   cfg,
		field: f,
		sched: sched,
		log:   log,
	}
	s.state = s.newState()
	return s, nil
}

func (s *Session) newState() *flow.State {
	start := flow.Position{s.cfg.Marker.X, s.cfg.Marker.Y, s.cfg.Marker.Z}
	return flow.NewState(
		s.field,
		s.cfg.Dt,
		s.cfg.Trail.RadiusScale,
		flow.NewDetector(s.cfg.Threshold),
		flow.NewMarker(start),
	)
}

// Install subscribes the tick handler, first dropping any handler this
// session installed before, so repeated calls leave exactly one.
func (s *Session) Install() {
	s.Uninstall()
	s.token = s.sched.Subscribe(s.tick)
	s.log.Debug().Uint64("token", uint64(s.token)).Msg("tick handler installed")
}

func (s *Session) Uninstall() {
	if s.token == 0 {
		return
	}
	s.sched.Unsubscribe(s.token)
	s.token = 0
}

// Installed reports whether the session currently has a live handler.
func (s *Session) Installed() bool { return s.token != 0 }

// Reset rebuilds the simulation from the configuration and reinstalls the
// handler.
func (s *Session) Reset() {
	s.state = s.newState()
	s.stats = Stats{}
	s.last = flow.Step{}
	s.Install()
	s.log.Info().Str("field", s.cfg.Field).
		Float64("x", s.cfg.Marker.X).Float64("y", s.cfg.Marker.Y).
		Msg("session reset")
}

func (s *Session) tick() {
	step, err := s.state.Tick()
	s.last = step
	s.stats.Ticks++

	switch step.Kind {
	case flow.Skipped:
		s.stats.Skipped++
	case flow.Opened:
		s.stats.Opened++
		s.stats.LastSegment = step.Segment
		s.log.Debug().Uint64("segment", uint64(step.Segment)).
			Float64("x", step.Pos[0]).Float64("y", step.Pos[1]).
			Msg("trail opened")
	case flow.Perturbed:
		s.stats.Perturbed++
		s.stats.LastSegment = step.Segment
		s.log.Debug().Uint64("segment", uint64(step.Segment)).
			Float64("x", step.Pos[0]).Float64("y", step.Pos[1]).
			Msg("external move, new trail")
	case flow.Advanced:
		s.stats.Advanced++
		s.stats.LastSpeed = step.Speed
		if step.Speed > s.stats.MaxSpeed {
			s.stats.MaxSpeed = step.Speed
		}
	case flow.Faulted:
		s.stats.Faults++
		s.stats.LastFault = err
	}

	if err != nil {
		s.log.Warn().Err(err).Int("tick", s.state.Ticks()).Msg("tick skipped")
	}
}

// Step advances the scheduler by one frame.
func (s *Session) Step() bool {
	return s.sched.Advance()
}

// Run advances n frames.
func (s *Session) Run(n int) {
	for i := 0; i < n; i++ {
		s.sched.Advance()
	}
}

// MoveMarker displaces the marker from outside the simulation.
func (s *Session) MoveMarker(x, y float64) error {
	if s.state.Marker == nil {
		return flow.ErrMissingMarker
	}
	s.state.Marker.MoveTo(x, y)
	return nil
}

// NudgeMarker moves the marker by (dx, dy).
func (s *Session) NudgeMarker(dx, dy float64) error {
	mk := s.state.Marker
	if mk == nil {
		return flow.ErrMissingMarker
	}
	return s.MoveMarker(mk.Pos[0]+dx, mk.Pos[1]+dy)
}

// RemoveMarker deletes the marker from the scene. Subsequent ticks are
// no-ops.
func (s *Session) RemoveMarker() {
	s.state.Marker = nil
}

// DeleteSegment removes a trail segment. Deleting the active one makes the
// next tick open a fresh segment.
func (s *Session) DeleteSegment(id flow.SegmentID) bool {
	return s.state.Trails.Delete(id)
}

// DeleteActiveSegment removes whichever segment is currently being drawn.
func (s *Session) DeleteActiveSegment() bool {
	seg, ok := s.state.Trails.Active()
	if !ok {
		return false
	}
	return s.DeleteSegment(seg.ID())
}

func (s *Session) State() *flow.State     { return s.state }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Field() field.Field     { return s.field }
func (s *Session) Stats() Stats           { return s.stats }
func (s *Session) Last() flow.Step        { return s.last }
func (s *Session) Scheduler() *Scheduler  { return s.sched }

// IsFieldError reports whether err came from an undefined slope.
func IsFieldError(err error) bool {
	var evalErr *field.EvaluationError
	return errors.As(err, &evalErr)
}
