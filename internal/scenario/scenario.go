// Package scenario scripts outside edits to a running session: moving the
// marker, removing it, or deleting the trail being drawn, each at a given
// tick.
package scenario

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/slopefield/internal/host"
	"gopkg.in/yaml.v3"
)

// Action names accepted in scenario files.
const (
	ActionMove         = "move"
	ActionRemoveMarker = "remove_marker"
	ActionDeleteTrail  = "delete_trail"
)

// Scenario is a scripted headless run.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Ticks       int     `yaml:"ticks"`
	Events      []Event `yaml:"events"`
}

// Event fires before the given tick (1-based) is advanced.
type Event struct {
	Tick   int     `yaml:"tick"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// Load reads and validates a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Ticks < 0 {
		return fmt.Errorf("scenario: negative tick count %d", sc.Ticks)
	}
	for i, ev := range sc.Events {
		if ev.Tick < 1 {
			return fmt.Errorf("scenario: event %d: tick must be >= 1, got %d", i+1, ev.Tick)
		}
		switch ev.Action {
		case ActionMove, ActionRemoveMarker, ActionDeleteTrail:
		default:
			return fmt.Errorf("scenario: event %d: unknown action %q", i+1, ev.Action)
		}
	}
	return nil
}

// Report summarises what happened while a scenario ran.
type Report struct {
	Ticks   int
	Applied int
	Ignored []string
}

// Run advances the session sc.Ticks frames (or ticks if sc.Ticks is zero),
// applying each event just before its tick. Events that cannot apply, such
// as moving a removed marker, are recorded in the report and skipped.
func Run(s *host.Session, sc *Scenario, ticks int) Report {
	if sc.Ticks > 0 {
		ticks = sc.Ticks
	}

	events := make([]Event, len(sc.Events))
	copy(events, sc.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Tick < events[j].Tick })

	var rep Report
	next := 0
	for tick := 1; tick <= ticks; tick++ {
		for next < len(events) && events[next].Tick == tick {
			if err := apply(s, events[next]); err != nil {
				rep.Ignored = append(rep.Ignored, fmt.Sprintf("tick %d %s: %v", tick, events[next].Action, err))
			} else {
				rep.Applied++
			}
			next++
		}
		s.Step()
		rep.Ticks++
	}
	for ; next < len(events); next++ {
		rep.Ignored = append(rep.Ignored, fmt.Sprintf("tick %d %s: beyond end of run", events[next].Tick, events[next].Action))
	}
	return rep
}

func apply(s *host.Session, ev Event) error {
	switch ev.Action {
	case ActionMove:
		return s.MoveMarker(ev.X, ev.Y)
	case ActionRemoveMarker:
		s.RemoveMarker()
		return nil
	case ActionDeleteTrail:
		if !s.DeleteActiveSegment() {
			return fmt.Errorf("no active trail")
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", ev.Action)
}
