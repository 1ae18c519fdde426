package flow

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Position is a point in scene space. Only X and Y take part in the
// simulation; Z is carried through untouched.
type Position = mgl64.Vec3

// PlanarDistance is the Euclidean distance between a and b in the XY plane.
func PlanarDistance(a, b Position) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Motion classifies the positional change observed between two ticks.
type Motion int

const (
	Normal Motion = iota
	External
)

func (m Motion) String() string {
	switch m {
	case Normal:
		return "normal"
	case External:
		return "external"
	default:
		return fmt.Sprintf("motion(%d)", int(m))
	}
}

// StepKind says which branch a tick took.
type StepKind int

const (
	Skipped StepKind = iota
	Opened
	Perturbed
	Advanced
	Faulted
)

func (k StepKind) String() string {
	switch k {
	case Skipped:
		return "skipped"
	case Opened:
		return "opened"
	case Perturbed:
		return "perturbed"
	case Advanced:
		return "advanced"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("step(%d)", int(k))
	}
}

// Step reports the outcome of one tick.
type Step struct {
	Kind    StepKind
	Motion  Motion
	Segment SegmentID
	Pos     Position
	Speed   float64
	Radius  float64
}
