package flow

// DefaultThreshold is the largest planar jump still attributed to the
// simulation's own step.
const DefaultThreshold = 0.5

// Detector classifies the drift between the position recorded at the end
// of the previous tick and the one observed at the start of this tick.
type Detector struct {
	Threshold float64
}

func NewDetector(threshold float64) Detector {
	return Detector{Threshold: threshold}
}

// Classify returns External when the marker moved farther than Threshold.
// A distance equal to the threshold is still Normal.
func (d Detector) Classify(current, prev Position) Motion {
	if PlanarDistance(current, prev) > d.Threshold {
		return External
	}
	return Normal
}
