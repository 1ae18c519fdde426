package flow

// Marker is the tracked point. Prev is the position recorded at the end of
// the previous tick and Active refers to the segment being drawn, if any.
type Marker struct {
	Pos    Position
	Prev   Position
	Active SegmentID
}

// NewMarker places a marker at pos with no motion history and no trail.
func NewMarker(pos Position) *Marker {
	return &Marker{Pos: pos, Prev: pos}
}

// MoveTo repositions the marker from outside the simulation. Prev is left
// alone so the next tick can see the jump.
func (m *Marker) MoveTo(x, y float64) {
	m.Pos[0] = x
	m.Pos[1] = y
}
