package flow

import "github.com/san-kum/slopefield/internal/field"

// Euler advances a position by one explicit Euler step of dy/dx = f(x, y).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step returns (x+dt, y+dt*f(x,y), z). On failure pos is returned
// unchanged together with the field's error.
func (e *Euler) Step(pos Position, dt float64, f field.Field) (Position, error) {
	slope, err := f.Slope(pos[0], pos[1])
	if err != nil {
		return pos, err
	}
	return Position{pos[0] + dt, pos[1] + dt*slope, pos[2]}, nil
}
