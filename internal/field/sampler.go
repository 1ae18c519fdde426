package field

import (
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Grid describes the sampled rectangle and the spacing between glyphs.
type Grid struct {
	XMin, XMax float64
	YMin, YMax float64
	Spacing    float64
}

// Glyph is one direction-field marker: its position and the angle of the
// local slope in radians, in (-π/2, π/2).
type Glyph struct {
	Pos   mgl64.Vec3
	Angle float64
}

// gridEps absorbs rounding so that a bound that is an exact multiple of
// the spacing is still included.
const gridEps = 1e-9

// Sample lazily walks the grid column by column and yields a glyph for
// every point where f is defined. The sequence is finite and can be
// iterated any number of times.
func Sample(f Field, g Grid) iter.Seq[Glyph] {
	return func(yield func(Glyph) bool) {
		if g.Spacing <= 0 || g.XMax < g.XMin || g.YMax < g.YMin {
			return
		}
		nx := steps(g.XMin, g.XMax, g.Spacing)
		ny := steps(g.YMin, g.YMax, g.Spacing)

		for i := 0; i <= nx; i++ {
			x := g.XMin + float64(i)*g.Spacing
			for j := 0; j <= ny; j++ {
				y := g.YMin + float64(j)*g.Spacing
				slope, err := f.Slope(x, y)
				if err != nil {
					continue
				}
				if !yield(Glyph{Pos: mgl64.Vec3{x, y, 0}, Angle: math.Atan(slope)}) {
					return
				}
			}
		}
	}
}

// Count returns the number of grid points, including undefined ones.
func (g Grid) Count() int {
	if g.Spacing <= 0 || g.XMax < g.XMin || g.YMax < g.YMin {
		return 0
	}
	return (steps(g.XMin, g.XMax, g.Spacing) + 1) * (steps(g.YMin, g.YMax, g.Spacing) + 1)
}

func steps(lo, hi, spacing float64) int {
	return int(math.Floor((hi-lo)/spacing + gridEps))
}
