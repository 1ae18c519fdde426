package viz

import (
	"iter"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/flow"
)

// StrokeWidth is the rendered width, in world units, of a trail whose
// sample radius is radius and whose base thickness is thickness.
func StrokeWidth(thickness, radius float64) float64 {
	return 2 * thickness * radius
}

// Viewport maps a world rectangle onto a canvas, y pointing up.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	W, H       int // sub-pixels
}

func NewViewport(d config.DomainConfig, c *Canvas) Viewport {
	return Viewport{
		XMin: d.XMin, XMax: d.XMax,
		YMin: d.YMin, YMax: d.YMax,
		W: c.Width * 2, H: c.Height * 4,
	}
}

// Project returns the sub-pixel nearest to world point (x, y).
func (v Viewport) Project(x, y float64) (int, int) {
	sx := (x - v.XMin) / (v.XMax - v.XMin) * float64(v.W-1)
	sy := (v.YMax - y) / (v.YMax - v.YMin) * float64(v.H-1)
	return int(math.Round(sx)), int(math.Round(sy))
}

// PixelsPerUnit is the horizontal scale of the viewport.
func (v Viewport) PixelsPerUnit() float64 {
	return float64(v.W-1) / (v.XMax - v.XMin)
}

// DrawField draws each glyph as a short segment of the given world length.
func DrawField(c *Canvas, v Viewport, glyphs iter.Seq[field.Glyph], length float64) {
	half := length / 2
	for g := range glyphs {
		dx, dy := half*math.Cos(g.Angle), half*math.Sin(g.Angle)
		x0, y0 := v.Project(g.Pos[0]-dx, g.Pos[1]-dy)
		x1, y1 := v.Project(g.Pos[0]+dx, g.Pos[1]+dy)
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawTrail draws a segment as a polyline. Each piece is as wide as its
// end sample's stroke, and never thinner than one sub-pixel.
func DrawTrail(c *Canvas, v Viewport, seg *flow.Segment, thickness float64) {
	if seg.Len() == 1 {
		x, y := v.Project(seg.At(0).Pos[0], seg.At(0).Pos[1])
		c.Set(x, y)
		return
	}
	ppu := v.PixelsPerUnit()
	for i := 1; i < seg.Len(); i++ {
		a, b := seg.At(i-1), seg.At(i)
		x0, y0 := v.Project(a.Pos[0], a.Pos[1])
		x1, y1 := v.Project(b.Pos[0], b.Pos[1])
		w := int(math.Round(StrokeWidth(thickness, b.Radius) * ppu))
		c.DrawThickLine(x0, y0, x1, y1, max(w, 1))
	}
}

// DrawMarker draws a small filled square around the marker position.
func DrawMarker(c *Canvas, v Viewport, pos flow.Position, radius float64) {
	cx, cy := v.Project(pos[0], pos[1])
	r := max(int(math.Round(radius*v.PixelsPerUnit())), 1)
	for x := cx - r; x <= cx+r; x++ {
		for y := cy - r; y <= cy+r; y++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				c.Set(x, y)
			}
		}
	}
}

// Layer pairs a canvas with the color its dots are drawn in.
type Layer struct {
	Canvas *Canvas
	Color  lipgloss.Color
}

// Compose flattens same-sized layers into colored text. For each cell the
// last layer with dots wins.
func Compose(layers ...Layer) string {
	if len(layers) == 0 {
		return ""
	}
	base := layers[0].Canvas

	var b strings.Builder
	for row := 0; row < base.Height; row++ {
		var run strings.Builder
		runLayer := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runLayer < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(layers[runLayer].Color).Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < base.Width; col++ {
			top := -1
			for i := len(layers) - 1; i >= 0; i-- {
				if !layers[i].Canvas.Empty(col, row) {
					top = i
					break
				}
			}
			if top != runLayer {
				flush()
				runLayer = top
			}
			if top < 0 {
				run.WriteRune(0x2800)
			} else {
				run.WriteRune(layers[top].Canvas.Grid[row][col])
			}
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}
