package export

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/flow"
	"github.com/san-kum/slopefield/internal/viz"
)

// minStroke keeps zero-radius trail pieces visible.
const minStroke = 0.5

// view maps world coordinates of the configured domain onto an SVG canvas
// with y pointing up.
type view struct {
	xMin, yMax float64
	scale      float64
	width      int
	height     int
}

func newView(cfg *config.Config, width int) view {
	d := cfg.Domain
	scale := float64(width) / (d.XMax - d.XMin)
	return view{
		xMin:   d.XMin,
		yMax:   d.YMax,
		scale:  scale,
		width:  width,
		height: int(math.Round((d.YMax - d.YMin) * scale)),
	}
}

func (v view) point(p flow.Position) (float64, float64) {
	return (p[0] - v.xMin) * v.scale, (v.yMax - p[1]) * v.scale
}

// SceneToSVG renders the direction field, every trail segment and the
// marker (if present) as a standalone SVG document of the given pixel
// width. Each trail piece takes the width of its end sample.
func SceneToSVG(cfg *config.Config, glyphs iter.Seq[field.Glyph], segments []*flow.Segment, marker *flow.Marker, width int) string {
	v := newView(cfg, width)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, v.width, v.height, v.width, v.height))

	half := cfg.Glyphs.Length / 2
	glyphStroke := math.Max(cfg.Glyphs.Thickness*v.scale, minStroke)
	sb.WriteString(fmt.Sprintf(`<g stroke="#444466" stroke-width="%.2f" stroke-linecap="round">
`, glyphStroke))
	for g := range glyphs {
		dx, dy := half*math.Cos(g.Angle), half*math.Sin(g.Angle)
		x0, y0 := v.point(flow.Position{g.Pos[0] - dx, g.Pos[1] - dy, 0})
		x1, y1 := v.point(flow.Position{g.Pos[0] + dx, g.Pos[1] + dy, 0})
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1))
	}
	sb.WriteString("</g>\n")

	for _, seg := range segments {
		color := "#00ccff"
		if seg.Sealed() {
			color = "#0088aa"
		}
		sb.WriteString(fmt.Sprintf(`<g id="trail-%d" stroke="%s" stroke-linecap="round">
`, seg.ID(), color))
		for i := 1; i < seg.Len(); i++ {
			a, b := seg.At(i-1), seg.At(i)
			x0, y0 := v.point(a.Pos)
			x1, y1 := v.point(b.Pos)
			w := math.Max(viz.StrokeWidth(cfg.Trail.Thickness, b.Radius)*v.scale, minStroke)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.2f"/>
`, x0, y0, x1, y1, w))
		}
		sb.WriteString("</g>\n")
	}

	if marker != nil {
		cx, cy := v.point(marker.Pos)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#ff00ff"/>
`, cx, cy, cfg.Marker.Radius*v.scale))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
