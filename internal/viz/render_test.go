package viz

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/slopefield/internal/config"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/flow"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestStrokeWidth(t *testing.T) {
	if got := StrokeWidth(0.05, 0.4); got < 0.0399 || got > 0.0401 {
		t.Errorf("expected 0.04, got %f", got)
	}
	if StrokeWidth(0.05, 0) != 0 {
		t.Error("expected zero width for zero radius")
	}
}

func TestViewportProject(t *testing.T) {
	c := NewCanvas(width, height)
	v := NewViewport(config.DefaultConfig().Domain, c)

	tests := []struct {
		name   string
		x, y   float64
		wx, wy int
	}{
		{"top left", -5, 5, 0, 0},
		{"bottom right", 5, -5, v.W - 1, v.H - 1},
		{"left edge middle", -5, 0, 0, (v.H - 1 + 1) / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.Project(tt.x, tt.y)
			if x != tt.wx || y != tt.wy {
				t.Errorf("got (%d, %d), expected (%d, %d)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestDrawFieldMarksCanvas(t *testing.T) {
	cfg := config.DefaultConfig()
	c := NewCanvas(width, height)
	f, _ := field.Lookup("linear")
	DrawField(c, NewViewport(cfg.Domain, c), field.Sample(f, cfg.Grid()), cfg.Glyphs.Length)

	if strings.Trim(c.String(), "⠀\n") == "" {
		t.Error("expected glyphs on canvas")
	}
}

func TestDrawTrailSingleSample(t *testing.T) {
	c := NewCanvas(4, 2)
	v := Viewport{XMin: 0, XMax: 1, YMin: 0, YMax: 1, W: 8, H: 8}
	m := flow.NewTrailManager()
	id := m.Open(flow.Position{0, 1, 0})
	seg, _ := m.Get(id)

	DrawTrail(c, v, seg, 0.05)
	if c.Empty(0, 0) {
		t.Error("expected seed sample dot")
	}
}

func TestComposeTopLayerWins(t *testing.T) {
	bottom := NewCanvas(2, 1)
	top := NewCanvas(2, 1)
	bottom.Set(0, 0)
	bottom.Set(2, 0)
	top.Set(1, 0)

	out := Compose(
		Layer{Canvas: bottom, Color: lipgloss.Color("#111111")},
		Layer{Canvas: top, Color: lipgloss.Color("#222222")},
	)

	row := []rune(strings.TrimSuffix(ansi.ReplaceAllString(out, ""), "\n"))
	if len(row) != 2 {
		t.Fatalf("expected 2 cells, got %q", out)
	}
	if row[0] != 0x2808 {
		t.Errorf("expected top layer's dot in first cell, got %U", row[0])
	}
	if row[1] != 0x2801 {
		t.Errorf("expected bottom layer's dot in second cell, got %U", row[1])
	}
}
