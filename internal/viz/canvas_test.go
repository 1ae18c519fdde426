package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if !c.Empty(0, 0) {
		t.Error("expected cell cleared")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(2, 0)
	c.Set(0, 4)
	if !c.Empty(0, 0) {
		t.Error("out-of-range set touched the canvas")
	}
}

func TestDrawThickLine(t *testing.T) {
	thin := NewCanvas(10, 5)
	thin.DrawThickLine(0, 10, 19, 10, 1)
	thick := NewCanvas(10, 5)
	thick.DrawThickLine(0, 10, 19, 10, 3)

	count := func(c *Canvas) int {
		n := 0
		for x := 0; x < 20; x++ {
			for y := 0; y < 20; y++ {
				sub := pixelMap[y%4][x%2]
				if int(c.Grid[y/4][x/2]-0x2800)&sub != 0 {
					n++
				}
			}
		}
		return n
	}

	if count(thin) != 20 {
		t.Errorf("expected 20 dots on thin line, got %d", count(thin))
	}
	if count(thick) <= count(thin) {
		t.Errorf("thick line (%d dots) not thicker than thin (%d)", count(thick), count(thin))
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("expected 3 cells, got %d", len([]rune(lines[0])))
	}
}
