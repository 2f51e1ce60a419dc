package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != blank|0x80 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank {
		t.Errorf("expected empty cell, got %U", c.Grid[0][0])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
}

func TestCanvasColor(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetColor(0, 0, "#ff0000")
	c.Set(1, 1)
	if c.Colors[0][0] != "#ff0000" {
		t.Errorf("plain Set must keep the cell colour, got %q", c.Colors[0][0])
	}
	c.Unset(0, 0)
	c.Unset(1, 1)
	if c.Colors[0][0] != "" {
		t.Error("empty cell should drop its colour")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7, "")
	for i := 0; i < 8; i++ {
		row, col := i/4, i/2
		bit := rune(pixelMap[i%4][i%2])
		if c.Grid[row][col]&bit == 0 {
			t.Errorf("diagonal pixel (%d,%d) not set", i, i)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != strings.Repeat(string(blank), 3) {
		t.Errorf("unexpected blank row %q", lines[0])
	}
	if c.Render() != c.String() {
		t.Error("uncoloured canvas should render as its plain string")
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Resize(5, 3)
	w, h := c.PixelSize()
	if w != 10 || h != 12 {
		t.Errorf("expected 10x12 pixels, got %dx%d", w, h)
	}
	if c.Grid[0][0] != blank {
		t.Error("resize should clear")
	}

	c.Resize(0, -1)
	if c.Width != 1 || c.Height != 1 {
		t.Errorf("expected minimum 1x1, got %dx%d", c.Width, c.Height)
	}
}
