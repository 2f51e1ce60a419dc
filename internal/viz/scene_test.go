package viz

import (
	"testing"

	"github.com/san-kum/papergraph/internal/layout"
)

func sampleNodes() []layout.Renderable[string] {
	return []layout.Renderable[string]{
		{ID: "a", Position: layout.Vec3{X: -50}, Color: "#ff0000"},
		{ID: "b", Position: layout.Vec3{X: 50}, Color: "#00ff00"},
		{ID: "c", Position: layout.Vec3{Y: 50, Z: 20}, Color: "#0000ff"},
	}
}

func TestSceneOf(t *testing.T) {
	s := SceneOf(sampleNodes(), [][2]int{{0, 1}, {2, 0}}, 5)
	if len(s.Positions) != 3 || s.IDs[2] != "c" || s.Colors[1] != "#00ff00" {
		t.Errorf("unexpected scene %+v", s)
	}
	if s.Selected != -1 {
		t.Errorf("out of range selection should clear, got %d", s.Selected)
	}

	got := s.Neighbors(0)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected neighbours [1 2], got %v", got)
	}
}

func TestSceneProjectOrder(t *testing.T) {
	s := SceneOf(sampleNodes(), nil, -1)
	cam := &Camera{Zoom: 1, Radius: 100, Distance: 3, Near: 0.1}
	pts := s.Project(cam, 100, 100)
	if len(pts) != 3 {
		t.Fatalf("expected 3 projected nodes, got %d", len(pts))
	}
	if pts[len(pts)-1].Index != 2 {
		t.Errorf("nearest node should be drawn last, got %d", pts[len(pts)-1].Index)
	}
}

func TestDrawScene(t *testing.T) {
	c := NewCanvas(40, 20)
	cam := &Camera{Zoom: 1, Radius: 100, Distance: 3, Near: 0.1}
	s := SceneOf(sampleNodes(), [][2]int{{0, 1}}, 1)

	DrawScene(c, cam, s, Palette{Edge: "#333333", Highlight: "#ffff00"})

	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				set++
			}
		}
	}
	if set == 0 {
		t.Fatal("nothing drawn")
	}

	pw, ph := c.PixelSize()
	x, y, _, _ := cam.Project(layout.Vec3{X: 50}, pw, ph)
	if got := c.Colors[y/4][x/2]; got != "#ffff00" {
		t.Errorf("selected node should use the highlight colour, got %q", got)
	}
	x, y, _, _ = cam.Project(layout.Vec3{X: -50}, pw, ph)
	if got := c.Colors[y/4][x/2]; got != "#ff0000" {
		t.Errorf("node should keep its own colour, got %q", got)
	}
}

func TestDrawSceneNil(t *testing.T) {
	DrawScene(nil, NewCamera(), &Scene{}, Palette{})
	DrawScene(NewCanvas(1, 1), nil, &Scene{}, Palette{})
}
