package viz

import (
	"sort"

	"github.com/san-kum/papergraph/internal/layout"
)

// Scene is one frame of a layout: node i sits at Positions[i] with
// Colors[i], and Edges index into both.
type Scene struct {
	IDs       []string
	Positions []layout.Vec3
	Colors    []string
	Edges     [][2]int
	// Selected is the highlighted node, or -1.
	Selected int
}

// SceneOf builds a scene from a renderable snapshot and its resolved edges.
func SceneOf[M any](nodes []layout.Renderable[M], edges [][2]int, selected int) *Scene {
	s := &Scene{Selected: selected}
	LoadScene(s, nodes, edges)
	return s
}

// LoadScene refills s in place, reusing its slices. Edges are copied.
func LoadScene[M any](s *Scene, nodes []layout.Renderable[M], edges [][2]int) {
	s.IDs = s.IDs[:0]
	s.Positions = s.Positions[:0]
	s.Colors = s.Colors[:0]
	for _, n := range nodes {
		s.IDs = append(s.IDs, n.ID)
		s.Positions = append(s.Positions, n.Position)
		s.Colors = append(s.Colors, n.Color)
	}
	s.Edges = append(s.Edges[:0], edges...)
	if s.Selected >= len(nodes) {
		s.Selected = -1
	}
}

// Neighbors returns the nodes linked to i in either direction.
func (s *Scene) Neighbors(i int) []int {
	var out []int
	for _, e := range s.Edges {
		switch i {
		case e[0]:
			out = append(out, e[1])
		case e[1]:
			out = append(out, e[0])
		}
	}
	return out
}

type projected struct {
	x, y  int
	depth float64
	front bool
}

// Projected is a node placed on screen.
type Projected struct {
	Index int
	X, Y  int
	Depth float64
}

// Project places every node in front of the eye on an sw x sh surface,
// sorted far to near.
func (s *Scene) Project(cam *Camera, sw, sh int) []Projected {
	out := make([]Projected, 0, len(s.Positions))
	for i, p := range s.Positions {
		x, y, d, front := cam.project(p, sw, sh)
		if front {
			out = append(out, Projected{Index: i, X: x, Y: y, Depth: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

// Palette holds the colours DrawScene uses for everything that is not a
// node.
type Palette struct {
	Edge      string
	Highlight string
}

// DrawScene clears c and draws edges then nodes, far nodes first. Edges of
// the selected node and the node itself use the highlight colour.
func DrawScene(c *Canvas, cam *Camera, s *Scene, pal Palette) {
	if c == nil || cam == nil || s == nil {
		return
	}
	c.Clear()
	pw, ph := c.PixelSize()

	pts := make([]projected, len(s.Positions))
	for i, p := range s.Positions {
		x, y, d, front := cam.project(p, pw, ph)
		pts[i] = projected{x, y, d, front}
	}

	var selectedEdges [][2]int
	for _, e := range s.Edges {
		if e[0] == s.Selected || e[1] == s.Selected {
			selectedEdges = append(selectedEdges, e)
			continue
		}
		drawEdge(c, pts, e, pal.Edge, pw, ph)
	}
	for _, e := range selectedEdges {
		drawEdge(c, pts, e, pal.Highlight, pw, ph)
	}

	for _, p := range s.Project(cam, pw, ph) {
		color := s.Colors[p.Index]
		r := 0
		if p.Index == s.Selected {
			color, r = pal.Highlight, 1
		}
		c.DrawDot(p.X, p.Y, r, color)
	}
}

func drawEdge(c *Canvas, pts []projected, e [2]int, color string, pw, ph int) {
	if e[0] >= len(pts) || e[1] >= len(pts) {
		return
	}
	a, b := pts[e[0]], pts[e[1]]
	if !a.front || !b.front || (!onScreen(a, pw, ph) && !onScreen(b, pw, ph)) {
		return
	}
	c.DrawLine(a.x, a.y, b.x, b.y, color)
}

func onScreen(p projected, w, h int) bool {
	return p.x >= 0 && p.x < w && p.y >= 0 && p.y < h
}
