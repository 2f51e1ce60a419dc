package layout

import "math"

// maxOctreeDepth bounds subdivision; bodies that still share a cell at this
// depth are merged into one bucket.
const maxOctreeDepth = 24

type cell struct {
	center Vec3
	half   float64
	com    Vec3 // center of mass
	mass   float64
	body   int // index of the single body in a leaf, -1 otherwise
	first  int // index of the first of eight children, -1 for a leaf
}

// octree is a Barnes-Hut spatial index over unit-mass bodies. Cells live in
// one slice that is truncated and refilled on every build, so steady-state
// ticks do not allocate.
type octree struct {
	cells []cell
	leaf  []int // leaf cell holding each body
}

func newOctree(n int) *octree {
	return &octree{cells: make([]cell, 0, 8*n+1), leaf: make([]int, n)}
}

func buildOctree[M any](t *octree, nodes []Node[M]) {
	t.cells = t.cells[:0]
	if cap(t.leaf) < len(nodes) {
		t.leaf = make([]int, len(nodes))
	}
	t.leaf = t.leaf[:len(nodes)]
	if len(nodes) == 0 {
		return
	}

	lo, hi := nodes[0].Position, nodes[0].Position
	for i := 1; i < len(nodes); i++ {
		p := nodes[i].Position
		lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	half := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))/2 + 1
	center := lo.Add(hi).Scale(0.5)

	t.cells = append(t.cells, cell{center: center, half: half, body: -1, first: -1})
	for i := range nodes {
		t.insert(0, i, nodes[i].Position, 0)
	}
}

func (t *octree) insert(ci, body int, p Vec3, depth int) {
	c := &t.cells[ci]
	if c.mass == 0 {
		c.body, c.com, c.mass = body, p, 1
		t.leaf[body] = ci
		return
	}
	if c.first < 0 {
		if depth >= maxOctreeDepth {
			c.com = c.com.Scale(c.mass).Add(p).Scale(1 / (c.mass + 1))
			c.mass++
			c.body = -1
			t.leaf[body] = ci
			return
		}
		old, oldPos := c.body, c.com
		t.subdivide(ci)
		t.cells[ci].body = -1
		t.insert(t.child(ci, oldPos), old, oldPos, depth+1)
	}
	c = &t.cells[ci]
	c.com = c.com.Scale(c.mass).Add(p).Scale(1 / (c.mass + 1))
	c.mass++
	t.insert(t.child(ci, p), body, p, depth+1)
}

func (t *octree) subdivide(ci int) {
	parent := t.cells[ci]
	h := parent.half / 2
	first := len(t.cells)
	for k := 0; k < 8; k++ {
		off := Vec3{-h, -h, -h}
		if k&1 != 0 {
			off.X = h
		}
		if k&2 != 0 {
			off.Y = h
		}
		if k&4 != 0 {
			off.Z = h
		}
		t.cells = append(t.cells, cell{center: parent.center.Add(off), half: h, body: -1, first: -1})
	}
	t.cells[ci].first = first
}

func (t *octree) child(ci int, p Vec3) int {
	c := &t.cells[ci]
	k := 0
	if p.X >= c.center.X {
		k |= 1
	}
	if p.Y >= c.center.Y {
		k |= 2
	}
	if p.Z >= c.center.Z {
		k |= 4
	}
	return c.first + k
}

// repulsion returns the approximate inverse-square push on body at p. A
// cell is treated as a single mass when its width over its distance is
// below theta.
func (t *octree) repulsion(body int, p Vec3, theta, k float64) Vec3 {
	if len(t.cells) == 0 {
		return Vec3{}
	}
	return t.walk(0, body, p, theta, k)
}

func (t *octree) walk(ci, body int, p Vec3, theta, k float64) Vec3 {
	c := &t.cells[ci]
	if c.mass == 0 {
		return Vec3{}
	}
	com, mass := c.com, c.mass
	if c.first < 0 && t.leaf[body] == ci {
		if mass <= 1 {
			return Vec3{}
		}
		// a merged bucket: leave the body's own mass out
		com = com.Scale(mass).Sub(p).Scale(1 / (mass - 1))
		mass--
	}
	d := p.Sub(com)
	d2 := d.LengthSq()
	width := 2 * c.half
	if c.first < 0 || (d2 > 0 && width*width < theta*theta*d2) {
		if d2 == 0 || math.IsInf(d2, 0) {
			return Vec3{}
		}
		scale := k * mass / (d2 * math.Sqrt(d2))
		if math.IsInf(scale, 0) {
			return Vec3{}
		}
		return d.Scale(scale)
	}
	var f Vec3
	for j := c.first; j < c.first+8; j++ {
		f = f.Add(t.walk(j, body, p, theta, k))
	}
	return f
}
