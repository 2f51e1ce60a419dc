package layout

import (
	"fmt"
	"math"
	"math/rand"
)

// State is the complete simulation state of one graph. It is created by
// Initialize and advanced by Tick; the zero value is uninitialized.
//
// A State is not safe for concurrent use. Engine wraps it with a lock.
type State[M any] struct {
	nodes   []Node[M]
	links   []LinkInput
	index   map[string]int
	params  Params
	tree    *octree
	ticks   int
	elapsed float64
	ready   bool
}

// Initialize places every node uniformly at random inside the cube
// [-InitRange, InitRange)^3 with zero velocity and builds the id lookup used
// to resolve links. A nil rng uses a source seeded with 0.
func Initialize[M any](nodes []NodeInput[M], links []LinkInput, p Params, rng *rand.Rand) (*State[M], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	s := &State[M]{
		nodes:  make([]Node[M], len(nodes)),
		links:  make([]LinkInput, len(links)),
		index:  make(map[string]int, len(nodes)),
		params: p,
		ready:  true,
	}
	copy(s.links, links)

	r := p.InitRange
	for i, in := range nodes {
		if _, dup := s.index[in.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, in.ID)
		}
		s.index[in.ID] = i

		// always draw, so explicit positions do not shift the sequence
		pos := Vec3{
			X: (rng.Float64()*2 - 1) * r,
			Y: (rng.Float64()*2 - 1) * r,
			Z: (rng.Float64()*2 - 1) * r,
		}
		if in.Position != nil {
			if !in.Position.IsFinite() {
				return nil, fmt.Errorf("%w: initial position of %q is not finite", ErrParameterBounds, in.ID)
			}
			pos = *in.Position
		}
		s.nodes[i] = Node[M]{ID: in.ID, Color: in.Color, Meta: in.Meta, Position: pos}
	}

	return s, nil
}

// Tick advances the simulation by dt seconds. All forces are computed from
// the positions left by the previous tick; positions move only once every
// velocity has been updated. A zero dt recomputes velocities and leaves
// positions unchanged.
func (s *State[M]) Tick(dt float64) error {
	if s == nil || !s.ready {
		return ErrNotInitialized
	}
	if dt < 0 || !isFinite(dt) {
		return fmt.Errorf("%w: got %g", ErrNegativeDelta, dt)
	}
	if len(s.nodes) == 0 {
		s.ticks++
		s.elapsed += dt
		return nil
	}

	if s.params.Theta > 0 {
		s.repelApprox()
	} else {
		s.repelExact()
	}
	s.attract()
	s.integrate(dt)

	s.ticks++
	s.elapsed += dt
	return nil
}

func (s *State[M]) repelExact() {
	k := s.params.Repulsion
	if k == 0 {
		return
	}
	n := len(s.nodes)
	for i := 0; i < n; i++ {
		ni := &s.nodes[i]
		for j := i + 1; j < n; j++ {
			nj := &s.nodes[j]
			d := ni.Position.Sub(nj.Position)
			d2 := d.LengthSq()
			if d2 == 0 || math.IsInf(d2, 0) {
				continue
			}
			// k/|d|^2 along d/|d|
			scale := k / (d2 * math.Sqrt(d2))
			if math.IsInf(scale, 0) {
				continue
			}
			f := d.Scale(scale)
			ni.Velocity = ni.Velocity.Add(f)
			nj.Velocity = nj.Velocity.Sub(f)
		}
	}
}

func (s *State[M]) repelApprox() {
	k := s.params.Repulsion
	if k == 0 {
		return
	}
	if s.tree == nil {
		s.tree = newOctree(len(s.nodes))
	}
	buildOctree(s.tree, s.nodes)
	// the tree holds the previous positions; velocities only change here
	for i := range s.nodes {
		n := &s.nodes[i]
		n.Velocity = n.Velocity.Add(s.tree.repulsion(i, n.Position, s.params.Theta, k))
	}
}

func (s *State[M]) attract() {
	rest, k := s.params.SpringLength, s.params.SpringStrength
	if k == 0 {
		return
	}
	for _, l := range s.links {
		si, ok := s.index[l.Source]
		if !ok {
			continue
		}
		ti, ok := s.index[l.Target]
		if !ok {
			continue
		}
		src, tgt := &s.nodes[si], &s.nodes[ti]
		d := tgt.Position.Sub(src.Position)
		dist := d.Length()
		if math.IsInf(dist, 0) {
			continue
		}
		// self-links and coincident endpoints have no direction
		f := d.Normalize().Scale((dist - rest) * k)
		src.Velocity = src.Velocity.Add(f)
		tgt.Velocity = tgt.Velocity.Sub(f)
	}
}

func (s *State[M]) integrate(dt float64) {
	c, damping := s.params.Centering, s.params.Damping
	for i := range s.nodes {
		n := &s.nodes[i]
		n.Velocity = n.Velocity.Sub(n.Position.Scale(c)).Scale(damping)
		if dt != 0 {
			n.Position = n.Position.Add(n.Velocity.Scale(dt))
		}
	}
}

// Renderable returns a fresh projection of every node at the latest tick.
func (s *State[M]) Renderable() []Renderable[M] {
	if s == nil {
		return nil
	}
	return s.AppendRenderable(make([]Renderable[M], 0, len(s.nodes)))
}

// AppendRenderable appends the projection to dst, letting a render loop
// reuse one buffer across frames.
func (s *State[M]) AppendRenderable(dst []Renderable[M]) []Renderable[M] {
	if s == nil {
		return dst
	}
	for i := range s.nodes {
		n := &s.nodes[i]
		dst = append(dst, Renderable[M]{ID: n.ID, Position: n.Position, Color: n.Color, Meta: n.Meta})
	}
	return dst
}

// Node returns a copy of the node with the given id.
func (s *State[M]) Node(id string) (Node[M], bool) {
	if s == nil {
		return Node[M]{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Node[M]{}, false
	}
	return s.nodes[i], true
}

// Len reports the number of nodes.
func (s *State[M]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.nodes)
}

// Links returns the links as given to Initialize.
func (s *State[M]) Links() []LinkInput {
	if s == nil {
		return nil
	}
	return s.links
}

func (s *State[M]) Ticks() int {
	if s == nil {
		return 0
	}
	return s.ticks
}

// Elapsed is the simulated time accumulated over all ticks.
func (s *State[M]) Elapsed() float64 {
	if s == nil {
		return 0
	}
	return s.elapsed
}

func (s *State[M]) Params() Params {
	if s == nil {
		return Params{}
	}
	return s.params
}

// SetParams swaps the constants of a running simulation. Positions and
// velocities are kept; InitRange only matters for the next Initialize.
func (s *State[M]) SetParams(p Params) error {
	if s == nil || !s.ready {
		return ErrNotInitialized
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// KineticEnergy is the sum of 0.5*|v|^2 over all nodes (unit mass).
func (s *State[M]) KineticEnergy() float64 {
	if s == nil {
		return 0
	}
	e := 0.0
	for i := range s.nodes {
		e += 0.5 * s.nodes[i].Velocity.LengthSq()
	}
	return e
}

// ResolvedLinks counts the links whose endpoints both exist.
func (s *State[M]) ResolvedLinks() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, l := range s.links {
		_, okS := s.index[l.Source]
		_, okT := s.index[l.Target]
		if okS && okT {
			n++
		}
	}
	return n
}

// AppendEdges appends the node index pair of every resolvable link.
func (s *State[M]) AppendEdges(dst [][2]int) [][2]int {
	if s == nil {
		return dst
	}
	for _, l := range s.links {
		si, okS := s.index[l.Source]
		ti, okT := s.index[l.Target]
		if okS && okT {
			dst = append(dst, [2]int{si, ti})
		}
	}
	return dst
}

// AppendPositions appends node positions in node order.
func (s *State[M]) AppendPositions(dst []Vec3) []Vec3 {
	if s == nil {
		return dst
	}
	for i := range s.nodes {
		dst = append(dst, s.nodes[i].Position)
	}
	return dst
}

// AppendVelocities appends node velocities in node order.
func (s *State[M]) AppendVelocities(dst []Vec3) []Vec3 {
	if s == nil {
		return dst
	}
	for i := range s.nodes {
		dst = append(dst, s.nodes[i].Velocity)
	}
	return dst
}

// Finite reports whether every position and velocity is finite.
func (s *State[M]) Finite() bool {
	if s == nil {
		return true
	}
	for i := range s.nodes {
		if !s.nodes[i].Position.IsFinite() || !s.nodes[i].Velocity.IsFinite() {
			return false
		}
	}
	return true
}
