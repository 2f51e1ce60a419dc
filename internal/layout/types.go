// Package layout implements a 3D force-directed graph layout: pairwise
// inverse-square repulsion, linear springs along links, a weak pull toward
// the origin and per-tick velocity damping, advanced one animation frame at
// a time.
package layout

// NodeInput describes one vertex as delivered by a data provider. Meta is
// carried through to the renderable projection untouched.
type NodeInput[M any] struct {
	ID    string
	Color string
	Meta  M
	// Position, when set, replaces the random initial position. Used to
	// resume a stored layout.
	Position *Vec3
}

// LinkInput is a directed edge between two node ids. The ids are not
// required to exist.
type LinkInput struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Node is a vertex with its physical state. Only Position and Velocity
// change after Initialize.
type Node[M any] struct {
	ID       string
	Color    string
	Meta     M
	Position Vec3
	Velocity Vec3
}

// Renderable is the read-only view of a node handed to drawing code.
type Renderable[M any] struct {
	ID       string
	Position Vec3
	Color    string
	Meta     M
}
