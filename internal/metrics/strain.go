package metrics

import (
	"math"

	"github.com/san-kum/papergraph/internal/sim"
)

// EdgeStrain is the mean absolute deviation of resolved link lengths from
// the spring rest length, in the last observed frame.
type EdgeStrain struct {
	name  string
	value float64
}

func NewEdgeStrain() *EdgeStrain {
	return &EdgeStrain{name: "edge_strain"}
}

func (e *EdgeStrain) Name() string {
	return e.name
}

func (e *EdgeStrain) Observe(f *sim.Frame) {
	if len(f.Edges) == 0 {
		e.value = 0
		return
	}
	sum := 0.0
	for _, edge := range f.Edges {
		d := f.Positions[edge[1]].Sub(f.Positions[edge[0]]).Length()
		sum += math.Abs(d - f.SpringLength)
	}
	e.value = sum / float64(len(f.Edges))
}

func (e *EdgeStrain) Value() float64 {
	return e.value
}

func (e *EdgeStrain) Reset() {
	e.value = 0
}
