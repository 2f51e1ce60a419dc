package metrics

import "github.com/san-kum/papergraph/internal/sim"

// Spread is the mean distance of the nodes from the origin in the last
// observed frame.
type Spread struct {
	name  string
	value float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(f *sim.Frame) {
	if len(f.Positions) == 0 {
		s.value = 0
		return
	}
	sum := 0.0
	for _, p := range f.Positions {
		sum += p.Length()
	}
	s.value = sum / float64(len(f.Positions))
}

func (s *Spread) Value() float64 { return s.value }

func (s *Spread) Reset() { s.value = 0 }
