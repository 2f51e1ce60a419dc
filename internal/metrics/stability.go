package metrics

import (
	"math"

	"github.com/san-kum/papergraph/internal/sim"
)

// Stability is the fraction of frames in which every position is finite
// and every coordinate stays within the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f *sim.Frame) {
	s.samples++
	for _, p := range f.Positions {
		if !p.IsFinite() || math.Abs(p.X) > s.threshold || math.Abs(p.Y) > s.threshold || math.Abs(p.Z) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Default returns the metric set the CLI reports for every run.
func Default(threshold float64) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDecay(),
		NewSpread(),
		NewEdgeStrain(),
		NewStability(threshold),
	}
}
