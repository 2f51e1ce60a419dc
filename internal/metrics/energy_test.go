package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/sim"
)

func frame(pos []layout.Vec3, vel []layout.Vec3, edges [][2]int) *sim.Frame {
	return &sim.Frame{Positions: pos, Velocities: vel, Edges: edges, SpringLength: 50}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	vel := []layout.Vec3{{X: 2}, {Y: 1, Z: 1}}
	m.Observe(frame(make([]layout.Vec3, 2), vel, nil))

	if got, want := m.Value(), 0.5*4+0.5*2; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDecay(t *testing.T) {
	m := NewEnergyDecay()
	if m.Value() != 0 {
		t.Error("expected zero before any frame")
	}

	pos := make([]layout.Vec3, 1)
	m.Observe(frame(pos, []layout.Vec3{{X: 4}}, nil))
	m.Observe(frame(pos, []layout.Vec3{{X: 2}}, nil))

	if got := m.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected decay 0.25, got %f", got)
	}
}

func TestSpread(t *testing.T) {
	m := NewSpread()
	m.Observe(frame([]layout.Vec3{{X: 3, Y: 4}, {Z: -1}}, nil, nil))
	if got := m.Value(); math.Abs(got-3) > 1e-12 {
		t.Errorf("expected spread 3, got %f", got)
	}

	m.Observe(frame(nil, nil, nil))
	if m.Value() != 0 {
		t.Error("empty frame should have zero spread")
	}
}

func TestEdgeStrain(t *testing.T) {
	m := NewEdgeStrain()
	pos := []layout.Vec3{{}, {X: 60}, {X: 60, Y: 40}}
	m.Observe(frame(pos, nil, [][2]int{{0, 1}, {1, 2}}))

	// |60-50| and |40-50|
	if got := m.Value(); math.Abs(got-10) > 1e-12 {
		t.Errorf("expected strain 10, got %f", got)
	}

	m.Observe(frame(pos, nil, nil))
	if m.Value() != 0 {
		t.Error("no edges should mean zero strain")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(100)
	if m.Value() != 1 {
		t.Error("expected full stability before any frame")
	}

	m.Observe(frame([]layout.Vec3{{X: 10}}, nil, nil))
	m.Observe(frame([]layout.Vec3{{X: 500}}, nil, nil))
	m.Observe(frame([]layout.Vec3{{Y: math.NaN()}}, nil, nil))
	m.Observe(frame([]layout.Vec3{{Z: -99}}, nil, nil))

	if got := m.Value(); got != 0.5 {
		t.Errorf("expected stability 0.5, got %f", got)
	}
}

func TestDefaultMetricsInRun(t *testing.T) {
	nodes := []layout.NodeInput[struct{}]{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	links := []layout.LinkInput{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}

	s := sim.New(layout.NewEngine[struct{}](layout.DefaultParams()), nodes, links, nil)
	for _, m := range Default(1000) {
		s.AddMetric(m)
	}

	result, err := s.Run(context.Background(), sim.Config{Dt: 0.016, Frames: 1500, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"kinetic_energy", "energy_decay", "spread", "edge_strain", "stability"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if got := result.Metrics["stability"]; got != 1 {
		t.Errorf("expected a stable run, got %f", got)
	}
	if got := result.Metrics["energy_decay"]; got >= 1 {
		t.Errorf("expected energy to decay, got ratio %f", got)
	}
	if math.Abs(result.Metrics["kinetic_energy"]-result.FinalEnergy()) > 1e-12 {
		t.Error("kinetic_energy metric disagrees with the energy trace")
	}
}
