package metrics

import (
	"math"

	"github.com/san-kum/papergraph/internal/sim"
)

// KineticEnergy reports the kinetic energy of the last observed frame.
type KineticEnergy struct {
	name    string
	current float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f *sim.Frame) {
	k.current = f.KineticEnergy()
}

func (k *KineticEnergy) Value() float64 { return k.current }

func (k *KineticEnergy) Reset() { k.current = 0 }

// EnergyDecay is the ratio of the final kinetic energy to the peak seen
// during the run. Values near zero mean the layout has settled.
type EnergyDecay struct {
	name    string
	peak    float64
	current float64
	samples int
}

func NewEnergyDecay() *EnergyDecay {
	return &EnergyDecay{name: "energy_decay"}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(f *sim.Frame) {
	energy := f.KineticEnergy()
	e.current = energy
	e.peak = math.Max(e.peak, energy)
	e.samples++
}

func (e *EnergyDecay) Value() float64 {
	if e.samples == 0 || e.peak == 0 {
		return 0
	}
	return e.current / e.peak
}

func (e *EnergyDecay) Reset() {
	e.peak = 0
	e.current = 0
	e.samples = 0
}
