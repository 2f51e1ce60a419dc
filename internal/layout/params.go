package layout

import (
	"fmt"
	"sort"
)

const (
	DefaultRepulsion      = 150.0
	DefaultSpringLength   = 50.0
	DefaultSpringStrength = 0.01
	DefaultCentering      = 0.001
	DefaultDamping        = 0.95
	DefaultInitRange      = 100.0
)

// Params holds the tunable constants of the simulation. The defaults were
// picked for visual appeal on graphs of a few dozen to a few hundred nodes;
// they carry no physical units.
type Params struct {
	Repulsion      float64 `yaml:"repulsion" toml:"repulsion" json:"repulsion"`
	SpringLength   float64 `yaml:"spring_length" toml:"spring_length" json:"spring_length"`
	SpringStrength float64 `yaml:"spring_strength" toml:"spring_strength" json:"spring_strength"`
	Centering      float64 `yaml:"centering" toml:"centering" json:"centering"`
	Damping        float64 `yaml:"damping" toml:"damping" json:"damping"`
	// InitRange bounds the initial cube: each axis is sampled from
	// [-InitRange, InitRange).
	InitRange float64 `yaml:"init_range" toml:"init_range" json:"init_range"`
	// Theta enables the Barnes-Hut octree for repulsion when positive.
	// Zero keeps the exact pairwise computation.
	Theta float64 `yaml:"theta" toml:"theta" json:"theta"`
}

func DefaultParams() Params {
	return Params{
		Repulsion:      DefaultRepulsion,
		SpringLength:   DefaultSpringLength,
		SpringStrength: DefaultSpringStrength,
		Centering:      DefaultCentering,
		Damping:        DefaultDamping,
		InitRange:      DefaultInitRange,
	}
}

func (p Params) Validate() error {
	for name, v := range p.GetParams() {
		if !isFinite(v) {
			return fmt.Errorf("%w: %s is not finite", ErrParameterBounds, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", ErrParameterBounds, name, v)
		}
	}
	if p.Damping >= 1 {
		return fmt.Errorf("%w: damping must be below 1, got %g", ErrParameterBounds, p.Damping)
	}
	if p.InitRange == 0 {
		return fmt.Errorf("%w: init_range must be positive", ErrParameterBounds)
	}
	return nil
}

// GetParams reports every constant by its config name.
func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"repulsion":       p.Repulsion,
		"spring_length":   p.SpringLength,
		"spring_strength": p.SpringStrength,
		"centering":       p.Centering,
		"damping":         p.Damping,
		"init_range":      p.InitRange,
		"theta":           p.Theta,
	}
}

// ParamNames returns the config names in a stable order.
func ParamNames() []string {
	names := make([]string, 0, 7)
	for name := range DefaultParams().GetParams() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetParam updates one constant by name. The result is not validated; call
// Validate before handing the params to a simulation.
func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "repulsion":
		p.Repulsion = value
	case "spring_length":
		p.SpringLength = value
	case "spring_strength":
		p.SpringStrength = value
	case "centering":
		p.Centering = value
	case "damping":
		p.Damping = value
	case "init_range":
		p.InitRange = value
	case "theta":
		p.Theta = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}
