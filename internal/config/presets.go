package config

import (
	"sort"

	"github.com/san-kum/papergraph/internal/layout"
)

// Presets tune the layout for graphs of different sizes. Each preset is a
// full config; callers copy it before changing fields.
var Presets = map[string]*Config{
	"small": {
		Seed: DefaultSeed, Dt: DefaultDt, Frames: 400, FPS: DefaultFPS, DemoNodes: 20,
		Layout: layout.Params{
			Repulsion: 150, SpringLength: 40, SpringStrength: 0.02,
			Centering: 0.002, Damping: 0.9, InitRange: 60,
		},
	},
	"default": {
		Seed: DefaultSeed, Dt: DefaultDt, Frames: DefaultFrames, FPS: DefaultFPS, DemoNodes: DefaultDemoNodes,
		Layout: layout.DefaultParams(),
	},
	"dense": {
		Seed: DefaultSeed, Dt: DefaultDt, Frames: 900, FPS: DefaultFPS, DemoNodes: 150,
		Layout: layout.Params{
			Repulsion: 400, SpringLength: 60, SpringStrength: 0.008,
			Centering: 0.001, Damping: 0.92, InitRange: 150,
		},
	},
	"large": {
		Seed: DefaultSeed, Dt: DefaultDt, Frames: 1200, FPS: 20, DemoNodes: 1000,
		Layout: layout.Params{
			Repulsion: 600, SpringLength: 70, SpringStrength: 0.006,
			Centering: 0.0008, Damping: 0.9, InitRange: 300, Theta: 0.8,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Log = DefaultConfig().Log
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
