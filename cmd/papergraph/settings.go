package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/papergraph/internal/config"
	"github.com/san-kum/papergraph/internal/dataset"
	"github.com/san-kum/papergraph/internal/logging"
	"github.com/san-kum/papergraph/internal/sim"
)

const maxLoggedWarnings = 20

// loadSettings resolves the config in order preset, config file, then
// flags the user actually set.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset = datasetPath
	}
	if flags.Changed("nodes") {
		cfg.DemoNodes = demoNodes
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	layoutFlags := map[string]float64{
		"repulsion":       repulsion,
		"spring-length":   springLength,
		"spring-strength": springStrength,
		"centering":       centering,
		"damping":         damping,
		"init-range":      initRange,
		"theta":           theta,
	}
	for name, v := range layoutFlags {
		if !flags.Changed(name) {
			continue
		}
		if err := cfg.Layout.SetParam(paramName(name), v); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// paramName maps a flag name to its config key.
func paramName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

// loadGraph reads the configured dataset or builds the demo corpus, and
// logs data-quality warnings.
func loadGraph(cfg *config.Config, log *zap.Logger) (*dataset.Graph, error) {
	var g *dataset.Graph
	if cfg.Dataset == "" {
		g = dataset.Demo(cfg.DemoNodes, cfg.Seed)
		log.Info("using demo corpus", zap.Int("nodes", len(g.Nodes)), zap.Int("links", len(g.Links)))
	} else {
		loaded, err := dataset.Load(cfg.Dataset)
		if err != nil {
			return nil, err
		}
		g = loaded
		log.Info("dataset loaded",
			zap.String("path", cfg.Dataset),
			zap.Int("nodes", len(g.Nodes)),
			zap.Int("links", len(g.Links)))
	}

	warnings := g.Validate()
	for i, w := range warnings {
		if i == maxLoggedWarnings {
			log.Warn("more dataset warnings suppressed", zap.Int("total", len(warnings)))
			break
		}
		log.Warn("dataset", zap.String("warning", w))
	}
	return g, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:     cfg.Dt,
		Frames: cfg.Frames,
		Seed:   cfg.Seed,
		FPS:    cfg.FPS,
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func datasetName(cfg *config.Config) string {
	if cfg.Dataset == "" {
		return "demo"
	}
	return cfg.Dataset
}
