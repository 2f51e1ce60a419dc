package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/logging"
)

const (
	DefaultDt        = 0.016
	DefaultFrames    = 600
	DefaultFPS       = 30
	DefaultDemoNodes = 60
	DefaultSeed      = 42
)

var ErrUnsupportedFormat = errors.New("config: unsupported file format")

type Config struct {
	// Dataset is a .json, .jsonl or .yaml graph file. Empty means the
	// built-in demo corpus.
	Dataset   string         `yaml:"dataset" toml:"dataset"`
	Seed      int64          `yaml:"seed" toml:"seed"`
	Dt        float64        `yaml:"dt" toml:"dt"`
	Frames    int            `yaml:"frames" toml:"frames"`
	FPS       int            `yaml:"fps" toml:"fps"`
	DemoNodes int            `yaml:"demo_nodes" toml:"demo_nodes"`
	Log       logging.Config `yaml:"log" toml:"log"`
	Layout    layout.Params  `yaml:"layout" toml:"layout"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:      DefaultSeed,
		Dt:        DefaultDt,
		Frames:    DefaultFrames,
		FPS:       DefaultFPS,
		DemoNodes: DefaultDemoNodes,
		Log:       logging.Config{Level: "info", Format: "console"},
		Layout:    layout.DefaultParams(),
	}
}

// Load reads a YAML or TOML file on top of the defaults, so omitted keys
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) LayoutParams() layout.Params {
	return c.Layout
}

func (c *Config) Validate() error {
	if c.Dt < 0 {
		return fmt.Errorf("config: dt must be non-negative, got %g", c.Dt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("config: frames must be positive, got %d", c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.Dataset == "" && c.DemoNodes < 0 {
		return fmt.Errorf("config: demo_nodes must be non-negative, got %d", c.DemoNodes)
	}
	return c.Layout.Validate()
}
