package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ErrUnsupportedFormat is returned for file extensions Load and Save do not know.
var ErrUnsupportedFormat = errors.New("dataset: unsupported file format")

// record is one JSONL line: either a paper or a link, told apart by Kind
// (or, when Kind is empty, by the presence of a source).
type record struct {
	Kind string `json:"kind,omitempty"`
	PaperNode
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

type linkRecord struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Load reads a graph from path. The format follows the extension: .json,
// .jsonl or .yaml/.yml.
func Load(path string) (*Graph, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(path)
	case ".jsonl":
		return loadJSONL(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func loadJSON(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing graph file: %w", err)
	}
	return &g, nil
}

func loadYAML(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing graph file: %w", err)
	}
	return &g, nil
}

func loadJSONL(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	g := &Graph{}
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}

		switch rec.Kind {
		case "link":
			g.Links = append(g.Links, Link{Source: rec.Source, Target: rec.Target})
		case "paper":
			g.Nodes = append(g.Nodes, rec.PaperNode)
		case "":
			if rec.Source != "" {
				g.Links = append(g.Links, Link{Source: rec.Source, Target: rec.Target})
			} else {
				g.Nodes = append(g.Nodes, rec.PaperNode)
			}
		default:
			return nil, fmt.Errorf("parsing line %d: unknown kind %q", lineNum, rec.Kind)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}

	return g, nil
}

// Save writes g to path in the format implied by the extension.
func Save(path string, g *Graph) error {
	var data []byte
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(g, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(g)
	case ".jsonl":
		data, err = encodeJSONL(g)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func encodeJSONL(g *Graph) ([]byte, error) {
	var sb strings.Builder
	for i, n := range g.Nodes {
		line, err := json.Marshal(record{Kind: "paper", PaperNode: n})
		if err != nil {
			return nil, fmt.Errorf("encoding node %d: %w", i, err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	for i, l := range g.Links {
		line, err := json.Marshal(linkRecord{Kind: "link", Source: l.Source, Target: l.Target})
		if err != nil {
			return nil, fmt.Errorf("encoding link %d: %w", i, err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
