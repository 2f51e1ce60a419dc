// Package dataset supplies paper graphs to the layout engine: loading them
// from JSON, JSONL or YAML files, or generating a demo corpus.
package dataset

import (
	"fmt"
	"strings"

	"github.com/san-kum/papergraph/internal/layout"
)

// Paper is the descriptive payload carried by each node. The layout engine
// never reads it.
type Paper struct {
	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Topic    string   `json:"topic,omitempty" yaml:"topic,omitempty"`
}

// PaperNode is one node record as stored on disk.
type PaperNode struct {
	ID    string `json:"id" yaml:"id"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Paper `yaml:",inline"`
}

// Link is a citation from Source to Target.
type Link = layout.LinkInput

// Graph is a complete data load.
type Graph struct {
	Nodes []PaperNode `json:"nodes" yaml:"nodes"`
	Links []Link      `json:"links" yaml:"links"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// Inputs converts the graph to engine inputs. Nodes without a color get
// their topic color.
func (g *Graph) Inputs() ([]layout.NodeInput[Paper], []layout.LinkInput) {
	nodes := make([]layout.NodeInput[Paper], len(g.Nodes))
	for i, n := range g.Nodes {
		color := n.Color
		if color == "" {
			color = TopicColor(n.Topic)
		}
		nodes[i] = layout.NodeInput[Paper]{ID: n.ID, Color: color, Meta: n.Paper}
	}
	links := make([]layout.LinkInput, len(g.Links))
	copy(links, g.Links)
	return nodes, links
}

// Validate reports data-quality problems. None of them stop a layout: the
// engine skips dangling links on its own, but duplicate ids are rejected by
// Initialize, so callers usually want to surface them.
func (g *Graph) Validate() []string {
	var warnings []string
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			warnings = append(warnings, "node with empty id")
			continue
		}
		if seen[n.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate node id %q", n.ID))
		}
		seen[n.ID] = true
	}
	for i, l := range g.Links {
		if !seen[l.Source] {
			warnings = append(warnings, fmt.Sprintf("link %d: unknown source %q", i, l.Source))
		}
		if !seen[l.Target] {
			warnings = append(warnings, fmt.Sprintf("link %d: unknown target %q", i, l.Target))
		}
	}
	return warnings
}

// Papers indexes the node payloads by id. Later duplicates win.
func (g *Graph) Papers() map[string]Paper {
	out := make(map[string]Paper, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Paper
	}
	return out
}

// Describe formats a paper for the live view's selection panel.
func Describe(p Paper) []string {
	lines := []string{p.Title}
	if len(p.Authors) > 0 {
		lines = append(lines, strings.Join(p.Authors, ", "))
	}
	if p.Year != 0 {
		lines = append(lines, fmt.Sprintf("Year: %d", p.Year))
	}
	if p.Topic != "" {
		lines = append(lines, "Topic: "+p.Topic)
	}
	if len(p.Keywords) > 0 {
		lines = append(lines, "Keywords: "+strings.Join(p.Keywords, ", "))
	}
	if p.Summary != "" {
		lines = append(lines, "", p.Summary)
	}
	return lines
}
