package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/papergraph/internal/layout"
)

// Node is one node of an exported layout, flat enough for a browser-side
// renderer to consume as-is.
type Node[M any] struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Color string  `json:"color,omitempty"`
	Meta  M       `json:"meta"`
}

type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Document[M any] struct {
	Nodes []Node[M] `json:"nodes"`
	Links []Link    `json:"links"`
}

// NewDocument keeps only links whose endpoints are both present, since
// browser renderers reject dangling links.
func NewDocument[M any](nodes []layout.Renderable[M], links []layout.LinkInput) *Document[M] {
	doc := &Document[M]{
		Nodes: make([]Node[M], len(nodes)),
		Links: make([]Link, 0, len(links)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = Node[M]{ID: n.ID, X: n.Position.X, Y: n.Position.Y, Z: n.Position.Z, Color: n.Color, Meta: n.Meta}
	}
	for _, e := range Resolve(nodes, links) {
		doc.Links = append(doc.Links, Link{Source: nodes[e[0]].ID, Target: nodes[e[1]].ID})
	}
	return doc
}

func JSON[M any](w io.Writer, nodes []layout.Renderable[M], links []layout.LinkInput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(NewDocument(nodes, links))
}

func JSONFile[M any](path string, nodes []layout.Renderable[M], links []layout.LinkInput) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := JSON(file, nodes, links); err != nil {
		return err
	}
	return file.Close()
}
