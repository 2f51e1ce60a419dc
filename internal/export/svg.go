package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/viz"
)

const (
	svgBackground = "#0a0a0a"
	svgEdgeColor  = "#455a64"
	nodeRadius    = 4.0
)

// SVG projects a layout through cam onto a width x height image. Links are
// drawn under the nodes; nodes are drawn far to near, nearer ones slightly
// larger. Links whose endpoints are missing are skipped.
func SVG[M any](nodes []layout.Renderable[M], links []layout.LinkInput, cam *viz.Camera, width, height int) string {
	scene := viz.SceneOf(nodes, Resolve(nodes, links), -1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	pts := scene.Project(cam, width, height)
	at := make(map[int]viz.Projected, len(pts))
	for _, p := range pts {
		at[p.Index] = p
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1" stroke-opacity="0.6">`+"\n", svgEdgeColor))
	for _, e := range scene.Edges {
		a, okA := at[e[0]]
		b, okB := at[e[1]]
		if !okA || !okB {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", a.X, a.Y, b.X, b.Y))
	}
	sb.WriteString("</g>\n<g>\n")

	for _, p := range pts {
		r := nodeRadius * (1 + 0.25*p.Depth)
		if r < 1 {
			r = 1
		}
		color := scene.Colors[p.Index]
		if color == "" {
			color = "#ffffff"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
			p.X, p.Y, r, html.EscapeString(color), html.EscapeString(scene.IDs[p.Index])))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// Resolve maps links to node index pairs, dropping links with an unknown
// endpoint.
func Resolve[M any](nodes []layout.Renderable[M], links []layout.LinkInput) [][2]int {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}
	out := make([][2]int, 0, len(links))
	for _, l := range links {
		s, okS := index[l.Source]
		t, okT := index[l.Target]
		if okS && okT {
			out = append(out, [2]int{s, t})
		}
	}
	return out
}
