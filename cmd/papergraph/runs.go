package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/papergraph/internal/config"
	"github.com/san-kum/papergraph/internal/dataset"
	"github.com/san-kum/papergraph/internal/export"
	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/storage"
	"github.com/san-kum/papergraph/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATASET\tNODES\tLINKS\tFRAMES\tSEED\tSTORED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.Dataset,
			r.Nodes,
			r.Links,
			r.Frames,
			r.Seed,
			formatAge(r.Timestamp),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	energy, err := st.LoadEnergy(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s, %d papers, %d links)\n", meta.ID, meta.Dataset, meta.Nodes, meta.Links)
	fmt.Printf("frames: %d, simulated %.2fs, seed %d\n\n", meta.Frames, meta.Elapsed, meta.Seed)
	if len(energy) < 2 {
		fmt.Println("not enough energy samples to plot")
	} else {
		fmt.Println(asciigraph.Plot(energy,
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("kinetic energy per frame"),
		))
	}
	printMetrics(meta.Metrics)
	return nil
}

// storedLayout rebuilds the renderable nodes of a run. Paper metadata is
// recovered from the run's dataset when it can still be read.
func storedLayout(st *storage.Store, runID string) ([]layout.Renderable[dataset.Paper], []layout.LinkInput, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	positions, err := st.LoadPositions(runID)
	if err != nil {
		return nil, nil, err
	}
	links, err := st.LoadLinks(runID)
	if err != nil {
		return nil, nil, err
	}

	var papers map[string]dataset.Paper
	if meta.Dataset == "demo" {
		papers = dataset.Demo(meta.Nodes, meta.Seed).Papers()
	} else if g, err := dataset.Load(meta.Dataset); err == nil {
		papers = g.Papers()
	}

	nodes := make([]layout.Renderable[dataset.Paper], len(positions))
	for i, p := range positions {
		nodes[i] = layout.Renderable[dataset.Paper]{
			ID:       p.ID,
			Position: p.Position,
			Color:    p.Color,
			Meta:     papers[p.ID],
		}
	}
	return nodes, links, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	nodes, links, err := storedLayout(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.JSON(os.Stdout, nodes, links)
	}
	if err := export.JSONFile(outPath, nodes, links); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	nodes, links, err := storedLayout(storage.New(dataDir), runID)
	if err != nil {
		return err
	}

	cam := viz.NewCamera()
	cam.RotX, cam.RotY = rotX, rotY
	points := make([]layout.Vec3, len(nodes))
	for i := range nodes {
		points[i] = nodes[i].Position
	}
	cam.Fit(points)

	out := outPath
	if out == "" {
		out = runID + ".svg"
	}
	svg := export.SVG(nodes, links, cam, svgWidth, svgHeight)
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", out)
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNODES\tFRAMES\tREPULSION\tSPRING\tDAMPING\tTHETA")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%g\t%g\t%g\n",
			name,
			p.DemoNodes,
			p.Frames,
			p.Layout.Repulsion,
			p.Layout.SpringLength,
			p.Layout.Damping,
			p.Layout.Theta,
		)
	}
	return w.Flush()
}

func writeDemo(cmd *cobra.Command, args []string) error {
	path := args[0]
	g := dataset.Demo(demoNodes, seed)
	if err := dataset.Save(path, g); err != nil {
		return err
	}
	fmt.Printf("wrote %d papers and %d links to %s\n", len(g.Nodes), len(g.Links), path)
	return nil
}

// formatAge renders how long ago a run was stored.
func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}
