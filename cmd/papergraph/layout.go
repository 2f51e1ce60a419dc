package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/papergraph/internal/config"
	"github.com/san-kum/papergraph/internal/dataset"
	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/metrics"
	"github.com/san-kum/papergraph/internal/sim"
	"github.com/san-kum/papergraph/internal/storage"
	"github.com/san-kum/papergraph/internal/viz"
)

// stabilityBound is the coordinate bound of the stability metric, in
// multiples of the initial cube.
const stabilityBound = 20

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	g, err := loadGraph(cfg, log)
	if err != nil {
		return err
	}
	nodes, links := g.Inputs()

	st := storage.New(dataDir)
	if resumeRun != "" {
		n, err := applyStoredPositions(st, resumeRun, nodes)
		if err != nil {
			return err
		}
		log.Info("resuming stored layout", zap.String("run", resumeRun), zap.Int("placed", n), zap.Int("nodes", len(nodes)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := sim.New(layout.NewEngine[dataset.Paper](cfg.Layout), nodes, links, log)
	for _, m := range metrics.Default(stabilityBound * cfg.Layout.InitRange) {
		s.AddMetric(m)
	}

	fmt.Printf("laying out %d papers (%d links)...\n", len(nodes), len(links))
	result, err := s.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Wall.Round(time.Millisecond))
	fmt.Printf("frames: %d (%.2fs simulated)\n", result.Frames, result.Elapsed)
	if len(result.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energy,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("kinetic energy"),
		))
	}
	printMetrics(result.Metrics)

	if noSave {
		return nil
	}
	runID, err := saveResult(st, cfg, result)
	if err != nil {
		return err
	}
	log.Debug("run stored", zap.String("dir", st.Dir(runID)))
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	// the TUI owns the terminal, so only errors are logged
	cfg.Log.Level = "error"
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	g, err := loadGraph(cfg, log)
	if err != nil {
		return err
	}
	nodes, links := g.Inputs()

	title := "papergraph"
	if cfg.Dataset != "" {
		title = cfg.Dataset
	}
	m, err := viz.NewGraphModel(layout.NewEngine[dataset.Paper](cfg.Layout), nodes, links, viz.Options[dataset.Paper]{
		Title:    title,
		FPS:      cfg.FPS,
		Seed:     cfg.Seed,
		Theme:    themeName,
		Describe: dataset.Describe,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	g, err := loadGraph(cfg, log)
	if err != nil {
		return err
	}
	nodes, links := g.Inputs()

	engine := layout.NewEngine[dataset.Paper](cfg.Layout)
	if err := engine.Initialize(nodes, links, newRand(cfg.Seed)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if watchFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFor)
		defer cancel()
	}

	loop := sim.NewLoop(engine, simConfig(cfg), log)
	if err := loop.Start(ctx); err != nil {
		return err
	}
	log.Info("layout running", zap.Int("fps", cfg.FPS), zap.Duration("for", watchFor))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	energy := make([]float64, 0, 64)
	for done := false; !done; {
		select {
		case <-loop.Done():
			done = true
		case <-ticker.C:
			var e, elapsed float64
			engine.View(func(s *layout.State[dataset.Paper]) {
				e, elapsed = s.KineticEnergy(), s.Elapsed()
			})
			energy = append(energy, e)
			log.Info("progress",
				zap.Int64("frames", loop.Frames()),
				zap.Float64("elapsed", elapsed),
				zap.Float64("energy", e))
		}
	}
	if err := loop.Stop(); err != nil {
		return err
	}

	var result sim.Result[dataset.Paper]
	engine.View(func(s *layout.State[dataset.Paper]) {
		result.Frames = s.Ticks()
		result.Elapsed = s.Elapsed()
		result.Final = s.Renderable()
		result.Links = s.Links()
	})
	result.Seed = cfg.Seed
	result.Energy = energy
	fmt.Printf("frames: %d (%.2fs)\n", result.Frames, result.Elapsed)

	if noSave {
		return nil
	}
	runID, err := saveResult(storage.New(dataDir), cfg, &result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	g, err := loadGraph(cfg, log)
	if err != nil {
		return err
	}
	nodes, links := g.Inputs()

	seeds := make([]int64, benchRuns)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	bound := stabilityBound * cfg.Layout.InitRange
	ens := sim.NewEnsemble(cfg.Layout, nodes, links, log).
		WithMetrics(func() []sim.Metric { return metrics.Default(bound) })
	if benchLimit > 0 {
		ens.SetLimit(benchLimit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("benchmarking %d papers, %d links, %d seeds, theta=%g\n\n", len(nodes), len(links), len(seeds), cfg.Layout.Theta)
	start := time.Now()
	results, err := ens.Run(ctx, simConfig(cfg), seeds)
	if err != nil {
		return err
	}
	total := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFRAMES\tTIME\tFRAMES/SEC\tENERGY\tSPREAD\tSTRAIN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.4f\t%.1f\t%.2f\n",
			r.Seed,
			r.Frames,
			r.Wall.Round(time.Millisecond),
			float64(r.Frames)/r.Wall.Seconds(),
			r.FinalEnergy(),
			r.Metrics["spread"],
			r.Metrics["edge_strain"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nwall time: %v\n", total.Round(time.Millisecond))
	return nil
}

func saveResult(st *storage.Store, cfg *config.Config, result *sim.Result[dataset.Paper]) (string, error) {
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(&storage.Run{
		Meta: storage.RunMetadata{
			Dataset: datasetName(cfg),
			Seed:    result.Seed,
			Dt:      cfg.Dt,
			Frames:  result.Frames,
			Elapsed: result.Elapsed,
			Params:  cfg.Layout,
			Metrics: result.Metrics,
		},
		Positions: storage.PositionsOf(result.Final),
		Links:     result.Links,
		Energy:    result.Energy,
	})
}

// applyStoredPositions seeds nodes with the positions of a stored run and
// returns how many were placed. Nodes absent from the run keep a random
// start.
func applyStoredPositions[M any](st *storage.Store, runID string, nodes []layout.NodeInput[M]) (int, error) {
	positions, err := st.LoadPositions(runID)
	if err != nil {
		return 0, err
	}
	byID := make(map[string]layout.Vec3, len(positions))
	for _, p := range positions {
		byID[p.ID] = p.Position
	}
	placed := 0
	for i := range nodes {
		if p, ok := byID[nodes[i].ID]; ok {
			pos := p
			nodes[i].Position = &pos
			placed++
		}
	}
	return placed, nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}
