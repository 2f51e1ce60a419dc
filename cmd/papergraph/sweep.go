package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/papergraph/internal/metrics"
	"github.com/san-kum/papergraph/internal/optim"
	"github.com/san-kum/papergraph/internal/sim"
)

// parseGrid turns flags like "repulsion=100,150,200" into parameter names
// and value lists, in flag order.
func parseGrid(args []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid grid %q: want name=v1,v2,...", arg)
		}
		var vals []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid grid %q: %w", arg, err)
			}
			vals = append(vals, v)
		}
		names = append(names, paramName(strings.TrimSpace(name)))
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if len(sweepGrid) == 0 {
		return fmt.Errorf("no grid given: use --grid name=v1,v2,...")
	}
	names, ranges, err := parseGrid(sweepGrid)
	if err != nil {
		return err
	}
	search, err := optim.NewGridSearch(names, ranges, log)
	if err != nil {
		return err
	}

	g, err := loadGraph(cfg, log)
	if err != nil {
		return err
	}
	nodes, links := g.Inputs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bound := stabilityBound * cfg.Layout.InitRange
	objective := optim.RunObjective(nodes, links, simConfig(cfg), func() []sim.Metric { return metrics.Default(bound) }, sweepMetric)

	log.Info("sweeping layout constants",
		zap.Strings("params", names),
		zap.Int("points", search.Size()),
		zap.String("metric", sweepMetric))
	best, trials, err := search.Search(ctx, cfg.Layout, objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(sweepMetric))
	for _, t := range trials {
		row := make([]string, len(names))
		for i, name := range names {
			row[i] = strconv.FormatFloat(t.Params[name], 'g', -1, 64)
		}
		value := fmt.Sprintf("%.4f", t.Value)
		if t.Err != nil {
			value = "error: " + t.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(row, "\t"), value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("\nbest:")
	for _, k := range keys {
		fmt.Printf("  %s: %g\n", k, best.Params[k])
	}
	fmt.Printf("  %s: %.6f\n", sweepMetric, best.Value)
	return nil
}
