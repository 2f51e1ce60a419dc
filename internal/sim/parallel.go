package sim

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/logging"
)

// Ensemble lays out the same graph once per seed, each run on its own
// engine.
type Ensemble[M any] struct {
	params  layout.Params
	nodes   []layout.NodeInput[M]
	links   []layout.LinkInput
	metrics func() []Metric
	limit   int
	log     *zap.Logger
}

func NewEnsemble[M any](p layout.Params, nodes []layout.NodeInput[M], links []layout.LinkInput, log *zap.Logger) *Ensemble[M] {
	return &Ensemble[M]{
		params: p,
		nodes:  nodes,
		links:  links,
		limit:  runtime.GOMAXPROCS(0),
		log:    logging.OrNop(log),
	}
}

// WithMetrics sets a factory for the metrics of each run. Metrics carry
// state, so every run gets fresh instances.
func (e *Ensemble[M]) WithMetrics(fn func() []Metric) *Ensemble[M] {
	e.metrics = fn
	return e
}

// SetLimit bounds the number of concurrent runs. n <= 0 means no limit.
func (e *Ensemble[M]) SetLimit(n int) { e.limit = n }

// Run returns one result per seed, in seed order. The first failing run
// cancels the others.
func (e *Ensemble[M]) Run(ctx context.Context, cfg Config, seeds []int64) ([]*Result[M], error) {
	results := make([]*Result[M], len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, seed := range seeds {
		g.Go(func() error {
			c := cfg
			c.Seed = seed

			s := New(layout.NewEngine[M](e.params), e.nodes, e.links, e.log.With(zap.Int64("seed", seed)))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(gctx, c)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
