package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/logging"
	"github.com/san-kum/papergraph/internal/sim"
)

var ErrNoValidTrial = errors.New("optim: no parameter combination could be evaluated")

// Objective scores one set of layout constants. Lower is better.
type Objective func(ctx context.Context, p layout.Params) (float64, error)

// Trial is one evaluated grid point. Err is set when the combination was
// rejected or its run failed; Value is then +Inf.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// GridSearch evaluates every combination of the given parameter values on
// top of a base set of constants.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	log        *zap.Logger
}

func NewGridSearch(params []string, ranges [][]float64, log *zap.Logger) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d value lists", len(params), len(ranges))
	}
	for i, vals := range ranges {
		if len(vals) == 0 {
			return nil, fmt.Errorf("optim: no values for %q", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, log: logging.OrNop(log)}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search returns the best trial and all trials sorted by value. A failing
// grid point does not stop the search; a cancelled context does.
func (g *GridSearch) Search(ctx context.Context, base layout.Params, objective Objective) (Trial, []Trial, error) {
	trials := make([]Trial, 0, g.Size())
	if err := g.searchRecursive(ctx, 0, base, make(map[string]float64), objective, &trials); err != nil {
		return Trial{}, trials, err
	}

	sort.SliceStable(trials, func(i, j int) bool { return trials[i].Value < trials[j].Value })
	if len(trials) == 0 || trials[0].Err != nil {
		return Trial{}, trials, ErrNoValidTrial
	}
	return trials[0], trials, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	p layout.Params,
	current map[string]float64,
	objective Objective,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		trial := Trial{Params: make(map[string]float64, len(current)), Value: math.Inf(1)}
		for k, v := range current {
			trial.Params[k] = v
		}

		if err := p.Validate(); err != nil {
			trial.Err = err
		} else if val, err := objective(ctx, p); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			trial.Err = err
		} else {
			trial.Value = val
		}
		if trial.Err != nil {
			g.log.Debug("grid point rejected", zap.Any("params", trial.Params), zap.Error(trial.Err))
		}
		*trials = append(*trials, trial)
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := p
		if err := next.SetParam(name, val); err != nil {
			return err
		}
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, next, current, objective, trials); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// RunObjective scores constants by laying out the graph headlessly and
// reading one metric of the finished run.
func RunObjective[M any](nodes []layout.NodeInput[M], links []layout.LinkInput, cfg sim.Config, newMetrics func() []sim.Metric, metric string) Objective {
	return func(ctx context.Context, p layout.Params) (float64, error) {
		s := sim.New(layout.NewEngine[M](p), nodes, links, nil)
		for _, m := range newMetrics() {
			s.AddMetric(m)
		}
		result, err := s.Run(ctx, cfg)
		if err != nil {
			return 0, err
		}
		val, ok := result.Metrics[metric]
		if !ok {
			return 0, fmt.Errorf("optim: run has no metric %q", metric)
		}
		return val, nil
	}
}
