package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/metrics"
	"github.com/san-kum/papergraph/internal/sim"
)

func distance(ctx context.Context, p layout.Params) (float64, error) {
	return math.Abs(p.Repulsion-200) + math.Abs(p.SpringLength-40), nil
}

func TestNewGridSearch_Mismatch(t *testing.T) {
	_, err := NewGridSearch([]string{"repulsion"}, nil, nil)
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"repulsion"}, [][]float64{{}}, nil)
	assert.Error(t, err)
}

func TestGridSearch(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"repulsion", "spring_length"},
		[][]float64{{100, 200, 300}, {40, 60}},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())

	best, trials, err := g.Search(context.Background(), layout.DefaultParams(), distance)
	require.NoError(t, err)
	require.Len(t, trials, 6)

	assert.Equal(t, map[string]float64{"repulsion": 200, "spring_length": 40}, best.Params)
	assert.Equal(t, 0.0, best.Value)
	for i := 1; i < len(trials); i++ {
		assert.LessOrEqual(t, trials[i-1].Value, trials[i].Value)
	}
}

func TestGridSearch_InvalidPointsKept(t *testing.T) {
	g, err := NewGridSearch([]string{"damping"}, [][]float64{{0.9, 1.5}}, nil)
	require.NoError(t, err)

	best, trials, err := g.Search(context.Background(), layout.DefaultParams(), distance)
	require.NoError(t, err)
	require.Len(t, trials, 2)

	assert.Equal(t, 0.9, best.Params["damping"])
	last := trials[1]
	assert.ErrorIs(t, last.Err, layout.ErrParameterBounds)
	assert.True(t, math.IsInf(last.Value, 1))
}

func TestGridSearch_AllFail(t *testing.T) {
	g, err := NewGridSearch([]string{"repulsion"}, [][]float64{{1, 2}}, nil)
	require.NoError(t, err)

	failing := func(context.Context, layout.Params) (float64, error) { return 0, errors.New("boom") }
	_, trials, err := g.Search(context.Background(), layout.DefaultParams(), failing)
	assert.ErrorIs(t, err, ErrNoValidTrial)
	assert.Len(t, trials, 2)
}

func TestGridSearch_UnknownParam(t *testing.T) {
	g, err := NewGridSearch([]string{"gravity"}, [][]float64{{1}}, nil)
	require.NoError(t, err)

	_, _, err = g.Search(context.Background(), layout.DefaultParams(), distance)
	assert.ErrorIs(t, err, layout.ErrUnknownParam)
}

func TestGridSearch_Cancelled(t *testing.T) {
	g, err := NewGridSearch([]string{"repulsion"}, [][]float64{{1, 2, 3}}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	objective := func(context.Context, layout.Params) (float64, error) {
		calls++
		cancel()
		return 1, nil
	}

	_, _, err = g.Search(ctx, layout.DefaultParams(), objective)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRunObjective(t *testing.T) {
	nodes := []layout.NodeInput[struct{}]{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	links := []layout.LinkInput{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}
	cfg := sim.Config{Dt: 0.016, Frames: 200, Seed: 1}
	newMetrics := func() []sim.Metric { return metrics.Default(1000) }

	objective := RunObjective(nodes, links, cfg, newMetrics, "edge_strain")
	val, err := objective(context.Background(), layout.DefaultParams())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, val, 0.0)

	missing := RunObjective(nodes, links, cfg, newMetrics, "nope")
	_, err = missing(context.Background(), layout.DefaultParams())
	assert.Error(t, err)
}
