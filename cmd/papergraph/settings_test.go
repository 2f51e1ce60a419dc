package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/storage"
)

func TestParamName(t *testing.T) {
	assert.Equal(t, "spring_length", paramName("spring-length"))
	assert.Equal(t, "theta", paramName("theta"))
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"repulsion=100,150", "spring-length= 40 ,60"})
	require.NoError(t, err)
	assert.Equal(t, []string{"repulsion", "spring_length"}, names)
	assert.Equal(t, [][]float64{{100, 150}, {40, 60}}, ranges)
}

func TestParseGrid_Invalid(t *testing.T) {
	for _, arg := range []string{"repulsion", "=1,2", "damping=0.9,x"} {
		_, _, err := parseGrid([]string{arg})
		assert.Error(t, err, arg)
	}
}

func TestApplyStoredPositions(t *testing.T) {
	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())
	runID, err := st.Save(&storage.Run{
		Meta: storage.RunMetadata{Dataset: "demo"},
		Positions: []storage.Position{
			{ID: "a", Position: layout.Vec3{X: 1, Y: 2, Z: 3}},
			{ID: "gone", Position: layout.Vec3{X: 9}},
		},
	})
	require.NoError(t, err)

	nodes := []layout.NodeInput[struct{}]{{ID: "a"}, {ID: "b"}}
	placed, err := applyStoredPositions(st, runID, nodes)
	require.NoError(t, err)

	assert.Equal(t, 1, placed)
	require.NotNil(t, nodes[0].Position)
	assert.Equal(t, layout.Vec3{X: 1, Y: 2, Z: 3}, *nodes[0].Position)
	assert.Nil(t, nodes[1].Position)
}
