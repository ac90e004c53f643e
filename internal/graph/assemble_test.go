package graph

import (
	"testing"

	"github.com/MeKo-Tech/salient/internal/rips"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_SumsDuplicates(t *testing.T) {
	a, err := Assemble([]rips.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 0, To: 1, Weight: 1},
		{From: 0, To: 2, Weight: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, a.Dim())
	assert.Equal(t, 2, a.Weight(0, 1))
	assert.Equal(t, 1, a.Weight(0, 2))
	assert.Equal(t, 2, a.EdgeCount())
}

func TestAssemble_EliminatesZeroWeights(t *testing.T) {
	a, err := Assemble([]rips.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 0, To: 2, Weight: 0},
		{From: 1, To: 3, Weight: 0},
		{From: 1, To: 4, Weight: 0},
	})
	require.NoError(t, err)

	// Zero tuples widen the dimension but never survive as edges.
	assert.Equal(t, 5, a.Dim())
	assert.Equal(t, 1, a.EdgeCount())
	assert.False(t, a.HasEdge(0, 2))
	assert.False(t, a.HasEdge(1, 3))
	assert.Zero(t, a.Weight(1, 4))

	a.eachEdge(func(from, to int) {
		assert.Positive(t, a.Weight(from, to))
	})
}

func TestAssemble_DimensionFollowsLargestID(t *testing.T) {
	a, err := Assemble([]rips.Edge{
		{From: 3, To: 13, Weight: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 14, a.Dim())
	assert.Zero(t, a.EdgeCount())
}

func TestAssemble_Empty(t *testing.T) {
	a, err := Assemble(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Dim())
	assert.Zero(t, a.EdgeCount())
}

func TestAssemble_RejectsNegativeWeight(t *testing.T) {
	_, err := Assemble([]rips.Edge{{From: 0, To: 1, Weight: -1}})
	require.ErrorIs(t, err, ErrNegativeWeight)
}

func TestAssemble_RejectsNegativeID(t *testing.T) {
	_, err := Assemble([]rips.Edge{{From: -1, To: 1, Weight: 1}})
	require.Error(t, err)
}

func TestAssemble_ReferencePipeline(t *testing.T) {
	g, err := rips.GridFromRows([][]uint8{
		{0, 0, 1},
		{0, 1, 1},
		{1, 1, 1},
	})
	require.NoError(t, err)
	rule := rips.NewRule(g, 1.0, 1.0, rips.PolicyConjunctive)

	edges, err := rips.NewBuilder(g, rule).Build()
	require.NoError(t, err)

	a, err := Assemble(edges)
	require.NoError(t, err)

	// All 14 vertex ids are covered even though only one edge survives.
	assert.Equal(t, 14, a.Dim())
	assert.Equal(t, 1, a.EdgeCount())
	assert.True(t, a.HasEdge(0, 1))
	assert.Equal(t, 1, a.Weight(0, 1))
}
