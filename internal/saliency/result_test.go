package saliency

import (
	"testing"

	"github.com/MeKo-Tech/salient/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultToJSON(t *testing.T) {
	d, err := New(DefaultConfig())
	require.NoError(t, err)
	res, err := d.Detect(testutil.RefGrid3(t))
	require.NoError(t, err)

	data, err := ResultToJSON(res)
	require.NoError(t, err)

	parsed, err := ResultFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.GridSide)
	assert.Equal(t, 2, parsed.Depth)
	assert.Equal(t, 1, parsed.SquareSide)
	assert.Equal(t, 13, parsed.Components)
	assert.False(t, parsed.Degenerate)
	assert.Empty(t, parsed.Squares)
}

func TestResultToJSON_Squares(t *testing.T) {
	res := &Result{
		GridSide: 4,
		Depth:    1,
		Side:     3,
		Squares:  []Square{{Row: 0, Col: 1, Side: 3}},
	}
	data, err := ResultToJSON(res)
	require.NoError(t, err)

	parsed, err := ResultFromJSON(data)
	require.NoError(t, err)
	require.Len(t, parsed.Squares, 1)
	assert.Equal(t, SquareJSON{Row: 0, Col: 1, Side: 3}, parsed.Squares[0])
}

func TestResultFromJSON_Invalid(t *testing.T) {
	_, err := ResultFromJSON([]byte("{not json"))
	require.Error(t, err)
}

func TestFormatText(t *testing.T) {
	res := &Result{
		GridSide:   3,
		Depth:      2,
		Side:       1,
		Components: 13,
	}
	out := FormatText(res)
	assert.Contains(t, out, "grid side: 3")
	assert.Contains(t, out, "detection depth: 2 (square side 1)")
	assert.Contains(t, out, "components: 13")
	assert.NotContains(t, out, "degenerate")

	res.Degenerate = true
	res.Squares = []Square{{Row: 1, Col: 0, Side: 2}}
	out = FormatText(res)
	assert.Contains(t, out, "degenerate")
	assert.Contains(t, out, "square at (1, 0) side 2")
}
