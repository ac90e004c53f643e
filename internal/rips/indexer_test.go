package rips

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexer_RejectsInvalidSide(t *testing.T) {
	_, err := NewIndexer(0)
	require.Error(t, err)
	_, err = NewIndexer(-3)
	require.Error(t, err)
}

func TestIndexer_ConcreteValues(t *testing.T) {
	ix, err := NewIndexer(3)
	require.NoError(t, err)

	cases := []struct {
		k, i, j int
		want    int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{1, 0, 1, 2},
		{1, 1, 0, 3},
		{1, 1, 1, 4},
		{2, 0, 0, 5},
		{2, 0, 2, 7},
		{2, 1, 1, 9},
		{2, 2, 2, 13},
	}
	for _, c := range cases {
		got, err := ix.Index(c.k, c.i, c.j)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "index(%d,%d,%d)", c.k, c.i, c.j)
	}
}

func TestIndexer_LevelBoundsConcrete(t *testing.T) {
	ix, err := NewIndexer(4)
	require.NoError(t, err)

	assert.Equal(t, 0, ix.LevelStart(0))
	assert.Equal(t, 0, ix.LevelEnd(0))
	assert.Equal(t, 1, ix.LevelStart(1))
	assert.Equal(t, 4, ix.LevelEnd(1))
	assert.Equal(t, 5, ix.LevelStart(2))
	assert.Equal(t, 13, ix.LevelEnd(2))
	assert.Equal(t, 14, ix.LevelStart(3))
	assert.Equal(t, 29, ix.LevelEnd(3))
	assert.Equal(t, 29, ix.MaxID())

	// One depth past the deepest level starts right after the last id.
	assert.Equal(t, ix.MaxID()+1, ix.LevelStart(4))
}

func TestIndexer_DescriptorErrors(t *testing.T) {
	ix, err := NewIndexer(3)
	require.NoError(t, err)

	_, err = ix.Descriptor(-1)
	require.Error(t, err)
	_, err = ix.Descriptor(ix.MaxID() + 1)
	require.Error(t, err)
}

func TestIndexer_DomainErrors(t *testing.T) {
	ix, err := NewIndexer(3)
	require.NoError(t, err)

	cases := []struct{ k, i, j int }{
		{-1, 0, 0},
		{3, 0, 0},
		{1, 2, 0},
		{1, 0, 2},
		{0, -1, 0},
		{2, 0, -1},
	}
	for _, c := range cases {
		_, err := ix.Index(c.k, c.i, c.j)
		var derr *DomainError
		require.ErrorAs(t, err, &derr, "index(%d,%d,%d)", c.k, c.i, c.j)
		assert.Equal(t, c.k, derr.Depth)
	}
}

func TestIndexer_Bijectivity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ids are pairwise distinct and dense", prop.ForAll(
		func(side int) bool {
			ix, err := NewIndexer(side)
			if err != nil {
				return false
			}
			seen := make(map[int]bool)
			for k := 0; k < side; k++ {
				for i := 0; i <= k; i++ {
					for j := 0; j <= k; j++ {
						id, err := ix.Index(k, i, j)
						if err != nil || seen[id] {
							return false
						}
						seen[id] = true
					}
				}
			}
			// Dense: exactly MaxID()+1 ids, starting at 0.
			return len(seen) == ix.MaxID()+1 && seen[0]
		},
		gen.IntRange(1, 12),
	))

	properties.Property("ids stay within their level bounds", prop.ForAll(
		func(side int) bool {
			ix, err := NewIndexer(side)
			if err != nil {
				return false
			}
			for k := 0; k < side; k++ {
				for i := 0; i <= k; i++ {
					for j := 0; j <= k; j++ {
						id, err := ix.Index(k, i, j)
						if err != nil {
							return false
						}
						if id < ix.LevelStart(k) || id > ix.LevelEnd(k) {
							return false
						}
					}
				}
			}
			return true
		},
		gen.IntRange(1, 12),
	))

	properties.Property("Descriptor inverts Index", prop.ForAll(
		func(side int) bool {
			ix, err := NewIndexer(side)
			if err != nil {
				return false
			}
			for id := 0; id <= ix.MaxID(); id++ {
				d, err := ix.Descriptor(id)
				if err != nil {
					return false
				}
				back, err := ix.Index(d.Depth, d.Row, d.Col)
				if err != nil || back != id {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
	))

	properties.Property("ids are monotone in depth and row-major within a depth", prop.ForAll(
		func(side int) bool {
			ix, err := NewIndexer(side)
			if err != nil {
				return false
			}
			prev := -1
			for k := 0; k < side; k++ {
				for i := 0; i <= k; i++ {
					for j := 0; j <= k; j++ {
						id, err := ix.Index(k, i, j)
						if err != nil || id != prev+1 {
							return false
						}
						prev = id
					}
				}
			}
			return true
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
