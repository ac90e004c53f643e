// Package testutil provides synthetic grids and images for tests.
package testutil

import (
	"image"
	"image/color"
	"testing"

	"github.com/MeKo-Tech/salient/internal/rips"
	"github.com/stretchr/testify/require"
)

// MustGrid builds a grid from rows and fails the test on error.
func MustGrid(t *testing.T, rows [][]uint8) *rips.Grid {
	t.Helper()
	g, err := rips.GridFromRows(rows)
	require.NoError(t, err)
	return g
}

// RefGrid3 returns the 3x3 two-intensity reference image used throughout
// the hand-computed scenarios:
//
//	0 0 1
//	0 1 1
//	1 1 1
func RefGrid3(t *testing.T) *rips.Grid {
	t.Helper()
	return MustGrid(t, [][]uint8{
		{0, 0, 1},
		{0, 1, 1},
		{1, 1, 1},
	})
}

// UniformGrid returns a side x side grid filled with a single intensity.
func UniformGrid(t *testing.T, side int, v uint8) *rips.Grid {
	t.Helper()
	pix := make([]uint8, side*side)
	for i := range pix {
		pix[i] = v
	}
	g, err := rips.NewGrid(side, pix)
	require.NoError(t, err)
	return g
}

// CornerObjectGrid returns a side x side background of ones with a square
// object of zeros of the given size in the top-left corner.
func CornerObjectGrid(t *testing.T, side, objectSide int) *rips.Grid {
	t.Helper()
	require.LessOrEqual(t, objectSide, side)
	pix := make([]uint8, side*side)
	for i := range pix {
		pix[i] = 1
	}
	for r := 0; r < objectSide; r++ {
		for c := 0; c < objectSide; c++ {
			pix[r*side+c] = 0
		}
	}
	g, err := rips.NewGrid(side, pix)
	require.NoError(t, err)
	return g
}

// GrayImage renders a grid as an 8-bit grayscale image, one gray pixel per
// cell with the cell intensity as the gray value.
func GrayImage(g *rips.Grid) *image.Gray {
	n := g.Side()
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetGray(x, y, color.Gray{Y: g.At(y, x)})
		}
	}
	return img
}
