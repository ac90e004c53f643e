// Package saliency localizes a salient object by decoding the component
// labeling of the nested-square complex back into image space.
package saliency

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/salient/internal/graph"
	"github.com/MeKo-Tech/salient/internal/rips"
)

// ErrNoBoundaryFound reports that the background component reaches into
// every valid depth, so no boundary depth exists and nothing can be
// localized.
var ErrNoBoundaryFound = errors.New("saliency: background component spans every depth")

// Mask is a raster of the same shape as the input grid, non-zero only
// inside the decoded squares.
type Mask struct {
	pix  []uint8
	side int
}

func newMask(side int) *Mask {
	return &Mask{pix: make([]uint8, side*side), side: side}
}

// Side returns the mask side length.
func (m *Mask) Side() int { return m.side }

// At returns the mask value at (row, col).
func (m *Mask) At(row, col int) uint8 { return m.pix[row*m.side+col] }

// Pix returns the row-major mask data. Callers must not modify it.
func (m *Mask) Pix() []uint8 { return m.pix }

// Square identifies one painted square at the detection depth.
type Square struct {
	Row  int
	Col  int
	Side int
}

// Detection is the decoded localization: the coarsest depth whose level
// lies entirely beyond the background component, the squares at that depth
// still labeled as background, and the rasterized mask.
type Detection struct {
	Depth   int
	Side    int
	Squares []Square
	Mask    *Mask
}

// Decode walks the component labeling back through the indexer. It finds
// the smallest depth k whose level starts beyond the largest background
// vertex id, then paints every depth-k square still labeled 0 with the
// source pixels, row-major, last write wins. Unpainted pixels stay 0.
func Decode(grid *rips.Grid, ix rips.Indexer, labels graph.Labeling) (*Detection, error) {
	n := ix.Side()
	if want := ix.MaxID() + 1; len(labels) != want {
		return nil, fmt.Errorf("saliency: labeling covers %d vertices, want %d", len(labels), want)
	}
	// Label 0 must be the component of the whole-image vertex; the decoder
	// is meaningless otherwise.
	if labels[0] != 0 {
		return nil, fmt.Errorf("saliency: whole-image vertex carries label %d, want 0", labels[0])
	}

	maxZero, _ := labels.MaxID(0)

	boundary := 0
	for k := 1; k < n; k++ {
		if ix.LevelStart(k) > maxZero {
			boundary = k
			break
		}
	}
	if boundary == 0 {
		return nil, ErrNoBoundaryFound
	}

	side := n - boundary
	mask := newMask(n)
	var squares []Square
	for i := 0; i <= boundary; i++ {
		for j := 0; j <= boundary; j++ {
			id, err := ix.Index(boundary, i, j)
			if err != nil {
				return nil, err
			}
			if labels[id] != 0 {
				continue
			}
			squares = append(squares, Square{Row: i, Col: j, Side: side})
			for r := 0; r < side; r++ {
				for c := 0; c < side; c++ {
					mask.pix[(i+r)*n+(j+c)] = grid.At(i+r, j+c)
				}
			}
		}
	}

	return &Detection{Depth: boundary, Side: side, Squares: squares, Mask: mask}, nil
}
