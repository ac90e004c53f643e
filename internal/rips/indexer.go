package rips

import (
	"errors"
	"fmt"
)

// Descriptor identifies one nested square sub-region of a grid: the square
// of side N-Depth whose top-left corner is (Row, Col). At depth k there are
// (k+1)^2 valid descriptors with Row, Col in [0, k].
type Descriptor struct {
	Depth int
	Row   int
	Col   int
}

// Indexer provides the bijective mapping between nested-square descriptors
// and scalar vertex ids for a grid of a fixed side length.
//
// The id of (k, i, j) is (k+1)*i + j + sum of l^2 for l in [0, k]. Ids grow
// monotonically with depth, and within a depth they follow row-major (i, j)
// order. The whole-image descriptor (0, 0, 0) always maps to id 0.
type Indexer struct {
	side int
}

// NewIndexer creates an indexer for a square grid of the given side length.
func NewIndexer(side int) (Indexer, error) {
	if side < 1 {
		return Indexer{}, errors.New("rips: indexer side must be at least 1")
	}
	return Indexer{side: side}, nil
}

// Side returns the grid side length N the indexer was built for.
func (ix Indexer) Side() int { return ix.side }

// Index maps a descriptor to its vertex id. It fails with *DomainError when
// (k, i, j) falls outside the valid descriptor domain.
func (ix Indexer) Index(k, i, j int) (int, error) {
	if k < 0 || k >= ix.side || i < 0 || i > k || j < 0 || j > k {
		return 0, &DomainError{Depth: k, Row: i, Col: j, Side: ix.side}
	}
	return (k+1)*i + j + sumSquares(k), nil
}

// LevelStart returns the smallest vertex id occurring at depth k.
// The result is defined for any k >= 0 so the decoder can probe one depth
// past the deepest populated level.
func (ix Indexer) LevelStart(k int) int { return sumSquares(k) }

// LevelEnd returns the largest vertex id occurring at depth k.
func (ix Indexer) LevelEnd(k int) int { return sumSquares(k) + (k+1)*(k+1) - 1 }

// MaxID returns the largest valid vertex id, i.e. the id of the deepest
// bottom-right single-pixel square.
func (ix Indexer) MaxID() int { return ix.LevelEnd(ix.side - 1) }

// Descriptor inverts Index, mapping a vertex id back to its descriptor. It
// fails when the id is outside [0, MaxID()].
func (ix Indexer) Descriptor(id int) (Descriptor, error) {
	if id < 0 || id > ix.MaxID() {
		return Descriptor{}, fmt.Errorf("rips: vertex id %d outside [0, %d] for side %d", id, ix.MaxID(), ix.side)
	}
	k := 0
	for ix.LevelEnd(k) < id {
		k++
	}
	rem := id - ix.LevelStart(k)
	return Descriptor{Depth: k, Row: rem / (k + 1), Col: rem % (k + 1)}, nil
}

// sumSquares returns the sum of l^2 for l in [0, k].
func sumSquares(k int) int { return k * (k + 1) * (2*k + 1) / 6 }
