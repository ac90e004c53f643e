package rips

import (
	"errors"
	"fmt"
)

// Grid is an immutable square grayscale raster. All pipeline stages read
// from the same grid; nothing mutates it after construction.
type Grid struct {
	pix  []uint8
	side int
}

// NewGrid creates a grid of the given side from row-major pixel data.
// The pixel slice is copied so later changes to it cannot leak in.
func NewGrid(side int, pix []uint8) (*Grid, error) {
	if side < 1 {
		return nil, errors.New("rips: grid side must be at least 1")
	}
	if len(pix) != side*side {
		return nil, fmt.Errorf("rips: pixel data has %d entries, want %d", len(pix), side*side)
	}
	p := make([]uint8, len(pix))
	copy(p, pix)
	return &Grid{pix: p, side: side}, nil
}

// GridFromRows creates a grid from a square slice of rows.
func GridFromRows(rows [][]uint8) (*Grid, error) {
	side := len(rows)
	if side < 1 {
		return nil, errors.New("rips: grid needs at least one row")
	}
	pix := make([]uint8, 0, side*side)
	for i, row := range rows {
		if len(row) != side {
			return nil, fmt.Errorf("rips: row %d has %d entries, want %d", i, len(row), side)
		}
		pix = append(pix, row...)
	}
	return &Grid{pix: pix, side: side}, nil
}

// Side returns the grid side length N.
func (g *Grid) Side() int { return g.side }

// At returns the intensity at (row, col).
func (g *Grid) At(row, col int) uint8 { return g.pix[row*g.side+col] }

// DistinctCount returns the number of distinct intensity values in the
// whole grid (the global diversity C).
func (g *Grid) DistinctCount() int {
	var seen [256]bool
	n := 0
	for _, v := range g.pix {
		if !seen[v] {
			seen[v] = true
			n++
		}
	}
	return n
}

// Region returns the (N-k) x (N-k) block whose top-left corner is (i, j).
// It fails with *OutOfBoundsError when the window would read past the grid.
// The returned block is a view; no pixels are copied.
func (g *Grid) Region(k, i, j int) (Block, error) {
	side := g.side - k
	if k < 0 || side < 1 || i < 0 || j < 0 || i+side > g.side || j+side > g.side {
		return Block{}, &OutOfBoundsError{Depth: k, Row: i, Col: j, Side: g.side}
	}
	return Block{grid: g, row: i, col: j, side: side}, nil
}

// Block is a read-only view of a square sub-region of a grid.
type Block struct {
	grid *Grid
	row  int
	col  int
	side int
}

// Side returns the block side length.
func (b Block) Side() int { return b.side }

// At returns the intensity at (row, col) relative to the block origin.
func (b Block) At(row, col int) uint8 {
	return b.grid.At(b.row+row, b.col+col)
}

// DistinctCount returns the number of distinct intensity values in the
// block (the local diversity u).
func (b Block) DistinctCount() int {
	var seen [256]bool
	n := 0
	for r := 0; r < b.side; r++ {
		for c := 0; c < b.side; c++ {
			v := b.At(r, c)
			if !seen[v] {
				seen[v] = true
				n++
			}
		}
	}
	return n
}
