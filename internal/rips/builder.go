package rips

import (
	"context"
	"runtime"
	"sync"
)

// Edge is one scored link between a vertex at depth k and one of its four
// candidate children at depth k+1. Weight is exactly 0 or 1; zero-weight
// edges carry no meaning and are dropped during assembly.
type Edge struct {
	From   int
	To     int
	Weight int
}

// EdgeCount returns the number of edge tuples emitted for a grid of the
// given side: the sum of 4*(k+1)^2 for k in [0, side-2].
func EdgeCount(side int) int {
	n := 0
	for k := 0; k <= side-2; k++ {
		n += 4 * (k + 1) * (k + 1)
	}
	return n
}

// Builder constructs the 1-skeleton of the nested-square complex: for every
// descriptor at every depth it emits four scored edges toward the 2x2 child
// window at the next depth.
//
// Both probe blocks are taken at the child position, one viewed at the
// parent depth and one at the child depth, so the rule compares the same
// spatial window at two consecutive granularities. Probes whose parent-depth
// window would fall outside the grid score 0 without consulting the rule.
//
// Distinct counts are computed once per descriptor and reused across the
// fan-out; the grid is read-only throughout, so depths can be processed
// concurrently.
type Builder struct {
	grid    *Grid
	indexer Indexer
	rule    Rule
	workers int
}

// NewBuilder creates a builder over the given grid and connectivity rule.
func NewBuilder(grid *Grid, rule Rule) *Builder {
	ix, _ := NewIndexer(grid.Side())
	return &Builder{grid: grid, indexer: ix, rule: rule, workers: 1}
}

// WithWorkers sets the number of concurrent workers (0 = NumCPU).
func (b *Builder) WithWorkers(n int) *Builder {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	b.workers = n
	return b
}

// Indexer returns the vertex indexer shared with the rest of the pipeline.
func (b *Builder) Indexer() Indexer { return b.indexer }

// Build emits every edge tuple of the complex in deterministic order:
// ascending depth, row-major parent position, row-major child window.
func (b *Builder) Build() ([]Edge, error) {
	return b.BuildContext(context.Background())
}

// BuildContext is Build with context cancellation support.
func (b *Builder) BuildContext(ctx context.Context) ([]Edge, error) {
	n := b.grid.Side()

	counts, err := b.distinctCounts(ctx)
	if err != nil {
		return nil, err
	}

	edges := make([]Edge, EdgeCount(n))
	if err := b.forEachDepth(ctx, n-1, func(k int) {
		b.buildDepth(k, counts, edges)
	}); err != nil {
		return nil, err
	}
	return edges, nil
}

// distinctCounts precomputes the diversity u for every descriptor, one
// row-major table per depth.
func (b *Builder) distinctCounts(ctx context.Context) ([][]int, error) {
	n := b.grid.Side()
	counts := make([][]int, n)
	err := b.forEachDepth(ctx, n, func(k int) {
		table := make([]int, (k+1)*(k+1))
		for i := 0; i <= k; i++ {
			for j := 0; j <= k; j++ {
				block, _ := b.grid.Region(k, i, j)
				table[i*(k+1)+j] = block.DistinctCount()
			}
		}
		counts[k] = table
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// buildDepth fills the edge slab for depth k. Slabs of distinct depths are
// disjoint, so workers never write the same slot.
func (b *Builder) buildDepth(k int, counts [][]int, edges []Edge) {
	offset := EdgeCount(k + 1) // tuples emitted by depths before k
	for i := 0; i <= k; i++ {
		for j := 0; j <= k; j++ {
			from, _ := b.indexer.Index(k, i, j)
			slot := offset + 4*(i*(k+1)+j)
			for _, d := range [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
				ci, cj := i+d[0], j+d[1]
				to, _ := b.indexer.Index(k+1, ci, cj)
				w := 0
				if ci <= k && cj <= k {
					// Parent-depth probe stays inside the grid.
					w = b.rule.Link(counts[k][ci*(k+1)+cj], counts[k+1][ci*(k+2)+cj])
				}
				edges[slot] = Edge{From: from, To: to, Weight: w}
				slot++
			}
		}
	}
}

// forEachDepth runs fn for every depth in [0, depths) using the configured
// worker pool. fn calls for distinct depths must be independent.
func (b *Builder) forEachDepth(ctx context.Context, depths int, fn func(k int)) error {
	if depths <= 0 {
		return ctx.Err()
	}
	if b.workers == 1 || depths == 1 {
		for k := 0; k < depths; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(k)
		}
		return nil
	}

	jobs := make(chan int, depths)
	var wg sync.WaitGroup
	for i := 0; i < min(b.workers, depths); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case k, ok := <-jobs:
					if !ok {
						return
					}
					fn(k)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	for k := 0; k < depths; k++ {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}
