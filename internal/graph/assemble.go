// Package graph compacts the raw edge tuples of the nested-square complex
// into a sparse adjacency structure and derives connected components
// from it.
package graph

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/salient/internal/rips"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrNegativeWeight reports an input tuple with a negative weight; the
// complex only ever emits weights 0 and 1.
var ErrNegativeWeight = errors.New("graph: negative edge weight")

// Assembled is the compacted sparse graph. Edges are stored directed, as
// emitted; component analysis treats them as undirected. No stored edge has
// weight 0 and every vertex id in [0, Dim) is present as a node, including
// isolated ones.
type Assembled struct {
	adj *simple.WeightedDirectedGraph
	dim int
}

// Assemble ingests raw (from, to, weight) tuples, sums weights of duplicate
// (from, to) keys, drops entries that resolve to 0 and returns the sparse
// adjacency over ids [0, maxTo].
func Assemble(edges []rips.Edge) (*Assembled, error) {
	type key struct{ from, to int }
	agg := make(map[key]int, len(edges))
	maxTo := 0
	for _, e := range edges {
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: (%d, %d, %d)", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
		if e.From < 0 || e.To < 0 {
			return nil, fmt.Errorf("graph: negative vertex id in (%d, %d)", e.From, e.To)
		}
		agg[key{e.From, e.To}] += e.Weight
		if e.To > maxTo {
			maxTo = e.To
		}
		if e.From > maxTo {
			maxTo = e.From
		}
	}

	adj := simple.NewWeightedDirectedGraph(0, 0)
	for id := 0; id <= maxTo; id++ {
		adj.AddNode(simple.Node(id))
	}
	for k, w := range agg {
		if w == 0 {
			continue
		}
		adj.SetWeightedEdge(adj.NewWeightedEdge(simple.Node(k.from), simple.Node(k.to), float64(w)))
	}
	return &Assembled{adj: adj, dim: maxTo + 1}, nil
}

// Dim returns the number of vertices, i.e. the side of the square adjacency.
func (a *Assembled) Dim() int { return a.dim }

// HasEdge reports whether a directed edge (from, to) survived assembly.
func (a *Assembled) HasEdge(from, to int) bool {
	return a.adj.HasEdgeFromTo(int64(from), int64(to))
}

// Weight returns the aggregated weight of (from, to), or 0 if the edge was
// eliminated.
func (a *Assembled) Weight(from, to int) int {
	w, ok := a.adj.Weight(int64(from), int64(to))
	if !ok {
		return 0
	}
	return int(w)
}

// EdgeCount returns the number of surviving directed edges.
func (a *Assembled) EdgeCount() int {
	n := 0
	it := a.adj.Edges()
	for it.Next() {
		n++
	}
	return n
}

// eachEdge visits every surviving edge.
func (a *Assembled) eachEdge(fn func(from, to int)) {
	it := a.adj.Edges()
	for it.Next() {
		e := it.Edge()
		fn(int(e.From().ID()), int(e.To().ID()))
	}
}
