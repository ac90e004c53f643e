package graph

// Labeling is a total map from vertex id to component label. Labels are
// assigned in ascending order of each component's smallest vertex id, so
// the component containing vertex 0 always carries label 0.
type Labeling []int

// ComponentCount returns the number of distinct components.
func (l Labeling) ComponentCount() int {
	max := -1
	for _, c := range l {
		if c > max {
			max = c
		}
	}
	return max + 1
}

// MaxID returns the largest vertex id carrying the given label. The second
// return is false when no vertex has that label.
func (l Labeling) MaxID(label int) (int, bool) {
	found := false
	max := 0
	for id, c := range l {
		if c == label {
			max = id
			found = true
		}
	}
	return max, found
}

// Components partitions the assembled graph into undirected connected
// components. Edge direction is ignored; vertices untouched by any edge
// become singleton components. The labeling is deterministic: two runs over
// the same graph produce identical results.
func Components(a *Assembled) Labeling {
	uf := newUnionFind(a.dim)
	a.eachEdge(func(from, to int) {
		uf.union(from, to)
	})

	labels := make(Labeling, a.dim)
	rootLabel := make(map[int]int, a.dim)
	next := 0
	for v := 0; v < a.dim; v++ {
		r := uf.find(v)
		label, ok := rootLabel[r]
		if !ok {
			label = next
			rootLabel[r] = label
			next++
		}
		labels[v] = label
	}
	return labels
}
