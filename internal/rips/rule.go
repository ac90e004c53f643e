package rips

import "fmt"

// Policy selects how distinct-count evidence links two regions.
type Policy string

const (
	// PolicyConjunctive links two regions when both are "informative":
	// each local diversity must exceed C - n*epsilon.
	PolicyConjunctive Policy = "conjunctive"
	// PolicyDisjunctive links two regions when the diversity jump between
	// them exceeds epsilon, flagging a boundary between granularities.
	PolicyDisjunctive Policy = "disjunctive"
)

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyConjunctive, PolicyDisjunctive:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("rips: unknown connectivity policy %q", s)
	}
}

// Rule is the binary connectivity decision between two blocks. It is a pure
// function of the two local diversities and three scalar parameters; the
// only weights it produces are exactly 0 and 1.
type Rule struct {
	Epsilon float64
	Scaling float64
	Policy  Policy

	global int // C: distinct intensities in the whole grid
}

// NewRule creates a rule for the given grid, caching its global diversity.
func NewRule(g *Grid, epsilon, scaling float64, policy Policy) Rule {
	return Rule{Epsilon: epsilon, Scaling: scaling, Policy: policy, global: g.DistinctCount()}
}

// GlobalDistinct returns the cached whole-grid diversity C.
func (r Rule) GlobalDistinct() int { return r.global }

// Link scores two regions by their distinct counts: 1 = connected, 0 = not.
func (r Rule) Link(uFrom, uTo int) int {
	switch r.Policy {
	case PolicyDisjunctive:
		diff := uFrom - uTo
		if diff < 0 {
			diff = -diff
		}
		if float64(diff) > r.Epsilon {
			return 1
		}
		return 0
	default:
		thresh := float64(r.global) - r.Scaling*r.Epsilon
		if float64(uFrom) > thresh && float64(uTo) > thresh {
			return 1
		}
		return 0
	}
}

// Weight scores two blocks directly. Callers on the hot path should count
// distinct values once per descriptor and use Link instead.
func (r Rule) Weight(from, to Block) int {
	return r.Link(from.DistinctCount(), to.DistinctCount())
}
