package rips

import "fmt"

// DomainError reports an indexer call with a descriptor outside the valid
// domain 0 <= k < N, 0 <= i,j <= k.
type DomainError struct {
	Depth, Row, Col int
	Side            int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("rips: descriptor (k=%d, i=%d, j=%d) outside domain for side %d",
		e.Depth, e.Row, e.Col, e.Side)
}

// OutOfBoundsError reports a region extraction that would read past the
// grid bounds.
type OutOfBoundsError struct {
	Depth, Row, Col int
	Side            int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("rips: region (k=%d, i=%d, j=%d) exceeds grid of side %d",
		e.Depth, e.Row, e.Col, e.Side)
}
