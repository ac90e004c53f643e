package saliency

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResultJSON is a serializable summary of a detection run.
type ResultJSON struct {
	GridSide   int          `json:"grid_side"`
	Depth      int          `json:"depth"`
	SquareSide int          `json:"square_side"`
	Components int          `json:"components"`
	Degenerate bool         `json:"degenerate"`
	Squares    []SquareJSON `json:"squares,omitempty"`
}

// SquareJSON is one localized square in image coordinates.
type SquareJSON struct {
	Row  int `json:"row"`
	Col  int `json:"col"`
	Side int `json:"side"`
}

// Summary converts a result into its serializable form.
func Summary(r *Result) ResultJSON {
	out := ResultJSON{
		GridSide:   r.GridSide,
		Depth:      r.Depth,
		SquareSide: r.Side,
		Components: r.Components,
		Degenerate: r.Degenerate,
	}
	out.Squares = make([]SquareJSON, 0, len(r.Squares))
	for _, s := range r.Squares {
		out.Squares = append(out.Squares, SquareJSON{Row: s.Row, Col: s.Col, Side: s.Side})
	}
	return out
}

// ResultToJSON serializes a detection result summary.
func ResultToJSON(r *Result) ([]byte, error) {
	return json.MarshalIndent(Summary(r), "", "  ")
}

// ResultFromJSON parses a serialized result summary.
func ResultFromJSON(data []byte) (ResultJSON, error) {
	var res ResultJSON
	err := json.Unmarshal(data, &res)
	return res, err
}

// FormatText renders a human-readable summary of a detection result.
func FormatText(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "grid side: %d\n", r.GridSide)
	fmt.Fprintf(&b, "detection depth: %d (square side %d)\n", r.Depth, r.Side)
	fmt.Fprintf(&b, "components: %d\n", r.Components)
	if r.Degenerate {
		b.WriteString("degenerate: single intensity value\n")
	}
	for _, s := range r.Squares {
		fmt.Fprintf(&b, "square at (%d, %d) side %d\n", s.Row, s.Col, s.Side)
	}
	return b.String()
}
