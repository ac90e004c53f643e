package saliency

import (
	"context"
	"errors"
	"fmt"

	"github.com/MeKo-Tech/salient/internal/graph"
	"github.com/MeKo-Tech/salient/internal/rips"
)

// ErrDegenerateImage reports an input with a single distinct intensity.
// The thresholds of the conjunctive policy collapse on such images and the
// run, while valid, cannot localize anything meaningful.
var ErrDegenerateImage = errors.New("saliency: image has a single intensity value")

// Config holds parameters for the detection pipeline.
type Config struct {
	Epsilon float64     // error parameter, controls connectivity strictness
	Scaling float64     // scales epsilon in the conjunctive policy
	Policy  rips.Policy // connectivity policy
	Workers int         // builder workers (0 = NumCPU)
}

// DefaultConfig returns the reference parameterization.
func DefaultConfig() Config {
	return Config{
		Epsilon: 1.0,
		Scaling: 1.0,
		Policy:  rips.PolicyConjunctive,
		Workers: 0,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Epsilon < 0 {
		return fmt.Errorf("saliency: epsilon must be non-negative, got %g", c.Epsilon)
	}
	if c.Workers < 0 {
		return fmt.Errorf("saliency: workers must be non-negative, got %d", c.Workers)
	}
	if _, err := rips.ParsePolicy(string(c.Policy)); err != nil {
		return err
	}
	return nil
}

// Builder constructs a Detector with fluent configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a detector builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithEpsilon sets the error parameter.
func (b *Builder) WithEpsilon(eps float64) *Builder {
	b.cfg.Epsilon = eps
	return b
}

// WithScaling sets the scaling constant of the conjunctive policy.
func (b *Builder) WithScaling(n float64) *Builder {
	b.cfg.Scaling = n
	return b
}

// WithPolicy sets the connectivity policy.
func (b *Builder) WithPolicy(p rips.Policy) *Builder {
	b.cfg.Policy = p
	return b
}

// WithWorkers sets the builder worker count (0 = NumCPU).
func (b *Builder) WithWorkers(n int) *Builder {
	b.cfg.Workers = n
	return b
}

// Build validates the configuration and returns the detector.
func (b *Builder) Build() (*Detector, error) { return New(b.cfg) }

// Detector runs the full pipeline: complex construction, assembly,
// component analysis and decoding. It is stateless across calls and safe
// for concurrent use.
type Detector struct {
	cfg Config
}

// New creates a detector from a validated configuration.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config { return d.cfg }

// Result is the outcome of a detection run. When decoding fails the
// structural fields (Components, Degenerate, Labels) are still populated so
// callers can inspect what the graph looked like.
type Result struct {
	GridSide   int
	Depth      int
	Side       int
	Squares    []Square
	Mask       *Mask
	Components int
	Degenerate bool
	Labels     graph.Labeling
}

// Detect runs the pipeline on the given grid.
func (d *Detector) Detect(g *rips.Grid) (*Result, error) {
	return d.DetectContext(context.Background(), g)
}

// DetectContext is Detect with context cancellation support. Cancellation
// is only observed between depth shards of the builder; assembly and
// component analysis run to completion once started.
func (d *Detector) DetectContext(ctx context.Context, g *rips.Grid) (*Result, error) {
	rule := rips.NewRule(g, d.cfg.Epsilon, d.cfg.Scaling, d.cfg.Policy)
	degenerate := rule.GlobalDistinct() == 1

	builder := rips.NewBuilder(g, rule)
	if d.cfg.Workers != 1 {
		builder = builder.WithWorkers(d.cfg.Workers)
	}
	edges, err := builder.BuildContext(ctx)
	if err != nil {
		return nil, err
	}

	assembled, err := graph.Assemble(edges)
	if err != nil {
		return nil, err
	}
	labels := graph.Components(assembled)

	res := &Result{
		GridSide:   g.Side(),
		Components: labels.ComponentCount(),
		Degenerate: degenerate,
		Labels:     labels,
	}

	det, err := Decode(g, builder.Indexer(), labels)
	if err != nil {
		if degenerate {
			err = fmt.Errorf("%w: %w", ErrDegenerateImage, err)
		}
		return res, err
	}
	res.Depth = det.Depth
	res.Side = det.Side
	res.Squares = det.Squares
	res.Mask = det.Mask
	return res, nil
}
