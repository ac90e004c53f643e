package batch

import (
	"time"

	"github.com/MeKo-Tech/salient/internal/saliency"
)

// Config holds all configuration for batch detection.
type Config struct {
	// Detection settings
	Detector saliency.Config
	// Side resizes every input to a square of this length before detection.
	// 0 keeps the native size, which must already be square.
	Side int

	// Output settings
	Format     string
	OutputFile string
	// MaskDir, when set, receives one mask PNG per successfully decoded image.
	MaskDir string

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// ContinueOnError records per-image failures instead of aborting the run.
	ContinueOnError bool

	Quiet bool
}

// DefaultConfig returns a batch configuration with reference detection
// parameters and text output.
func DefaultConfig() Config {
	return Config{
		Detector:        saliency.DefaultConfig(),
		Format:          "text",
		ContinueOnError: true,
	}
}

// ImageResult is the detection outcome for a single image. Err is set when
// the image failed; Res may still carry the partial pipeline outcome.
type ImageResult struct {
	File string
	Res  *saliency.Result
	Err  error
}

// Result holds the outcome of a batch run.
type Result struct {
	Results  []ImageResult
	Duration time.Duration
}

// Failed returns the number of images that produced an error.
func (r *Result) Failed() int {
	n := 0
	for _, ir := range r.Results {
		if ir.Err != nil {
			n++
		}
	}
	return n
}

// FormatResults renders the batch results in the given format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r.Results, format)
}
