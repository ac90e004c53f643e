// Package batch runs salient-object detection over many images at once,
// discovered from files and directories.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MeKo-Tech/salient/internal/saliency"
)

// ProcessBatch discovers image files under the given paths and runs
// detection on each.
func ProcessBatch(ctx context.Context, paths []string, cfg *Config) (*Result, error) {
	files, err := discoverImageFiles(paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	det, err := saliency.New(cfg.Detector)
	if err != nil {
		return nil, fmt.Errorf("failed to build detector: %w", err)
	}

	start := time.Now()
	results, err := processImages(ctx, det, files, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Results:  results,
		Duration: time.Since(start),
	}, nil
}

// SaveResults writes the formatted results to a file, or to w when no
// output file is configured.
func (r *Result) SaveResults(w io.Writer, format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			fmt.Fprintf(w, "Results written to %s\n", outputFile)
		}
		return nil
	}

	_, err = fmt.Fprint(w, output)
	return err
}

// PrintStats writes run statistics to w.
func (r *Result) PrintStats(w io.Writer) {
	total := len(r.Results)
	failed := r.Failed()
	fmt.Fprintf(w, "\nProcessing Statistics:\n")
	fmt.Fprintf(w, "  Total images: %d\n", total)
	fmt.Fprintf(w, "  Processed: %d\n", total-failed)
	fmt.Fprintf(w, "  Failed: %d\n", failed)
	fmt.Fprintf(w, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if total > 0 {
		fmt.Fprintf(w, "  Avg per image: %v\n", (r.Duration / time.Duration(total)).Round(time.Millisecond))
	}
}
