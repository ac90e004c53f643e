package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/salient/internal/common"
	"github.com/MeKo-Tech/salient/internal/saliency"
	"github.com/MeKo-Tech/salient/internal/utils"
)

// processSingleImage loads one image and runs the detector on it.
func processSingleImage(ctx context.Context, det *saliency.Detector, path string, cfg *Config) (*saliency.Result, error) {
	img, meta, err := utils.LoadImage(path)
	if err != nil {
		return nil, err
	}

	grid, err := utils.GridFromImage(img, cfg.Side)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	slog.Debug("image loaded", "file", meta.Path, "format", meta.Format, "side", grid.Side())

	res, err := det.DetectContext(ctx, grid)
	if err != nil {
		return res, err
	}

	if cfg.MaskDir != "" {
		if err := saveMask(res, meta.Path, cfg.MaskDir); err != nil {
			return res, err
		}
	}
	return res, nil
}

// saveMask writes the mask next to the image's base name in the mask directory.
func saveMask(res *saliency.Result, imagePath, maskDir string) error {
	if err := os.MkdirAll(maskDir, 0o750); err != nil {
		return fmt.Errorf("create mask dir: %w", err)
	}
	base := filepath.Base(imagePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "_mask.png"
	return utils.SaveMask(res.Mask, filepath.Join(maskDir, name))
}

// processImages runs detection over all files in order. With
// ContinueOnError each failure is recorded in its ImageResult; otherwise
// the first failure aborts the run.
func processImages(ctx context.Context, det *saliency.Detector, files []string, cfg *Config) ([]ImageResult, error) {
	results := make([]ImageResult, len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		timer := common.NewNamedTimer(path)
		res, err := processSingleImage(ctx, det, path, cfg)
		timer.Stop()
		slog.Debug("image processed", "timer", timer.String(), "err", err)

		if err != nil && !cfg.ContinueOnError {
			return nil, fmt.Errorf("processing %s: %w", path, err)
		}
		results[i] = ImageResult{File: path, Res: res, Err: err}
	}

	return results, nil
}
