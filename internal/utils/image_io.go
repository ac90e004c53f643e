// Package utils hosts the thin I/O collaborators around the core pipeline:
// image loading, grayscale grid conversion and mask export.
package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/salient/internal/rips"
	"github.com/MeKo-Tech/salient/internal/saliency"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// ErrNotSquare reports an input image that is not square and was not
// requested to be resized.
var ErrNotSquare = errors.New("utils: image is not square")

// SupportedImageExtensions lists supported file extensions for loading.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ImageMetadata captures lightweight file and pixel information.
type ImageMetadata struct {
	Path      string
	Format    string
	SizeBytes int64
	Width     int
	Height    int
}

// LoadImage opens and decodes an image file, returning the image and
// metadata.
func LoadImage(path string) (image.Image, ImageMetadata, error) {
	if path == "" {
		return nil, ImageMetadata{}, errors.New("utils: empty image path")
	}
	if !IsSupportedImage(path) {
		return nil, ImageMetadata{}, fmt.Errorf("utils: unsupported format: %s", filepath.Ext(path))
	}

	f, err := os.Open(path) //nolint:gosec // G304: Reading user-provided image file path is expected
	if err != nil {
		return nil, ImageMetadata{}, fmt.Errorf("utils: open image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing image file: %v\n", cerr)
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, ImageMetadata{}, fmt.Errorf("utils: stat image: %w", err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, ImageMetadata{}, fmt.Errorf("utils: decode image: %w", err)
	}

	b := img.Bounds()
	meta := ImageMetadata{
		Path:      path,
		Format:    format,
		SizeBytes: fi.Size(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}
	return img, meta, nil
}

// GridFromImage converts an image into a square grayscale grid. When side
// is positive the image is resized to side x side first; otherwise the
// image must already be square.
func GridFromImage(img image.Image, side int) (*rips.Grid, error) {
	if img == nil {
		return nil, errors.New("utils: input image is nil")
	}
	if side > 0 {
		img = imaging.Resize(img, side, side, imaging.Lanczos)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}

	gray := imaging.Grayscale(img)
	n := gray.Bounds().Dx()
	pix := make([]uint8, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			// Grayscale output has R = G = B.
			pix = append(pix, gray.NRGBAAt(x, y).R)
		}
	}
	return rips.NewGrid(n, pix)
}

// MaskImage converts a detection mask into a grayscale image.
func MaskImage(m *saliency.Mask) *image.Gray {
	n := m.Side()
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetGray(x, y, color.Gray{Y: m.At(y, x)})
		}
	}
	return img
}

// SaveMask writes a detection mask to disk; the format follows the file
// extension.
func SaveMask(m *saliency.Mask, path string) error {
	if m == nil {
		return errors.New("utils: mask is nil")
	}
	if err := imaging.Save(MaskImage(m), path); err != nil {
		return fmt.Errorf("utils: save mask: %w", err)
	}
	return nil
}
