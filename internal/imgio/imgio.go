package imgio

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/koki-develop/img2ascii/internal/errs"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	RasterExt = ".jpg"
	TextExt   = ".txt"
)

// LoadGray decodes the image at path and converts it to grayscale.
func LoadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", errs.ErrResourceLoad, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %w", errs.ErrResourceLoad, err)
	}
	return Grayscale(img), nil
}

// Grayscale returns img as an 8-bit gray image with its origin at (0, 0).
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// WithRasterExt appends the raster extension unless path already has it.
func WithRasterExt(path string) string {
	if strings.HasSuffix(path, RasterExt) {
		return path
	}
	return path + RasterExt
}

func IsText(path string) bool {
	return strings.HasSuffix(path, TextExt)
}

// SaveJPEG writes img to path and returns the path actually written, which
// carries the raster extension.
func SaveJPEG(img image.Image, path string) (string, error) {
	path = WithRasterExt(path)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create file: %w", errs.ErrWrite, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%w: failed to encode jpeg: %w", errs.ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close file: %w", errs.ErrWrite, err)
	}
	return path, nil
}

func WriteText(s, path string) error {
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write text: %w", errs.ErrWrite, err)
	}
	return nil
}
