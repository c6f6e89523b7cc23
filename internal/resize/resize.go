package resize

import (
	"fmt"
	"image"
	"math"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// DefaultStretch widens images to make up for monospace cells being taller than wide.
const DefaultStretch = 2.5

type Resizer struct {
	stretch float64
	interp  resize.InterpolationFunction
}

func NewResizer() *Resizer {
	return &Resizer{
		stretch: DefaultStretch,
		interp:  resize.Bilinear,
	}
}

// Fit scales img uniformly so that it fits inside a w x h box.
func (r *Resizer) Fit(img *image.Gray, w, h int) (*image.Gray, error) {
	sz := img.Bounds()
	if sz.Dx() <= 0 || sz.Dy() <= 0 {
		return nil, fmt.Errorf("%w: source is %dx%d", errs.ErrInvalidDimensions, sz.Dx(), sz.Dy())
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: ideal box is %dx%d", errs.ErrInvalidDimensions, w, h)
	}

	ratio := math.Min(float64(w)/float64(sz.Dx()), float64(h)/float64(sz.Dy()))
	return r.scale(img, ratio, ratio), nil
}

// Stretch applies the fixed horizontal correction, leaving the height as is.
func (r *Resizer) Stretch(img *image.Gray) (*image.Gray, error) {
	sz := img.Bounds()
	if sz.Dx() <= 0 || sz.Dy() <= 0 {
		return nil, fmt.Errorf("%w: source is %dx%d", errs.ErrInvalidDimensions, sz.Dx(), sz.Dy())
	}
	return r.scale(img, r.stretch, 1.0), nil
}

func (r *Resizer) scale(img *image.Gray, rx, ry float64) *image.Gray {
	sz := img.Bounds()
	neww := scaledLength(sz.Dx(), rx)
	newh := scaledLength(sz.Dy(), ry)
	return toGray(resize.Resize(uint(neww), uint(newh), img, r.interp))
}

func scaledLength(n int, ratio float64) int {
	return max(1, int(math.Round(float64(n)*ratio)))
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}
