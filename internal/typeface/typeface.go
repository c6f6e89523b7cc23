package typeface

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/koki-develop/img2ascii/internal/errs"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// Face is a monospace font at a fixed pixel size.
type Face struct {
	face   font.Face
	size   float64
	ascent int
}

// Default returns the embedded Go Mono font at size pixels.
func Default(size float64) (*Face, error) {
	return Parse(gomono.TTF, size)
}

func Load(path string, size float64) (*Face, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read font: %w", errs.ErrResourceLoad, err)
	}
	return Parse(b, size)
}

func Parse(b []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", errs.ErrInvalidDimensions, size)
	}

	f, err := freetype.ParseFont(b)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse font: %w", errs.ErrResourceLoad, err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Face{
		face:   face,
		size:   size,
		ascent: face.Metrics().Ascent.Ceil(),
	}, nil
}

func (f *Face) Size() float64 {
	return f.size
}

// Measure returns the advance width of s in pixels.
func (f *Face) Measure(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// Draw renders s onto dst with its top-left corner at (x, y).
func (f *Face) Draw(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.P(x, y+f.ascent),
	}
	d.DrawString(s)
}

func (f *Face) Close() error {
	return f.face.Close()
}
