package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/koki-develop/img2ascii/internal/errs"
	"golang.org/x/image/draw"
)

const (
	DefaultLineHeight = 10.0

	// Canvas height per line and the vertical step between drawn lines.
	// Output compatibility depends on both values as they are.
	canvasHeightFactor = 1.35
	lineOffsetFactor   = 1.37
)

// Face measures and draws a single line of text.
type Face interface {
	Measure(s string) int
	Draw(dst draw.Image, s string, x, y int, c color.Color)
}

type geometry struct {
	width int // runes in the first line
	lines int
}

type Renderer struct {
	face       Face
	lineHeight float64

	template *image.RGBA
	key      geometry
	builds   int
}

func NewRenderer(face Face, lineHeight float64) *Renderer {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	return &Renderer{
		face:       face,
		lineHeight: lineHeight,
	}
}

// Render draws text in black onto a copy of the cached white canvas. The
// canvas is built from the first call's geometry and rebuilt only when the
// line count or first line width changes.
func (r *Renderer) Render(text ascii.Text) (*image.RGBA, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: no lines to draw", errs.ErrRender)
	}

	key := geometry{width: text.Width(), lines: len(text)}
	if r.template == nil || r.key != key {
		tmpl, err := r.newTemplate(text)
		if err != nil {
			return nil, err
		}
		r.template = tmpl
		r.key = key
		r.builds++
	}

	canvas := cloneRGBA(r.template)
	for i, line := range text {
		y := int(r.lineHeight * float64(i) * lineOffsetFactor)
		r.face.Draw(canvas, line, 0, y, color.Black)
	}
	return canvas, nil
}

func (r *Renderer) newTemplate(text ascii.Text) (*image.RGBA, error) {
	w := r.face.Measure(text[0])
	h := int(r.lineHeight * float64(len(text)) * canvasHeightFactor)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas would be %dx%d", errs.ErrRender, w, h)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	return canvas, nil
}

// Reset drops the cached canvas so the next Render measures again.
func (r *Renderer) Reset() {
	r.template = nil
	r.key = geometry{}
}

// Builds reports how many times a canvas template has been built.
func (r *Renderer) Builds() int {
	return r.builds
}

func (r *Renderer) CanvasSize() (int, int, bool) {
	if r.template == nil {
		return 0, 0, false
	}
	b := r.template.Bounds()
	return b.Dx(), b.Dy(), true
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
