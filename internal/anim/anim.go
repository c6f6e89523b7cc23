// Package anim reads animated GIFs as a sequence of full frames.
package anim

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"

	"github.com/koki-develop/img2ascii/internal/errs"
	"golang.org/x/image/draw"
)

// Browsers play frames with no delay at 10 fps.
const defaultFPS = 10

type Source struct {
	g      *gif.GIF
	canvas *image.RGBA
	next   int
}

func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open gif: %w", errs.ErrResourceLoad, err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Source, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode gif: %w", errs.ErrResourceLoad, err)
	}

	w, h := g.Config.Width, g.Config.Height
	if (w == 0 || h == 0) && len(g.Image) > 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	return &Source{
		g:      g,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

func (s *Source) FPS() float64 {
	if len(s.g.Delay) == 0 {
		return defaultFPS
	}
	total := 0
	for _, d := range s.g.Delay {
		total += d
	}
	if total == 0 {
		return defaultFPS
	}
	// delays are in 1/100s
	return 100 * float64(len(s.g.Delay)) / float64(total)
}

func (s *Source) FrameCount() int {
	return len(s.g.Image)
}

// Next composites the next frame over the previous ones and returns a copy.
func (s *Source) Next() (image.Image, error) {
	if s.next >= len(s.g.Image) {
		return nil, io.EOF
	}
	i := s.next
	s.next++

	frame := s.g.Image[i]
	disposal := byte(gif.DisposalNone)
	if i < len(s.g.Disposal) {
		disposal = s.g.Disposal[i]
	}

	var saved *image.RGBA
	if disposal == gif.DisposalPrevious {
		saved = clone(s.canvas)
	}

	draw.Draw(s.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	out := clone(s.canvas)

	switch disposal {
	case gif.DisposalBackground:
		draw.Draw(s.canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		s.canvas = saved
	}
	return out, nil
}

func (s *Source) Close() error {
	return nil
}

func clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
