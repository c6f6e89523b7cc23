//go:build !opencv

package opencv

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/koki-develop/img2ascii/internal/errs"
)

// ErrUnsupported is returned when the binary was built without the opencv tag.
var ErrUnsupported = errors.New("built without opencv support (rebuild with -tags opencv)")

type Source struct{}

func Open(path string) (*Source, error) {
	return nil, fmt.Errorf("%w: %w", errs.ErrResourceLoad, ErrUnsupported)
}

func (s *Source) FPS() float64 { return 0 }

func (s *Source) FrameCount() int { return 0 }

func (s *Source) Next() (image.Image, error) { return nil, io.EOF }

func (s *Source) Close() error { return nil }
