//go:build opencv

package opencv

import (
	"fmt"
	"image"
	"io"

	"github.com/koki-develop/img2ascii/internal/errs"
	"gocv.io/x/gocv"
)

// Source decodes video frames with OpenCV and converts them to grayscale.
type Source struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	gray    gocv.Mat
	fps     float64
	count   int
}

func Open(path string) (*Source, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open video: %w", errs.ErrResourceLoad, err)
	}
	if !capture.IsOpened() {
		_ = capture.Close()
		return nil, fmt.Errorf("%w: failed to open video: %s", errs.ErrResourceLoad, path)
	}

	return &Source{
		capture: capture,
		frame:   gocv.NewMat(),
		gray:    gocv.NewMat(),
		fps:     capture.Get(gocv.VideoCaptureFPS),
		count:   int(capture.Get(gocv.VideoCaptureFrameCount)),
	}, nil
}

func (s *Source) FPS() float64 {
	return s.fps
}

func (s *Source) FrameCount() int {
	return s.count
}

func (s *Source) Next() (image.Image, error) {
	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, io.EOF
	}

	gocv.CvtColor(s.frame, &s.gray, gocv.ColorBGRToGray)
	img, err := s.gray.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrBadFrame, err)
	}
	return img, nil
}

func (s *Source) Close() error {
	_ = s.frame.Close()
	_ = s.gray.Close()
	return s.capture.Close()
}
