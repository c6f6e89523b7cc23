package pipeline

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/koki-develop/img2ascii/internal/imgio"
	"go.uber.org/zap"
)

// FrameSource yields decoded frames in order. Next returns io.EOF once the
// source is exhausted and an error wrapping errs.ErrBadFrame when a single
// frame was skipped.
type FrameSource interface {
	FPS() float64
	FrameCount() int
	Next() (image.Image, error)
}

type Report struct {
	FPS        float64
	FrameCount int // as declared by the source
	Read       int
	Written    []string
	Failures   []*errs.StageError
}

// FrameName is the file name of the n-th written frame.
func FrameName(n int) string {
	return fmt.Sprintf("%05d%s", n, imgio.RasterExt)
}

// ConvertVideo renders every frame of src into dir as 00000.jpg, 00001.jpg
// and so on. A frame that fails is recorded in the report and skipped; only
// a source that cannot be read any further stops the run.
func (s *Session) ConvertVideo(src FrameSource, dir string) (*Report, error) {
	report := &Report{
		FPS:        src.FPS(),
		FrameCount: src.FrameCount(),
	}
	if _, err := s.converter.Ramp(s.level); err != nil {
		s.state = StateFailed
		return report, errs.At(errs.StageMap, -1, err)
	}

	s.state = StateStreaming
	s.logger.Info("converting video",
		zap.Float64("fps", report.FPS),
		zap.Int("frames", report.FrameCount),
		zap.String("dir", dir),
	)

	for i := 0; ; i++ {
		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		report.Read++
		if err != nil {
			if !errors.Is(err, errs.ErrBadFrame) {
				s.state = StateFailed
				return report, errs.At(errs.StageDecode, i, err)
			}
			s.fail(report, errs.At(errs.StageDecode, i, err))
			continue
		}

		path, err := s.convertFrame(img, i, filepath.Join(dir, FrameName(len(report.Written))))
		if err != nil {
			s.fail(report, err)
			continue
		}
		report.Written = append(report.Written, path)
		s.logger.Debug("frame converted", zap.Int("frame", i), zap.String("output", path))
	}

	s.state = StateDone
	s.logger.Info("video converted",
		zap.Int("read", report.Read),
		zap.Int("written", len(report.Written)),
		zap.Int("failed", len(report.Failures)),
	)
	return report, nil
}

func (s *Session) convertFrame(img image.Image, frame int, output string) (string, error) {
	gray := imgio.Grayscale(img)

	text, err := s.Glyphs(gray, frame)
	if err != nil {
		return "", err
	}
	canvas, err := s.render(text, frame)
	if err != nil {
		return "", err
	}
	path, err := imgio.SaveJPEG(canvas, output)
	if err != nil {
		return "", errs.At(errs.StageWrite, frame, err)
	}
	return path, nil
}

func (s *Session) fail(report *Report, err error) {
	var se *errs.StageError
	if !errors.As(err, &se) {
		se = &errs.StageError{Stage: errs.StageDecode, Frame: report.Read - 1, Err: err}
	}
	report.Failures = append(report.Failures, se)
	s.logger.Warn("frame failed",
		zap.Int("frame", se.Frame),
		zap.String("stage", string(se.Stage)),
		zap.Error(se.Err),
	)
}
