package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a scale is requested with zero or negative geometry.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidRampLevel is returned when the ramp selector is out of range.
	ErrInvalidRampLevel = errors.New("invalid ramp level")

	// ErrResourceLoad is returned when an image, video or font cannot be opened or decoded.
	ErrResourceLoad = errors.New("failed to load resource")

	// ErrRender is returned when text measurement or drawing fails.
	ErrRender = errors.New("failed to render")

	// ErrWrite is returned when output cannot be persisted.
	ErrWrite = errors.New("failed to write output")

	// ErrBadFrame is returned by a frame source when a single frame could not
	// be decoded but the source has moved past it.
	ErrBadFrame = errors.New("bad frame")
)

type Stage string

const (
	StageDecode Stage = "decode"
	StageScale  Stage = "scale"
	StageMap    Stage = "map"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
)

// StageError records which pipeline stage failed and, for video input, on
// which frame. Frame is -1 outside of video mode.
type StageError struct {
	Stage Stage
	Frame int
	Err   error
}

func (e *StageError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// At wraps err with the stage it happened in. A nil err stays nil.
func At(stage Stage, frame int, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Frame: frame, Err: err}
}
