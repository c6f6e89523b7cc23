package pipeline

import (
	"image"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/koki-develop/img2ascii/internal/render"
	"github.com/koki-develop/img2ascii/internal/resize"
	"go.uber.org/zap"
)

const (
	DefaultIdealWidth  = 100
	DefaultIdealHeight = 100
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateConfigured    State = "configured"
	StateStreaming     State = "streaming"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// Session holds everything one conversion run needs. It is not safe for
// concurrent use.
type Session struct {
	logger *zap.Logger

	resizer   *resize.Resizer
	converter *ascii.Converter
	renderer  *render.Renderer

	idealWidth  int
	idealHeight int
	level       int

	state State
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithConverter(c *ascii.Converter) Option {
	return func(s *Session) {
		if c != nil {
			s.converter = c
		}
	}
}

func WithLevel(level int) Option {
	return func(s *Session) {
		s.level = level
	}
}

func WithIdealScale(w, h int) Option {
	return func(s *Session) {
		s.SetIdealScale(w, h)
	}
}

// NewSession wires a session around face. Rendering is only available when
// face is non-nil.
func NewSession(face render.Face, lineHeight float64, opts ...Option) *Session {
	s := &Session{
		logger:    zap.NewNop(),
		resizer:   resize.NewResizer(),
		converter: ascii.NewConverter(),
		state:     StateUninitialized,
	}
	if face != nil {
		s.renderer = render.NewRenderer(face, lineHeight)
	}
	s.SetIdealScale(DefaultIdealWidth, DefaultIdealHeight)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) SetIdealScale(w, h int) {
	s.idealWidth = w
	s.idealHeight = h
	if s.state == StateUninitialized {
		s.state = StateConfigured
	}
}

func (s *Session) SetLevel(level int) {
	s.level = level
}

func (s *Session) State() State {
	return s.state
}

// Renderer exposes the canvas cache, mainly so callers can Reset it.
func (s *Session) Renderer() *render.Renderer {
	return s.renderer
}

// Glyphs runs the scale and map stages on one grayscale frame. frame is only
// used to label errors and is -1 outside video mode.
func (s *Session) Glyphs(img *image.Gray, frame int) (ascii.Text, error) {
	// checked first so nothing is scaled for a bad selector
	if _, err := s.converter.Ramp(s.level); err != nil {
		return nil, errs.At(errs.StageMap, frame, err)
	}

	fitted, err := s.resizer.Fit(img, s.idealWidth, s.idealHeight)
	if err != nil {
		return nil, errs.At(errs.StageScale, frame, err)
	}
	stretched, err := s.resizer.Stretch(fitted)
	if err != nil {
		return nil, errs.At(errs.StageScale, frame, err)
	}

	text, err := s.converter.ImageToASCII(stretched, s.level)
	if err != nil {
		return nil, errs.At(errs.StageMap, frame, err)
	}
	return text, nil
}

func (s *Session) render(text ascii.Text, frame int) (*image.RGBA, error) {
	if s.renderer == nil {
		return nil, errs.At(errs.StageRender, frame, errNoFont)
	}
	canvas, err := s.renderer.Render(text)
	if err != nil {
		return nil, errs.At(errs.StageRender, frame, err)
	}
	return canvas, nil
}
