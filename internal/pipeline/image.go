package pipeline

import (
	"fmt"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/koki-develop/img2ascii/internal/imgio"
	"go.uber.org/zap"
)

var errNoFont = fmt.Errorf("%w: no font loaded", errs.ErrRender)

// ConvertImage converts the image at input and writes it to output. Output
// ending in .txt receives the glyph text; anything else is rendered to a jpg
// whose final path is returned.
func (s *Session) ConvertImage(input, output string) (string, error) {
	path, err := s.convertImage(input, output)
	if err != nil {
		s.state = StateFailed
		return "", err
	}
	s.state = StateDone
	s.logger.Info("image converted", zap.String("input", input), zap.String("output", path))
	return path, nil
}

func (s *Session) convertImage(input, output string) (string, error) {
	img, err := imgio.LoadGray(input)
	if err != nil {
		return "", errs.At(errs.StageDecode, -1, err)
	}
	s.logger.Debug("image loaded",
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)

	text, err := s.Glyphs(img, -1)
	if err != nil {
		return "", err
	}

	if imgio.IsText(output) {
		if err := imgio.WriteText(text.String(), output); err != nil {
			return "", errs.At(errs.StageWrite, -1, err)
		}
		return output, nil
	}

	canvas, err := s.render(text, -1)
	if err != nil {
		return "", err
	}
	path, err := imgio.SaveJPEG(canvas, output)
	if err != nil {
		return "", errs.At(errs.StageWrite, -1, err)
	}
	return path, nil
}
