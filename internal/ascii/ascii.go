package ascii

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/koki-develop/img2ascii/internal/errs"
)

// Built-in ramps, densest glyph first.
const (
	RampDetailed = `$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\|()1{}[]?-_+~i!lI;:,"^` + "`. "
	RampSimple   = "@%#*+=-:. "
)

// Text is one string per pixel row, one rune per pixel.
type Text []string

// String joins the rows, terminating each with a newline.
func (t Text) String() string {
	b := new(strings.Builder)
	for _, line := range t {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Width is the rune count of the first row.
func (t Text) Width() int {
	if len(t) == 0 {
		return 0
	}
	return utf8.RuneCountInString(t[0])
}

type Converter struct {
	ramps [][]rune
}

func NewConverter() *Converter {
	c, _ := NewConverterWithRamps(RampDetailed, RampSimple)
	return c
}

// NewConverterWithRamps builds a converter over the given ramps, selected by
// their position. Every ramp must hold at least one rune.
func NewConverterWithRamps(ramps ...string) (*Converter, error) {
	if len(ramps) == 0 {
		return nil, errors.New("at least one ramp is required")
	}
	rs := make([][]rune, 0, len(ramps))
	for i, r := range ramps {
		if r == "" {
			return nil, fmt.Errorf("ramp %d is empty", i)
		}
		rs = append(rs, []rune(r))
	}
	return &Converter{ramps: rs}, nil
}

// Levels is the number of selectable ramps.
func (c *Converter) Levels() int {
	return len(c.ramps)
}

func (c *Converter) Ramp(level int) ([]rune, error) {
	if level < 0 || level >= len(c.ramps) {
		return nil, fmt.Errorf("%w: %d (have %d ramps)", errs.ErrInvalidRampLevel, level, len(c.ramps))
	}
	return c.ramps[level], nil
}

func (c *Converter) ImageToASCII(img *image.Gray, level int) (Text, error) {
	ramp, err := c.Ramp(level)
	if err != nil {
		return nil, err
	}

	sz := img.Bounds()
	rows := make(Text, 0, sz.Dy())
	for y := sz.Min.Y; y < sz.Max.Y; y++ {
		b := new(strings.Builder)
		b.Grow(sz.Dx())
		for x := sz.Min.X; x < sz.Max.X; x++ {
			b.WriteRune(ramp[Index(img.GrayAt(x, y).Y, len(ramp))])
		}
		rows = append(rows, b.String())
	}
	return rows, nil
}

// Index quantizes an intensity onto a ramp of length n.
func Index(v uint8, n int) int {
	i := int(float64(v) / 256.0 * float64(n))
	return min(max(i, 0), n-1)
}
