package ascii

import (
	"image"
	"strings"
	"testing"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_InRange(t *testing.T) {
	for _, n := range []int{1, 2, 10, len([]rune(RampDetailed))} {
		for v := 0; v <= 255; v++ {
			i := Index(uint8(v), n)
			if i < 0 || i >= n {
				t.Fatalf("Index(%d, %d) = %d, out of range", v, n, i)
			}
		}
	}
}

func TestIndex_Boundaries(t *testing.T) {
	assert.Equal(t, 0, Index(0, 10))
	assert.Equal(t, 9, Index(255, 10))
	assert.Equal(t, 4, Index(127, 10))
	assert.Equal(t, 5, Index(128, 10))
	assert.Equal(t, 0, Index(255, 1))
}

func TestConverter_ImageToASCII_Black(t *testing.T) {
	c, err := NewConverterWithRamps("@ ")
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, 10, 10))
	text, err := c.ImageToASCII(img, 0)
	require.NoError(t, err)

	require.Len(t, text, 10)
	for _, line := range text {
		assert.Equal(t, "@@@@@@@@@@", line)
	}
	assert.Equal(t, strings.Repeat("@@@@@@@@@@\n", 10), text.String())
}

func TestConverter_ImageToASCII_Geometry(t *testing.T) {
	c := NewConverter()
	img := image.NewGray(image.Rect(0, 0, 17, 5))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}

	for level := 0; level < c.Levels(); level++ {
		text, err := c.ImageToASCII(img, level)
		require.NoError(t, err)
		assert.Len(t, text, 5)
		for _, line := range text {
			assert.Equal(t, 17, len([]rune(line)))
		}
		assert.Equal(t, 17, text.Width())
	}
}

func TestConverter_ImageToASCII_Deterministic(t *testing.T) {
	c := NewConverter()
	img := image.NewGray(image.Rect(0, 0, 32, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 31) % 256)
	}

	a, err := c.ImageToASCII(img, 0)
	require.NoError(t, err)
	b, err := c.ImageToASCII(img, 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConverter_ImageToASCII_WhiteIsSparsest(t *testing.T) {
	c := NewConverter()
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	text, err := c.ImageToASCII(img, 1)
	require.NoError(t, err)
	assert.Equal(t, Text{"   "}, text)
}

func TestConverter_ImageToASCII_InvalidLevel(t *testing.T) {
	c := NewConverter()
	img := image.NewGray(image.Rect(0, 0, 2, 2))

	for _, level := range []int{-1, 2, 5} {
		text, err := c.ImageToASCII(img, level)
		assert.ErrorIs(t, err, errs.ErrInvalidRampLevel)
		assert.Nil(t, text)
	}
}

func TestNewConverterWithRamps_Invalid(t *testing.T) {
	_, err := NewConverterWithRamps()
	assert.Error(t, err)

	_, err = NewConverterWithRamps("@ ", "")
	assert.Error(t, err)
}

func TestText_Width(t *testing.T) {
	assert.Equal(t, 0, Text{}.Width())
	assert.Equal(t, 3, Text{"a#b", "x"}.Width())
	assert.Equal(t, "", Text{}.String())
}
