package anim

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"io"
	"testing"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var palette = color.Palette{color.Black, color.White}

func encode(t *testing.T, g *gif.GIF) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, gif.EncodeAll(buf, g))
	return buf
}

func frame(r image.Rectangle, idx uint8) *image.Paletted {
	p := image.NewPaletted(r, palette)
	for i := range p.Pix {
		p.Pix[i] = idx
	}
	return p
}

func TestSource_Frames(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{
			frame(image.Rect(0, 0, 4, 4), 0),
			frame(image.Rect(0, 0, 2, 2), 1),
			frame(image.Rect(2, 2, 4, 4), 1),
		},
		Delay:  []int{4, 4, 4},
		Config: image.Config{Width: 4, Height: 4},
	}

	s, err := Decode(encode(t, g))
	require.NoError(t, err)
	assert.Equal(t, 3, s.FrameCount())
	assert.InDelta(t, 25.0, s.FPS(), 0.001)

	var got []image.Image
	for {
		img, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, img)
	}
	require.Len(t, got, 3)

	for _, img := range got {
		assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	}

	white := color.RGBAModel.Convert(color.White)
	black := color.RGBAModel.Convert(color.Black)
	assert.Equal(t, black, got[0].At(0, 0))
	assert.Equal(t, white, got[1].At(0, 0))
	assert.Equal(t, black, got[1].At(3, 3))
	// partial frames accumulate over the previous ones
	assert.Equal(t, white, got[2].At(0, 0))
	assert.Equal(t, white, got[2].At(3, 3))
	assert.Equal(t, black, got[2].At(3, 0))
}

func TestSource_DefaultFPS(t *testing.T) {
	g := &gif.GIF{
		Image:  []*image.Paletted{frame(image.Rect(0, 0, 2, 2), 0)},
		Delay:  []int{0},
		Config: image.Config{Width: 2, Height: 2},
	}
	s, err := Decode(encode(t, g))
	require.NoError(t, err)
	assert.Equal(t, float64(defaultFPS), s.FPS())
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a gif")))
	assert.ErrorIs(t, err, errs.ErrResourceLoad)
}
