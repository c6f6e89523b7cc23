package typeface

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsMonospace(t *testing.T) {
	f, err := Default(10)
	require.NoError(t, err)
	defer f.Close()

	one := f.Measure("@")
	require.Greater(t, one, 0)
	assert.InDelta(t, one*10, f.Measure("@@@@@@@@@@"), 10)
	assert.Equal(t, f.Measure("@@@@@"), f.Measure("....."))
	assert.Equal(t, 0, f.Measure(""))
}

func TestFace_Draw(t *testing.T) {
	f, err := Default(10)
	require.NoError(t, err)
	defer f.Close()

	img := image.NewGray(image.Rect(0, 0, 40, 20))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f.Draw(img, "@@@", 0, 0, color.Black)

	dark := 0
	for _, v := range img.Pix {
		if v < 128 {
			dark++
		}
	}
	assert.Greater(t, dark, 0)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ttf"), 10)
	assert.ErrorIs(t, err, errs.ErrResourceLoad)

	p := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(p, []byte("not a font"), 0o644))
	_, err = Load(p, 10)
	assert.ErrorIs(t, err, errs.ErrResourceLoad)
}

func TestParse_InvalidSize(t *testing.T) {
	_, err := Default(0)
	assert.ErrorIs(t, err, errs.ErrInvalidDimensions)
}
