package ffmpeg

import (
	"errors"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/koki-develop/img2ascii/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbe(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    *Probe
		wantErr bool
	}{
		{
			name: "ntsc",
			out:  `{"streams":[{"r_frame_rate":"30000/1001","nb_frames":"300","width":640,"height":480}]}`,
			want: &Probe{FrameRate: 30000.0 / 1001.0, FrameCount: 300, Width: 640, Height: 480},
		},
		{
			name: "unknown frame count",
			out:  `{"streams":[{"r_frame_rate":"25/1","nb_frames":"N/A","width":320,"height":240}]}`,
			want: &Probe{FrameRate: 25, FrameCount: 0, Width: 320, Height: 240},
		},
		{name: "no streams", out: `{"streams":[]}`, wantErr: true},
		{name: "bad rate", out: `{"streams":[{"r_frame_rate":"25"}]}`, wantErr: true},
		{name: "zero denominator", out: `{"streams":[{"r_frame_rate":"25/0"}]}`, wantErr: true},
		{name: "not json", out: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbe([]byte(tt.out))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortFrames(t *testing.T) {
	files := []string{"d/10.jpg", "d/2.jpg", "d/1.jpg", "d/11.jpg", "d/100.jpg"}
	sortFrames(files)
	assert.Equal(t, []string{"d/1.jpg", "d/2.jpg", "d/10.jpg", "d/11.jpg", "d/100.jpg"}, files)
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 4, 2)), nil))
	require.NoError(t, f.Close())
}

func TestSource_Next(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "1.jpg")
	bad := filepath.Join(dir, "2.jpg")
	last := filepath.Join(dir, "3.jpg")
	writeJPEG(t, good)
	require.NoError(t, os.WriteFile(bad, []byte("broken"), 0o644))
	writeJPEG(t, last)

	s := &Source{probe: &Probe{FrameRate: 24}, dir: dir, files: []string{good, bad, last}}
	assert.Equal(t, 3, s.FrameCount())
	assert.Equal(t, 24.0, s.FPS())

	img, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = s.Next()
	assert.ErrorIs(t, err, errs.ErrBadFrame)

	_, err = s.Next()
	require.NoError(t, err)

	_, err = s.Next()
	assert.True(t, errors.Is(err, io.EOF))

	require.NoError(t, s.Close())
	assert.NoDirExists(t, dir)
}

func TestSource_FrameCountFallsBackToProbe(t *testing.T) {
	s := &Source{probe: &Probe{FrameCount: 42}}
	assert.Equal(t, 42, s.FrameCount())
}
