package ffmpeg

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/koki-develop/img2ascii/internal/errs"
)

// MovieToImages extracts every frame of input into dir as numbered jpgs and
// returns their paths in frame order.
func MovieToImages(input, dir string, fps float64) ([]string, error) {
	// Execute ffmpeg
	cmd := exec.Command("ffmpeg", "-v", "error", "-i", input, "-vf", fmt.Sprintf("fps=fps=%f", fps), filepath.Join(dir, "%d.jpg"))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to execute ffmpeg: %w", err)
	}

	// Get list of generated files
	files, err := filepath.Glob(filepath.Join(dir, "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list generated files: %w", err)
	}

	sortFrames(files)
	return files, nil
}

// sortFrames orders "2.jpg" before "10.jpg".
func sortFrames(files []string) {
	sort.Slice(files, func(i, j int) bool {
		if len(files[i]) == len(files[j]) {
			return files[i] < files[j]
		}
		return len(files[i]) < len(files[j])
	})
}

// Source reads the frames of a video one at a time. Frames are extracted up
// front into a temporary directory that Close removes.
type Source struct {
	probe *Probe
	dir   string
	files []string
	next  int
}

func Open(path string) (*Source, error) {
	probe, err := FFProbe(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to probe video: %w", errs.ErrResourceLoad, err)
	}

	// Create tmp directory
	dir, err := os.MkdirTemp("", "img2ascii")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create tmp directory: %w", errs.ErrResourceLoad, err)
	}

	files, err := MovieToImages(path, dir, probe.FrameRate)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %w", errs.ErrResourceLoad, err)
	}

	return &Source{probe: probe, dir: dir, files: files}, nil
}

func (s *Source) FPS() float64 {
	return s.probe.FrameRate
}

// FrameCount prefers the number of extracted frames over the container's
// declared count.
func (s *Source) FrameCount() int {
	if len(s.files) > 0 {
		return len(s.files)
	}
	return s.probe.FrameCount
}

func (s *Source) Next() (image.Image, error) {
	if s.next >= len(s.files) {
		return nil, io.EOF
	}
	path := s.files[s.next]
	s.next++

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrBadFrame, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", errs.ErrBadFrame, filepath.Base(path), err)
	}
	return img, nil
}

func (s *Source) Close() error {
	return os.RemoveAll(s.dir)
}
