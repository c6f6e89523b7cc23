package ffmpeg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

type Probe struct {
	FrameRate  float64
	FrameCount int
	Width      int
	Height     int
}

type probe struct {
	Streams []struct {
		RFrameRate string `json:"r_frame_rate"`
		NbFrames   string `json:"nb_frames"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
	} `json:"streams"`
}

func (p *probe) Probe() (*Probe, error) {
	if len(p.Streams) == 0 {
		return nil, errors.New("no video streams found")
	}
	s := p.Streams[0]

	// r_frame_rate is returned in a format like "30000/1001"
	ns := strings.Split(s.RFrameRate, "/")
	if len(ns) != 2 {
		return nil, fmt.Errorf("invalid r_frame_rate format: %s", s.RFrameRate)
	}

	n, err := strconv.ParseFloat(ns[0], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse numerator: %w", err)
	}

	d, err := strconv.ParseFloat(ns[1], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse denominator: %w", err)
	}
	if d == 0 {
		return nil, fmt.Errorf("invalid r_frame_rate format: %s", s.RFrameRate)
	}

	// nb_frames is "N/A" for containers that do not record it
	count, err := strconv.Atoi(s.NbFrames)
	if err != nil {
		count = 0
	}

	return &Probe{
		FrameRate:  n / d,
		FrameCount: count,
		Width:      s.Width,
		Height:     s.Height,
	}, nil
}

func parseProbe(out []byte) (*Probe, error) {
	var p probe
	if err := json.Unmarshal(out, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}
	return p.Probe()
}

func FFProbe(path string) (*Probe, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-select_streams", "v:0", "-show_entries", "stream=r_frame_rate,nb_frames,width,height", "-of", "json", path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute ffprobe: %w", err)
	}
	return parseProbe(out)
}
