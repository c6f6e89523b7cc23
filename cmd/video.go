package cmd

import (
	"fmt"
	"os"

	"github.com/koki-develop/img2ascii/internal/anim"
	"github.com/koki-develop/img2ascii/internal/ffmpeg"
	"github.com/koki-develop/img2ascii/internal/logger"
	"github.com/koki-develop/img2ascii/internal/opencv"
	"github.com/koki-develop/img2ascii/internal/pipeline"
	"github.com/spf13/cobra"
)

type frameSource interface {
	pipeline.FrameSource
	Close() error
}

var decoder string

func openSource(path string) (frameSource, error) {
	var (
		src frameSource
		err error
	)
	switch decoder {
	case "ffmpeg":
		src, err = ffmpeg.Open(path)
	case "gif":
		src, err = anim.Open(path)
	case "opencv":
		src, err = opencv.Open(path)
	default:
		return nil, fmt.Errorf("unknown decoder: %s (want ffmpeg, gif or opencv)", decoder)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

var videoCmd = &cobra.Command{
	Use:   "video <input> [dir]",
	Short: "Render every frame of a video as numbered ASCII art images",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 2 {
			dir = args[1]
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		log, err := logger.New(opts.verbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		s, closeFace, err := newSession(log)
		if err != nil {
			return err
		}
		defer closeFace()

		src, err := openSource(args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		report, err := s.ConvertVideo(src, dir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d frames written to %s\n", len(report.Written), report.Read, dir)
		for _, f := range report.Failures {
			fmt.Fprintln(cmd.ErrOrStderr(), "skipped", f)
		}
		if report.Read > 0 && len(report.Written) == 0 {
			return fmt.Errorf("no frame could be converted")
		}
		return nil
	},
}

func init() {
	videoCmd.Flags().StringVarP(&decoder, "decoder", "d", "ffmpeg", "frame decoder: ffmpeg, gif or opencv")
	rootCmd.AddCommand(videoCmd)
}
