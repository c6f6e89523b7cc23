package cmd

import (
	"fmt"
	"os"

	"github.com/koki-develop/img2ascii/internal/logger"
	"github.com/koki-develop/img2ascii/internal/pipeline"
	"github.com/koki-develop/img2ascii/internal/render"
	"github.com/koki-develop/img2ascii/internal/typeface"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	width      int
	height     int
	level      int
	lineHeight float64
	fontPath   string
	verbose    bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:           "img2ascii <input> <output>",
	Short:         "Convert an image into ASCII art",
	Long:          "Convert an image into ASCII art. Output ending in .txt receives the text, anything else is rendered to a .jpg.",
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		path, err := s.ConvertImage(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.IntVarP(&opts.width, "width", "W", pipeline.DefaultIdealWidth, "ideal output width in characters before stretching")
	f.IntVarP(&opts.height, "height", "H", pipeline.DefaultIdealHeight, "ideal output height in lines")
	f.IntVarP(&opts.level, "level", "l", 0, "density ramp: 0 detailed, 1 simple")
	f.Float64Var(&opts.lineHeight, "line-height", render.DefaultLineHeight, "font size in pixels for rendered output")
	f.StringVar(&opts.fontPath, "font", "", "TTF font to render with (default: embedded Go Mono)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

// newSession loads the font and builds a session from the flags. Failing to
// load the font is fatal.
func newSession(log *zap.Logger) (*pipeline.Session, func(), error) {
	var (
		face *typeface.Face
		err  error
	)
	if opts.fontPath != "" {
		face, err = typeface.Load(opts.fontPath, opts.lineHeight)
	} else {
		face, err = typeface.Default(opts.lineHeight)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load font: %w", err)
	}

	s := pipeline.NewSession(face, opts.lineHeight,
		pipeline.WithLogger(log),
		pipeline.WithIdealScale(opts.width, opts.height),
		pipeline.WithLevel(opts.level),
	)
	return s, func() { _ = face.Close() }, nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
