package cmd

import (
	"github.com/koki-develop/img2ascii/internal/pipeline"
	"github.com/koki-develop/img2ascii/internal/ui"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <input>",
	Short: "Play a video as ASCII art in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		s := pipeline.NewSession(nil, 0, pipeline.WithLevel(opts.level))
		return ui.Start(&ui.Option{Source: src, Session: s})
	},
}

func init() {
	playCmd.Flags().StringVarP(&decoder, "decoder", "d", "ffmpeg", "frame decoder: ffmpeg, gif or opencv")
	rootCmd.AddCommand(playCmd)
}
