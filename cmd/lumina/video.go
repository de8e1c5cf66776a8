package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"lumina/internal/source"
)

func newVideoCmd(flags *rootFlags) *cobra.Command {
	paletteOpts := &paletteFlags{}
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "video <video-file>",
		Short: "Extract a palette from frames sampled across a video",
		Long:  "Samples up to ten frames spread over the video. Requires a build with the libmpv tag.",
		Args:  requireOneArg("video"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			video, err := source.OpenMPVVideo(args[0])
			if err != nil {
				return err
			}
			if closer, ok := video.(io.Closer); ok {
				defer closer.Close()
			}

			options := paletteOpts.apply(cmd, app.file.Options)
			if cmd.Flags().Changed("interval") {
				options.FrameInterval = interval
			}

			result, err := app.service.ExtractFromVideo(cmd.Context(), video, options)
			if err != nil {
				return err
			}

			return writePalette(cmd.OutOrStdout(), flags.format, result)
		},
	}

	paletteOpts.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Time between sampled frames")
	return cmd
}
