package main

import (
	"github.com/spf13/cobra"
)

func newCoverCmd(flags *rootFlags) *cobra.Command {
	paletteOpts := &paletteFlags{}

	cmd := &cobra.Command{
		Use:   "cover <audio-file>",
		Short: "Extract a palette from the artwork embedded in an audio file",
		Args:  requireOneArg("cover"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.ExtractFromAudioCover(cmd.Context(), args[0], paletteOpts.apply(cmd, app.file.Options))
			if err != nil {
				return err
			}

			return writePalette(cmd.OutOrStdout(), flags.format, result)
		},
	}

	paletteOpts.register(cmd)
	return cmd
}
