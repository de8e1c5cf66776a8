package main

import (
	"strings"

	"github.com/spf13/cobra"

	"lumina/internal/palette"
)

func newExtractCmd(flags *rootFlags) *cobra.Command {
	paletteOpts := &paletteFlags{}

	cmd := &cobra.Command{
		Use:   "extract <image-path-or-url>",
		Short: "Extract a palette from an image file or URL",
		Args:  requireOneArg("extract"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			options := paletteOpts.apply(cmd, app.file.Options)
			target := args[0]

			var result palette.ColorPalette
			if isURL(target) {
				result, err = app.service.ExtractFromURL(cmd.Context(), target, options)
			} else {
				result, err = app.service.ExtractFromFile(cmd.Context(), target, options)
			}
			if err != nil {
				return err
			}

			return writePalette(cmd.OutOrStdout(), flags.format, result)
		},
	}

	paletteOpts.register(cmd)
	return cmd
}

func isURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
