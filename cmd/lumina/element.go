package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lumina/internal/source"
)

func newElementCmd(flags *rootFlags) *cobra.Command {
	paletteOpts := &paletteFlags{}

	cmd := &cobra.Command{
		Use:   "element <style-file|->",
		Short: "Extract a palette from an element style snapshot (YAML or JSON)",
		Args:  requireOneArg("element"),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := readElementStyle(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.service.ExtractFromElement(cmd.Context(), style, paletteOpts.apply(cmd, app.file.Options))
			if err != nil {
				return err
			}

			return writePalette(cmd.OutOrStdout(), flags.format, result)
		},
	}

	paletteOpts.register(cmd)
	return cmd
}

func readElementStyle(stdin io.Reader, path string) (source.ElementStyle, error) {
	var (
		body []byte
		err  error
	)
	if path == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return source.ElementStyle{}, fmt.Errorf("read element style: %w", err)
	}

	var style source.ElementStyle
	if err := yaml.Unmarshal(body, &style); err != nil {
		return source.ElementStyle{}, fmt.Errorf("parse element style: %w", err)
	}
	return style, nil
}
