package main

import (
	"github.com/spf13/cobra"
)

const appSlug = "lumina"

type rootFlags struct {
	verbose    bool
	logLevel   string
	configPath string
	format     string
	noStore    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "lumina",
		Short:         "Lumina extracts color palettes from images, video and styles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Options file (defaults to the user config directory)")
	cmd.PersistentFlags().StringVarP(&flags.format, "output", "o", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flags.noStore, "no-store", false, "Skip the persistent palette store")

	cmd.AddCommand(newExtractCmd(flags))
	cmd.AddCommand(newVideoCmd(flags))
	cmd.AddCommand(newCoverCmd(flags))
	cmd.AddCommand(newElementCmd(flags))
	cmd.AddCommand(newCacheCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
