package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lumina/internal/cache"
)

func newCacheCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the persistent palette store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number of stored palettes and the store size",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, paths, _, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}

			path := storePath(file, paths)
			store, err := cache.OpenStore(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}

			size := "0 B"
			if info, err := os.Stat(path); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "store: %s\nentries: %s\nsize: %s\n", path, humanize.Comma(int64(count)), size)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every stored palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, paths, _, err := loadSettings(cmd, flags)
			if err != nil {
				return err
			}

			store, err := cache.OpenStore(cmd.Context(), storePath(file, paths))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "palette store cleared")
			return nil
		},
	})

	return cmd
}
