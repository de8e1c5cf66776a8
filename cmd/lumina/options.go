package main

import (
	"github.com/spf13/cobra"

	"lumina/internal/palette"
)

type paletteFlags struct {
	maxColors       int
	quality         string
	clustering      string
	ignoreWhite     bool
	ignoreBlack     bool
	noGradients     bool
	noAccessibility bool
	seed            uint64
}

func (f *paletteFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.maxColors, "colors", "n", 0, "Maximum colors to extract (1-32)")
	cmd.Flags().StringVarP(&f.quality, "quality", "q", "", "Sampling quality: fast, balanced or precise")
	cmd.Flags().StringVarP(&f.clustering, "clustering", "c", "", "Clustering: kmeans, median-cut or octree")
	cmd.Flags().BoolVar(&f.ignoreWhite, "ignore-white", false, "Drop near-white pixels")
	cmd.Flags().BoolVar(&f.ignoreBlack, "ignore-black", false, "Drop near-black pixels")
	cmd.Flags().BoolVar(&f.noGradients, "no-gradients", false, "Emit flat colors instead of gradients")
	cmd.Flags().BoolVar(&f.noAccessibility, "no-accessibility", false, "Skip the accessibility block")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for k-means centroid selection")
}

// apply overlays explicitly set flags on the configured options.
func (f *paletteFlags) apply(cmd *cobra.Command, base palette.Options) palette.Options {
	options := base
	changed := cmd.Flags().Changed

	if changed("colors") {
		options.MaxColors = f.maxColors
	}
	if changed("quality") {
		options.Quality = palette.Quality(f.quality)
	}
	if changed("clustering") {
		options.Clustering = palette.Clustering(f.clustering)
	}
	if changed("ignore-white") {
		options.IgnoreWhite = f.ignoreWhite
	}
	if changed("ignore-black") {
		options.IgnoreBlack = f.ignoreBlack
	}
	if changed("no-gradients") {
		options.GenerateGradients = palette.Bool(!f.noGradients)
	}
	if changed("no-accessibility") {
		options.EnsureAccessibility = palette.Bool(!f.noAccessibility)
	}
	if changed("seed") {
		options.Seed = f.seed
	}

	return options
}
