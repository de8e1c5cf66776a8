package palette

import "image"

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ColorsFromRaster samples and clusters one raster.
func (e *Extractor) ColorsFromRaster(raster *image.NRGBA, options Options) []ExtractedColor {
	normalized := options.normalized()
	return Cluster(SamplePixels(raster, normalized), normalized)
}

func (e *Extractor) ExtractFromRaster(raster *image.NRGBA, options Options) ColorPalette {
	normalized := options.normalized()
	return GeneratePalette(e.ColorsFromRaster(raster, normalized), normalized)
}

// ExtractFromFrames clusters every frame on its own and merges the results.
// Merged weights are averaged over the frame count.
func (e *Extractor) ExtractFromFrames(frames []*image.NRGBA, options Options) ColorPalette {
	normalized := options.normalized()
	if len(frames) == 0 {
		return FallbackPalette()
	}

	sets := make([][]ExtractedColor, 0, len(frames))
	for _, frame := range frames {
		sets = append(sets, e.ColorsFromRaster(frame, normalized))
	}

	merged := MergeColors(sets...)
	for index := range merged {
		merged[index].Weight /= float64(len(frames))
	}

	return GeneratePalette(TopColors(merged, normalized.MaxColors), normalized)
}

// ExtractFromColors builds a palette from literal colors, weighting each
// distinct color by how often it occurs. Literals go through the same
// white, black and HSL exclusions as sampled pixels.
func (e *Extractor) ExtractFromColors(colors []RGB, options Options) ColorPalette {
	normalized := options.normalized()
	literals := make([]RGB, 0, len(colors))
	for _, c := range colors {
		if accepted, ok := acceptSample(c.R, c.G, c.B, 255, normalized); ok {
			literals = append(literals, accepted)
		}
	}
	if len(literals) == 0 {
		return FallbackPalette()
	}

	order := make([]RGB, 0, len(literals))
	counts := make(map[RGB]int, len(literals))
	for _, literal := range literals {
		if counts[literal] == 0 {
			order = append(order, literal)
		}
		counts[literal]++
	}

	extracted := make([]ExtractedColor, 0, len(order))
	for _, literal := range order {
		extracted = append(extracted, NewExtractedColor(literal, float64(counts[literal])/float64(len(literals))))
	}

	return GeneratePalette(TopColors(extracted, normalized.MaxColors), normalized)
}
