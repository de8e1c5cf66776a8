package palette

import "image"

const (
	alphaFloor     = 125
	nearWhiteFloor = 240
	nearBlackCeil  = 15
	channelsRGB    = 3
	channelsRGBA   = 4
)

// SamplePixels walks img with the quality stride and returns the pixels that
// survive the configured exclusions.
func SamplePixels(img *image.NRGBA, options Options) []RGB {
	if img == nil {
		return nil
	}
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()
	if width <= 0 || height <= 0 {
		return nil
	}

	normalized := options.normalized()
	step := normalized.Quality.Step()
	total := width * height
	samples := make([]RGB, 0, total/step+1)

	for index := 0; index < total; index += step {
		x := index % width
		y := index / width
		offset := y*img.Stride + x*4
		r := img.Pix[offset]
		g := img.Pix[offset+1]
		b := img.Pix[offset+2]
		a := img.Pix[offset+3]

		if sample, ok := acceptSample(r, g, b, a, normalized); ok {
			samples = append(samples, sample)
		}
	}

	return samples
}

// SampleBuffer is SamplePixels for a flat RGB or RGBA byte buffer.
func SampleBuffer(pix []uint8, channels int, options Options) []RGB {
	if channels != channelsRGB && channels != channelsRGBA {
		return nil
	}

	normalized := options.normalized()
	step := normalized.Quality.Step()
	total := len(pix) / channels
	samples := make([]RGB, 0, total/step+1)

	for index := 0; index < total; index += step {
		offset := index * channels
		alpha := uint8(255)
		if channels == channelsRGBA {
			alpha = pix[offset+3]
		}

		if sample, ok := acceptSample(pix[offset], pix[offset+1], pix[offset+2], alpha, normalized); ok {
			samples = append(samples, sample)
		}
	}

	return samples
}

func acceptSample(r uint8, g uint8, b uint8, a uint8, options Options) (RGB, bool) {
	if a < alphaFloor {
		return RGB{}, false
	}
	if options.IgnoreWhite && r > nearWhiteFloor && g > nearWhiteFloor && b > nearWhiteFloor {
		return RGB{}, false
	}
	if options.IgnoreBlack && r < nearBlackCeil && g < nearBlackCeil && b < nearBlackCeil {
		return RGB{}, false
	}

	sample := RGB{R: r, G: g, B: b}
	if hasHSLBounds(options) {
		hsl := RGBToHSL(sample)
		if hsl.S < options.MinSaturation || hsl.L < options.MinLightness || hsl.L > options.MaxLightness {
			return RGB{}, false
		}
	}

	return sample, true
}

func hasHSLBounds(options Options) bool {
	return options.MinSaturation > 0 || options.MinLightness > 0 || options.MaxLightness < 100
}
