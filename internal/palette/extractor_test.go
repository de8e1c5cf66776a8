package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFromRasterSolidRed(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillRect(img, img.Bounds(), color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	result := NewExtractor().ExtractFromRaster(img, Options{Clustering: ClusteringMedianCut})

	require.Equal(t, "#f80000", result.Primary.Hex)
	require.InDelta(t, 1.0, result.Primary.Weight, 1e-9)
	require.Equal(t, TemperatureWarm, result.Primary.Temperature)
	require.Equal(t, EmotionPassionate, result.Primary.Emotion)
	require.Len(t, result.Dominant, 1)
}

func TestExtractFromRasterWhiteIgnoredFallsBack(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fillRect(img, img.Bounds(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	extractor := NewExtractor()
	require.Empty(t, extractor.ColorsFromRaster(img, Options{IgnoreWhite: true}))

	result := extractor.ExtractFromRaster(img, Options{IgnoreWhite: true})
	require.Equal(t, FallbackPalette(), result)
}

func TestExtractFromRasterQuadrants(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillRect(img, image.Rect(0, 0, 50, 50), color.NRGBA{R: 198, G: 48, B: 59, A: 255})
	fillRect(img, image.Rect(50, 0, 100, 50), color.NRGBA{R: 24, G: 144, B: 242, A: 255})
	fillRect(img, image.Rect(0, 50, 50, 100), color.NRGBA{R: 242, G: 188, B: 12, A: 255})
	fillRect(img, image.Rect(50, 50, 100, 100), color.NRGBA{R: 36, G: 184, B: 92, A: 255})

	for _, clustering := range []Clustering{ClusteringMedianCut, ClusteringOctree, ClusteringKMeans} {
		result := NewExtractor().ExtractFromRaster(img, Options{Clustering: clustering, Seed: 11})

		require.NotEmpty(t, result.Dominant, string(clustering))
		require.NotEqual(t, result.Primary.Hex, result.Accent.Hex, string(clustering))
		require.NotEmpty(t, result.Gradients.Mesh, string(clustering))
	}
}

func TestExtractFromFramesAveragesWeights(t *testing.T) {
	t.Parallel()

	red := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	fillRect(red, red.Bounds(), color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	blue := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	fillRect(blue, blue.Bounds(), color.NRGBA{R: 0, G: 0, B: 255, A: 255})

	result := NewExtractor().ExtractFromFrames([]*image.NRGBA{red, blue, red, blue}, Options{})

	require.Len(t, result.Dominant, 2)
	require.Equal(t, "#f80000", result.Primary.Hex)
	require.InDelta(t, 0.5, result.Primary.Weight, 1e-9)
	require.Equal(t, "#0000f8", result.Secondary.Hex)
	require.InDelta(t, 0.5, result.Secondary.Weight, 1e-9)
}

func TestExtractFromColorsWeightsDuplicates(t *testing.T) {
	t.Parallel()

	literals := []RGB{
		{R: 59, G: 130, B: 246},
		{R: 17, G: 24, B: 39},
		{R: 59, G: 130, B: 246},
		{R: 255, G: 255, B: 255},
	}

	result := NewExtractor().ExtractFromColors(literals, Options{})

	require.Equal(t, "#3b82f6", result.Primary.Hex)
	require.InDelta(t, 0.5, result.Primary.Weight, 1e-9)
	require.Len(t, result.Dominant, 3)

	require.Equal(t, FallbackPalette(), NewExtractor().ExtractFromColors(nil, Options{}))
}

func TestExtractFromColorsAppliesExclusions(t *testing.T) {
	t.Parallel()

	literals := []RGB{
		{R: 255, G: 255, B: 255},
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 0},
		{R: 200, G: 20, B: 20},
		{R: 128, G: 128, B: 128},
	}

	result := NewExtractor().ExtractFromColors(literals, Options{IgnoreWhite: true, IgnoreBlack: true})
	require.Equal(t, "#c81414", result.Primary.Hex)
	require.Len(t, result.Dominant, 2)
	require.InDelta(t, 0.5, result.Primary.Weight, 1e-9)

	saturated := NewExtractor().ExtractFromColors(literals, Options{MinSaturation: 50})
	require.Equal(t, "#c81414", saturated.Primary.Hex)
	require.InDelta(t, 1.0, saturated.Primary.Weight, 1e-9)

	require.Equal(t, FallbackPalette(), NewExtractor().ExtractFromColors(literals[:3], Options{IgnoreWhite: true, IgnoreBlack: true}))
}

func fillRect(img *image.NRGBA, rect image.Rectangle, fill color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
}
