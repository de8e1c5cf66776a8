package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHSLRoundTripWithinOneUnit(t *testing.T) {
	t.Parallel()

	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				original := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				restored := HSLToRGB(RGBToHSL(original))

				require.LessOrEqualf(t, absDiff(original.R, restored.R), 1, "red channel for %s -> %s", original.Hex(), restored.Hex())
				require.LessOrEqualf(t, absDiff(original.G, restored.G), 1, "green channel for %s -> %s", original.Hex(), restored.Hex())
				require.LessOrEqualf(t, absDiff(original.B, restored.B), 1, "blue channel for %s -> %s", original.Hex(), restored.Hex())
			}
		}
	}
}

func TestContrastRatioBoundsAndSymmetry(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 21.0, ContrastRatio(White, Black), 1e-9)
	require.InDelta(t, 21.0, ContrastRatio(Black, White), 1e-9)

	samples := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 59, G: 130, B: 246},
		{R: 12, G: 18, B: 24},
		{R: 200, G: 200, B: 200},
	}
	for _, left := range samples {
		require.InDelta(t, 1.0, ContrastRatio(left, left), 1e-12)
		for _, right := range samples {
			require.InDelta(t, ContrastRatio(left, right), ContrastRatio(right, left), 1e-12)
		}
	}
}

func TestNewExtractedColorDerivesMetadata(t *testing.T) {
	t.Parallel()

	red := NewExtractedColor(RGB{R: 255, G: 0, B: 0}, 0.75)

	require.Equal(t, "#ff0000", red.Hex)
	require.InDelta(t, 0, red.HSL.H, 1e-9)
	require.InDelta(t, 100, red.HSL.S, 1e-9)
	require.InDelta(t, 50, red.HSL.L, 1e-9)
	require.InDelta(t, 21.26, red.LAB.L, 1e-6)
	require.InDelta(t, 100, red.LAB.A, 1e-9)
	require.InDelta(t, 0, red.LAB.B, 1e-9)
	require.InDelta(t, 1.05/0.2626, red.Contrast, 1e-6)
	require.Equal(t, TemperatureWarm, red.Temperature)
	require.Equal(t, EmotionPassionate, red.Emotion)
	require.Equal(t, 0.75, red.Weight)
}

func TestTemperatureForHue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hue      float64
		expected Temperature
	}{
		{hue: 0, expected: TemperatureWarm},
		{hue: 60, expected: TemperatureWarm},
		{hue: 61, expected: TemperatureNeutral},
		{hue: 120, expected: TemperatureNeutral},
		{hue: 121, expected: TemperatureCool},
		{hue: 240, expected: TemperatureCool},
		{hue: 300, expected: TemperatureCool},
		{hue: 301, expected: TemperatureWarm},
		{hue: 359.5, expected: TemperatureWarm},
	}

	for _, tc := range cases {
		require.Equalf(t, tc.expected, TemperatureForHue(tc.hue), "hue %.1f", tc.hue)
	}
}

func TestEmotionFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hsl      HSL
		expected Emotion
	}{
		{hsl: HSL{H: 0, S: 10, L: 20}, expected: EmotionSophisticated},
		{hsl: HSL{H: 0, S: 10, L: 80}, expected: EmotionClean},
		{hsl: HSL{H: 0, S: 10, L: 50}, expected: EmotionBalanced},
		{hsl: HSL{H: 10, S: 80, L: 50}, expected: EmotionPassionate},
		{hsl: HSL{H: 40, S: 80, L: 50}, expected: EmotionEnergetic},
		{hsl: HSL{H: 70, S: 80, L: 50}, expected: EmotionOptimistic},
		{hsl: HSL{H: 120, S: 80, L: 50}, expected: EmotionNatural},
		{hsl: HSL{H: 180, S: 80, L: 50}, expected: EmotionCalming},
		{hsl: HSL{H: 220, S: 80, L: 50}, expected: EmotionTrustworthy},
		{hsl: HSL{H: 290, S: 80, L: 50}, expected: EmotionCreative},
		{hsl: HSL{H: 340, S: 80, L: 50}, expected: EmotionRomantic},
	}

	for _, tc := range cases {
		require.Equalf(t, tc.expected, EmotionFor(tc.hsl), "hsl %+v", tc.hsl)
	}
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	blue, err := ParseHex("#3b82f6")
	require.NoError(t, err)
	require.Equal(t, RGB{R: 59, G: 130, B: 246}, blue)

	white, err := ParseHex("#fff")
	require.NoError(t, err)
	require.Equal(t, White, white)

	_, err = ParseHex("not-a-color")
	require.Error(t, err)
}

func TestHueDistanceWrapsAround(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 20, hueDistance(350, 10), 1e-9)
	require.InDelta(t, 160, hueDistance(0, 200), 1e-9)
	require.InDelta(t, 180, hueDistance(90, 270), 1e-9)
}

func absDiff(left uint8, right uint8) int {
	return int(math.Abs(float64(left) - float64(right)))
}
