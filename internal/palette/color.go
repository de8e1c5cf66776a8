package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Temperature string

const (
	TemperatureWarm    Temperature = "warm"
	TemperatureCool    Temperature = "cool"
	TemperatureNeutral Temperature = "neutral"
)

type Emotion string

const (
	EmotionSophisticated Emotion = "sophisticated"
	EmotionClean         Emotion = "clean"
	EmotionBalanced      Emotion = "balanced"
	EmotionPassionate    Emotion = "passionate"
	EmotionEnergetic     Emotion = "energetic"
	EmotionOptimistic    Emotion = "optimistic"
	EmotionNatural       Emotion = "natural"
	EmotionCalming       Emotion = "calming"
	EmotionTrustworthy   Emotion = "trustworthy"
	EmotionCreative      Emotion = "creative"
	EmotionRomantic      Emotion = "romantic"
)

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL holds hue in degrees and saturation/lightness as percentages.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// LAB is a cheap lightness/chroma approximation, not CIE L*a*b*.
type LAB struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type ExtractedColor struct {
	Hex         string      `json:"hex"`
	RGB         RGB         `json:"rgb"`
	HSL         HSL         `json:"hsl"`
	LAB         LAB         `json:"lab"`
	Weight      float64     `json:"weight"`
	Contrast    float64     `json:"contrast"`
	Temperature Temperature `json:"temperature"`
	Emotion     Emotion     `json:"emotion"`
}

var (
	White = RGB{R: 255, G: 255, B: 255}
	Black = RGB{R: 0, G: 0, B: 0}
)

// NewExtractedColor derives every field from rgb.
func NewExtractedColor(rgb RGB, weight float64) ExtractedColor {
	hsl := RGBToHSL(rgb)
	return ExtractedColor{
		Hex:         rgb.Hex(),
		RGB:         rgb,
		HSL:         hsl,
		LAB:         RGBToLAB(rgb),
		Weight:      weight,
		Contrast:    ContrastRatio(rgb, White),
		Temperature: TemperatureForHue(hsl.H),
		Emotion:     EmotionFor(hsl),
	}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func ParseHex(value string) (RGB, error) {
	parsed, err := colorful.Hex(value)
	if err != nil {
		return RGB{}, fmt.Errorf("parse hex color %q: %w", value, err)
	}
	r, g, b := parsed.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func RGBToHSL(c RGB) HSL {
	h, s, l := c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSL{H: math.Mod(h, 360), S: s * 100, L: l * 100}
}

func HSLToRGB(hsl HSL) RGB {
	hue := math.Mod(hsl.H, 360)
	if hue < 0 {
		hue += 360
	}
	converted := colorful.Hsl(hue, clampFloat(hsl.S/100, 0, 1), clampFloat(hsl.L/100, 0, 1)).Clamped()
	r, g, b := converted.RGB255()
	return RGB{R: r, G: g, B: b}
}

func RGBToLAB(c RGB) LAB {
	return LAB{
		L: RelativeLuminance(c) * 100,
		A: (float64(c.R) - float64(c.G)) / 255 * 100,
		B: (float64(c.G) - float64(c.B)) / 255 * 100,
	}
}

func RelativeLuminance(c RGB) float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func ContrastRatio(left RGB, right RGB) float64 {
	l1 := RelativeLuminance(left)
	l2 := RelativeLuminance(right)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func TemperatureForHue(hue float64) Temperature {
	switch {
	case hue <= 60:
		return TemperatureWarm
	case hue <= 120:
		return TemperatureNeutral
	case hue <= 300:
		return TemperatureCool
	default:
		return TemperatureWarm
	}
}

func EmotionFor(hsl HSL) Emotion {
	if hsl.S < 20 {
		switch {
		case hsl.L < 30:
			return EmotionSophisticated
		case hsl.L > 70:
			return EmotionClean
		default:
			return EmotionBalanced
		}
	}

	switch hue := hsl.H; {
	case hue < 30:
		return EmotionPassionate
	case hue < 60:
		return EmotionEnergetic
	case hue < 90:
		return EmotionOptimistic
	case hue < 150:
		return EmotionNatural
	case hue < 210:
		return EmotionCalming
	case hue < 270:
		return EmotionTrustworthy
	case hue < 330:
		return EmotionCreative
	default:
		return EmotionRomantic
	}
}

// hueDistance is the circular distance between two hues in degrees.
func hueDistance(left float64, right float64) float64 {
	diff := math.Abs(left - right)
	return math.Min(diff, 360-diff)
}

func rgbDistance(left [3]float64, right [3]float64) float64 {
	dr := left[0] - right[0]
	dg := left[1] - right[1]
	db := left[2] - right[2]
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func clampInt(value int, minimum int, maximum int) int {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}

func clampFloat(value float64, minimum float64, maximum float64) float64 {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}
