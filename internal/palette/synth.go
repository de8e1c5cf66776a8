package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

const (
	dominantCount     = 3
	supportingCount   = 5
	accentMinHueDelta = 60.0
	accentMinContrast = 3.0
	textMinContrast   = 4.5
	lightBackgroundL  = 85.0
	darkBackgroundL   = 15.0
	meshLayerCount    = 4
)

var fallbackColor = RGB{R: 59, G: 130, B: 246}

var meshPositions = [meshLayerCount][2]int{{20, 20}, {80, 20}, {20, 80}, {80, 80}}

type ColorPalette struct {
	Primary       ExtractedColor   `json:"primary"`
	Secondary     ExtractedColor   `json:"secondary"`
	Accent        ExtractedColor   `json:"accent"`
	Dominant      []ExtractedColor `json:"dominant"`
	Supporting    []ExtractedColor `json:"supporting"`
	Gradients     Gradients        `json:"gradients"`
	Accessibility *Accessibility   `json:"accessibility,omitempty"`
}

type Gradients struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Mesh      string `json:"mesh"`
}

type Accessibility struct {
	TextOnLight ExtractedColor   `json:"textOnLight"`
	TextOnDark  ExtractedColor   `json:"textOnDark"`
	Backgrounds []ExtractedColor `json:"backgrounds"`
}

// FallbackPalette is the palette returned when no colors could be extracted.
func FallbackPalette() ColorPalette {
	blue := NewExtractedColor(fallbackColor, 1)
	return ColorPalette{
		Primary:    blue,
		Secondary:  blue,
		Accent:     blue,
		Dominant:   []ExtractedColor{blue},
		Supporting: []ExtractedColor{},
		Gradients: Gradients{
			Primary:   blue.Hex,
			Secondary: blue.Hex,
			Mesh:      blue.Hex,
		},
		Accessibility: &Accessibility{
			TextOnLight: blue,
			TextOnDark:  blue,
			Backgrounds: []ExtractedColor{blue},
		},
	}
}

// GeneratePalette synthesizes a palette from clustered colors. It never fails;
// an empty input yields FallbackPalette.
func GeneratePalette(colors []ExtractedColor, options Options) ColorPalette {
	if len(colors) == 0 {
		return FallbackPalette()
	}

	normalized := options.normalized()
	sorted := append([]ExtractedColor(nil), colors...)
	sortByWeight(sorted)

	primary := sorted[0]
	secondary := primary
	if len(sorted) > 1 {
		secondary = sorted[1]
	}
	accent := chooseAccent(primary, sorted)

	result := ColorPalette{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Dominant:   append([]ExtractedColor(nil), sorted[:min(dominantCount, len(sorted))]...),
		Supporting: []ExtractedColor{},
	}
	if len(sorted) > dominantCount {
		end := min(dominantCount+supportingCount, len(sorted))
		result.Supporting = append(result.Supporting, sorted[dominantCount:end]...)
	}

	if *normalized.GenerateGradients {
		result.Gradients = Gradients{
			Primary:   linearGradient(135, primary.Hex, secondary.Hex),
			Secondary: linearGradient(45, secondary.Hex, accent.Hex),
			Mesh:      meshGradient(result.Dominant),
		}
	} else {
		result.Gradients = Gradients{
			Primary:   primary.Hex,
			Secondary: secondary.Hex,
			Mesh:      primary.Hex,
		}
	}

	if *normalized.EnsureAccessibility {
		result.Accessibility = buildAccessibility(primary, sorted)
	}

	return result
}

func chooseAccent(primary ExtractedColor, sorted []ExtractedColor) ExtractedColor {
	for _, candidate := range sorted[1:] {
		if candidate.Hex == primary.Hex {
			continue
		}
		if hueDistance(candidate.HSL.H, primary.HSL.H) > accentMinHueDelta &&
			ContrastRatio(candidate.RGB, primary.RGB) > accentMinContrast {
			return candidate
		}
	}

	return Complement(primary)
}

// Complement rotates the color's hue by 180 degrees, keeping saturation and
// lightness.
func Complement(c ExtractedColor) ExtractedColor {
	rotated := c.HSL
	rotated.H = math.Mod(rotated.H+180, 360)
	return NewExtractedColor(HSLToRGB(rotated), 0)
}

func linearGradient(angle int, from string, to string) string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s 0%%, %s 100%%)", angle, from, to)
}

func meshGradient(dominant []ExtractedColor) string {
	layers := make([]string, 0, meshLayerCount)
	for index, c := range dominant {
		if index >= meshLayerCount {
			break
		}
		position := meshPositions[index]
		layers = append(layers, fmt.Sprintf("radial-gradient(at %d%% %d%%, %s 0px, transparent 50%%)", position[0], position[1], c.Hex))
	}
	return strings.Join(layers, ", ")
}

func buildAccessibility(primary ExtractedColor, sorted []ExtractedColor) *Accessibility {
	textOnLight, ok := lo.Find(sorted, func(c ExtractedColor) bool {
		return ContrastRatio(c.RGB, White) >= textMinContrast
	})
	if !ok {
		textOnLight = primary
	}

	textOnDark, ok := lo.Find(sorted, func(c ExtractedColor) bool {
		return ContrastRatio(c.RGB, Black) >= textMinContrast
	})
	if !ok {
		textOnDark = primary
	}

	backgrounds := lo.Filter(sorted, func(c ExtractedColor, _ int) bool {
		return c.HSL.L > lightBackgroundL || c.HSL.L < darkBackgroundL
	})
	if len(backgrounds) == 0 {
		backgrounds = []ExtractedColor{primary}
	}

	return &Accessibility{
		TextOnLight: textOnLight,
		TextOnDark:  textOnDark,
		Backgrounds: backgrounds,
	}
}

// TopColors returns the heaviest colors, at most limit of them.
func TopColors(colors []ExtractedColor, limit int) []ExtractedColor {
	sorted := append([]ExtractedColor(nil), colors...)
	sortByWeight(sorted)
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Clone returns a deep copy, so callers can edit the result without
// affecting cached palettes.
func (p ColorPalette) Clone() ColorPalette {
	clone := p
	clone.Dominant = cloneColors(p.Dominant)
	clone.Supporting = cloneColors(p.Supporting)
	if p.Accessibility != nil {
		accessibility := *p.Accessibility
		accessibility.Backgrounds = cloneColors(p.Accessibility.Backgrounds)
		clone.Accessibility = &accessibility
	}
	return clone
}

func cloneColors(colors []ExtractedColor) []ExtractedColor {
	if colors == nil {
		return nil
	}
	return append(make([]ExtractedColor, 0, len(colors)), colors...)
}
