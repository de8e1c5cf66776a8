package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lumina/internal/palette"
)

var cssColorPattern = regexp.MustCompile(`(?i)rgba?\([^)]*\)|#[0-9a-f]{6}\b|#[0-9a-f]{3}\b`)

var cssArgumentSeparator = regexp.MustCompile(`[\s,/]+`)

// elementColorProperties are read in order; keys are compared after
// lowercasing and dropping dashes so both background-color and
// backgroundColor match. The background is read twice: once as the
// computed background-color and once among the literal-bearing properties,
// so it carries double weight.
var elementColorProperties = []string{
	"backgroundcolor",
	"color",
	"backgroundcolor",
	"bordercolor",
	"boxshadow",
	"textshadow",
}

// ElementStyle is a snapshot of an element's box and computed style.
type ElementStyle struct {
	ID         string            `json:"id" yaml:"id"`
	Width      float64           `json:"width" yaml:"width"`
	Height     float64           `json:"height" yaml:"height"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// ContentKey hashes the box and properties, so two snapshots with the same
// content share cache entries and a restyled element does not.
func (s ElementStyle) ContentKey() string {
	normalized := make(map[string]string, len(s.Properties))
	keys := make([]string, 0, len(s.Properties))
	for key, value := range s.Properties {
		name := normalizePropertyName(key)
		if _, seen := normalized[name]; !seen {
			keys = append(keys, name)
		}
		normalized[name] = strings.TrimSpace(value)
	}
	sort.Strings(keys)

	hasher := sha256.New()
	fmt.Fprintf(hasher, "%g|%g", s.Width, s.Height)
	for _, key := range keys {
		fmt.Fprintf(hasher, "|%s=%s", key, normalized[key])
	}

	return "element:" + hex.EncodeToString(hasher.Sum(nil))
}

// ElementColors collects the opaque CSS color literals of the style. It never
// fails; a style without colors yields nil.
func ElementColors(style ElementStyle) []palette.RGB {
	normalized := make(map[string]string, len(style.Properties))
	for key, value := range style.Properties {
		normalized[normalizePropertyName(key)] = value
	}

	var colors []palette.RGB
	for _, property := range elementColorProperties {
		value, ok := normalized[property]
		if !ok {
			continue
		}
		colors = append(colors, ParseCSSColors(value)...)
	}

	return colors
}

// ParseCSSColors extracts rgb(), rgba() and hex literals from a CSS value.
// Malformed and fully transparent literals are skipped.
func ParseCSSColors(value string) []palette.RGB {
	matches := cssColorPattern.FindAllString(value, -1)
	colors := make([]palette.RGB, 0, len(matches))
	for _, match := range matches {
		var (
			parsed palette.RGB
			ok     bool
		)
		if strings.HasPrefix(match, "#") {
			parsed, ok = parseHexLiteral(match)
		} else {
			parsed, ok = parseRGBFunction(match)
		}
		if ok {
			colors = append(colors, parsed)
		}
	}
	return colors
}

func parseHexLiteral(literal string) (palette.RGB, bool) {
	parsed, err := palette.ParseHex(strings.ToLower(literal))
	if err != nil {
		return palette.RGB{}, false
	}
	return parsed, true
}

func parseRGBFunction(literal string) (palette.RGB, bool) {
	open := strings.IndexByte(literal, '(')
	if open < 0 || !strings.HasSuffix(literal, ")") {
		return palette.RGB{}, false
	}

	arguments := cssArgumentSeparator.Split(strings.TrimSpace(literal[open+1:len(literal)-1]), -1)
	if len(arguments) != 3 && len(arguments) != 4 {
		return palette.RGB{}, false
	}

	var channels [3]uint8
	for index := 0; index < 3; index++ {
		channel, err := strconv.ParseFloat(arguments[index], 64)
		if err != nil || channel < 0 || channel > 255 {
			return palette.RGB{}, false
		}
		channels[index] = uint8(channel + 0.5)
	}

	if len(arguments) == 4 {
		alpha, ok := parseAlpha(arguments[3])
		if !ok || alpha <= 0 {
			return palette.RGB{}, false
		}
	}

	return palette.RGB{R: channels[0], G: channels[1], B: channels[2]}, true
}

func parseAlpha(value string) (float64, bool) {
	if strings.HasSuffix(value, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0, false
		}
		return percent / 100, true
	}

	alpha, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return alpha, true
}

func normalizePropertyName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
}
