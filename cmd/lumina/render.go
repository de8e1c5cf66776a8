package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lumina/internal/palette"
)

var (
	labelStyle = lipgloss.NewStyle().Width(12).Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

func writePalette(w io.Writer, format string, result palette.ColorPalette) error {
	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "text", "":
		return writePaletteText(w, result, isTerminal(w))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writePaletteText(w io.Writer, result palette.ColorPalette, color bool) error {
	var b strings.Builder

	writeColorLine(&b, "primary", result.Primary, color)
	writeColorLine(&b, "secondary", result.Secondary, color)
	writeColorLine(&b, "accent", result.Accent, color)

	b.WriteString("\n")
	for index, c := range result.Dominant {
		writeColorLine(&b, fmt.Sprintf("dominant %d", index+1), c, color)
	}
	for index, c := range result.Supporting {
		writeColorLine(&b, fmt.Sprintf("support %d", index+1), c, color)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", renderLabel("gradient", color), result.Gradients.Primary)
	fmt.Fprintf(&b, "%s %s\n", renderLabel("gradient 2", color), result.Gradients.Secondary)
	fmt.Fprintf(&b, "%s %s\n", renderLabel("mesh", color), result.Gradients.Mesh)

	if result.Accessibility != nil {
		b.WriteString("\n")
		writeColorLine(&b, "on light", result.Accessibility.TextOnLight, color)
		writeColorLine(&b, "on dark", result.Accessibility.TextOnDark, color)
		for index, c := range result.Accessibility.Backgrounds {
			writeColorLine(&b, fmt.Sprintf("background %d", index+1), c, color)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeColorLine(b *strings.Builder, label string, c palette.ExtractedColor, color bool) {
	details := fmt.Sprintf("weight %.2f  %s  %s", c.Weight, c.Temperature, c.Emotion)
	if color {
		details = mutedStyle.Render(details)
	}
	fmt.Fprintf(b, "%s %s %s  %s\n", renderLabel(label, color), swatch(c.Hex, color), c.Hex, details)
}

func renderLabel(label string, color bool) string {
	if !color {
		return fmt.Sprintf("%-12s", label)
	}
	return labelStyle.Render(label)
}

func swatch(hex string, color bool) string {
	if !color {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
