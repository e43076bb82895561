package cli

import (
	"github.com/fatih/color"

	"github.com/example/assess/internal/core/issue"
)

var (
	boldStyle  = color.New(color.Bold)
	faintStyle = color.New(color.Faint)
	okStyle    = color.New(color.FgGreen)
	errStyle   = color.New(color.FgRed)
)

// toneStyle maps an issue tone to a terminal colour.
func toneStyle(t issue.Tone) *color.Color {
	switch t {
	case issue.ToneError:
		return color.New(color.FgRed)
	case issue.ToneTertiary:
		return color.New(color.FgMagenta)
	}
	return color.New()
}

// textStyle maps a review text block's colour and variant.
func textStyle(colorName, variant string) *color.Color {
	attrs := []color.Attribute{}
	switch colorName {
	case "primary":
		attrs = append(attrs, color.FgCyan)
	case "warning":
		attrs = append(attrs, color.FgYellow)
	case "error":
		attrs = append(attrs, color.FgRed)
	}
	switch variant {
	case "headline-medium":
		attrs = append(attrs, color.Bold, color.Underline)
	case "headline-small", "semibold-large":
		attrs = append(attrs, color.Bold)
	}
	return color.New(attrs...)
}

func renderChips(chips []issue.Chip) string {
	out := ""
	for i, c := range chips {
		if i > 0 {
			out += " "
		}
		out += toneStyle(c.Tone).Sprintf("[%s]", c.Label)
	}
	return out
}
