package gamefile

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jmylchreest/tagtint/internal/colour"
)

// ErrNoColourField is returned when a script has no top-level colour field.
var ErrNoColourField = errors.New("no color field")

// colourField matches a `color = { ... }` assignment at the start of a line.
// Anchoring to the line keeps fields such as revolutionary_colors out.
var colourField = regexp.MustCompile(`(?m)^[ \t]*(color[ \t]*=[ \t]*\{([^}]*)\})`)

// ColourRange returns the byte range of the first colour field in text,
// from the `color` keyword up to and including the closing brace.
func ColourRange(text string) (start, end int, ok bool) {
	m := colourField.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, 0, false
	}
	return m[2], m[3], true
}

// ColourBody returns the text between the braces of the first colour field.
func ColourBody(text string) (string, bool) {
	m := colourField.FindStringSubmatchIndex(text)
	if m == nil {
		return "", false
	}
	return text[m[4]:m[5]], true
}

// FormatColour renders rgb as a colour field assignment.
func FormatColour(rgb colour.RGB) string {
	return fmt.Sprintf("color = { %d %d %d }", rgb.R, rgb.G, rgb.B)
}

// ReplaceColour swaps the first colour field in text for rgb.
func ReplaceColour(text string, rgb colour.RGB) (string, error) {
	start, end, ok := ColourRange(text)
	if !ok {
		return "", ErrNoColourField
	}
	return text[:start] + FormatColour(rgb) + text[end:], nil
}
