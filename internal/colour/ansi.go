package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// FormatColourWithPreview formats a colour with its preview and hex code.
// The preview block is omitted when colour output is unavailable.
func FormatColourWithPreview(rgb RGB, width int) string {
	if !SupportsANSIColours() {
		return rgb.Hex()
	}
	return fmt.Sprintf("%s %s", ColourPreview(rgb, width), rgb.Hex())
}

// SupportsANSIColours reports whether stdout is a terminal that should receive
// colour escapes. NO_COLOR and TERM=dumb turn previews off.
func SupportsANSIColours() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
