package colour

import (
	"fmt"
	"math"

	"github.com/jmylchreest/tagtint/internal/security"
)

// channelMax is the largest lower bound a lattice cell may start at.
const channelMax = 255.0

// GeneratePalette builds a palette of colours spread evenly through the RGB cube.
//
// Each channel is split into cbrt(targetCount) cells of equal width and the
// centre of every cell combination becomes a colour. The cube root is not
// rounded, so the palette size only approximates targetCount: 8 gives exactly
// 8 colours, 10 gives 27.
func GeneratePalette(targetCount int) (*Palette, error) {
	if targetCount <= 0 {
		return nil, fmt.Errorf("%w: palette size must be positive, got %d", ErrInvalidArgument, targetCount)
	}

	levels := latticeLevels(targetCount)
	colours := make([]RGB, 0, len(levels)*len(levels)*len(levels))
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				colours = append(colours, RGB{R: r, G: g, B: b})
			}
		}
	}

	return NewPalette(colours), nil
}

// latticeLevels returns the distinct cell centres used for every channel, in
// increasing order. Once cells are narrower than one step several centres
// round to the same byte; only the first is kept, which bounds the lattice at
// 256 levels per channel.
func latticeLevels(targetCount int) []uint8 {
	divisions := math.Cbrt(float64(targetCount))
	cellWidth := 256.0 / divisions

	var levels []uint8
	for i := 0; float64(i)*cellWidth <= channelMax; i++ {
		lower := float64(i) * cellWidth
		level := security.SafeUint8(int(math.Round(lower + cellWidth/2)))
		if n := len(levels); n > 0 && levels[n-1] == level {
			continue
		}
		levels = append(levels, level)
	}
	return levels
}
