// Package colour provides colour types, palette generation and distance metrics.
package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrInvalidArgument is returned when a palette is requested for a non-positive colour count.
var ErrInvalidArgument = errors.New("invalid argument")

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Palette is a pool of distinct colours, each of which can be claimed once.
// Colours keep the order they were added in; removal does not reorder the rest.
type Palette struct {
	colours []RGB
}

// NewPalette creates a new Palette with the given colours.
// Repeated colours are dropped so every entry is unique.
func NewPalette(colours []RGB) *Palette {
	p := &Palette{colours: make([]RGB, 0, len(colours))}
	seen := make(map[RGB]struct{}, len(colours))
	for _, c := range colours {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		p.colours = append(p.colours, c)
	}
	return p
}

// Len returns the number of colours still in the palette.
func (p *Palette) Len() int {
	return len(p.colours)
}

// Colours returns a copy of the remaining colours in palette order.
func (p *Palette) Colours() []RGB {
	return slices.Clone(p.colours)
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.colours) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.colours))
	}
	return p.colours[index], nil
}

// Take removes the colour at index from the palette and returns it.
func (p *Palette) Take(index int) (RGB, error) {
	c, err := p.Get(index)
	if err != nil {
		return RGB{}, err
	}
	p.colours = slices.Delete(p.colours, index, index+1)
	return c, nil
}

// All returns an iterator over the remaining colours and their indices.
func (p *Palette) All() iter.Seq2[int, RGB] {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.colours {
			if !yield(i, c) {
				return
			}
		}
	}
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.colours))
	for i, c := range p.colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.colours))
	for i, c := range p.colours {
		colours[i] = ColourJSON{Hex: c.Hex(), RGB: c}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:   len(p.colours),
		Colours: colours,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.colours) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.colours))
	for i, c := range p.colours {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return result
}
