// Package gamefile reads and rewrites Paradox script files.
//
// Game data is stored as ISO-8859-1 text. Files are decoded to UTF-8 for
// editing and re-encoded strictly on the way out, so a rune that cannot be
// represented in Latin-1 is an error rather than a silent substitution.
package gamefile

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// Decode converts ISO-8859-1 bytes to a UTF-8 string.
func Decode(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode ISO-8859-1: %w", err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 string to ISO-8859-1 bytes.
func Encode(text string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode ISO-8859-1: %w", err)
	}
	return out, nil
}

// ReadFile reads and decodes an ISO-8859-1 file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the game tree being processed
	if err != nil {
		return "", err
	}
	return Decode(data)
}
