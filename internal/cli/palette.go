package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/tagtint/internal/colour"
	"github.com/spf13/cobra"
)

func newPaletteCmd() *cobra.Command {
	var (
		count   int
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the colour lattice generated for a palette size",
		Long: `Print the evenly spaced colour lattice tagtint draws from.

The lattice splits each RGB channel into cbrt(count) cells, so the number of
colours produced only approximates the requested count.

Examples:
  # Show the palette used for 8 tags
  tagtint palette -c 8

  # JSON output
  tagtint palette -c 700 -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			palette, err := colour.GeneratePalette(count)
			if err != nil {
				return fmt.Errorf("invalid palette size: %w", err)
			}

			output, err := formatPalette(palette, format, preview)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "colours", "c", 8, "approximate number of colours")
	cmd.Flags().StringVarP(&format, "format", "f", "hex", "output format (hex, rgb, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour previews in terminal")

	return cmd
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		if !showPreview {
			return strings.Join(palette.ToHex(), "\n") + "\n", nil
		}
		var b strings.Builder
		for _, c := range palette.All() {
			b.WriteString(colour.FormatColourWithPreview(c, 8))
			b.WriteString("\n")
		}
		return b.String(), nil
	case "rgb":
		var b strings.Builder
		for _, c := range palette.All() {
			if showPreview {
				b.WriteString(colour.FormatColourWithPreview(c, 8) + "  ")
			}
			b.WriteString(c.String())
			b.WriteString("\n")
		}
		return b.String(), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}
