package cli

import (
	"fmt"
	"strconv"

	"github.com/jmylchreest/tagtint/internal/colour"
	"github.com/jmylchreest/tagtint/internal/gamefile"
	"github.com/jmylchreest/tagtint/internal/recolour"
	"github.com/spf13/cobra"
)

func newRecolourCmd() *cobra.Command {
	var (
		flags   runFlags
		archive bool
	)

	cmd := &cobra.Command{
		Use:     "recolour <game-dir> <output>",
		Aliases: []string{"recolor"},
		Short:   "Rewrite country colours so the most referenced tags are most distinct",
		Long: `Rank every country tag by how often it appears in the game's scripts and
reassign colours from an evenly spaced palette in that order.

Each rewritten definition file is written below <output>, mirroring its path
under common/, ready to be dropped into a mod. The game directory itself is
never modified.

Examples:
  # Write recoloured country files into a mod folder
  tagtint recolour ~/.steam/steamapps/common/Europa\ Universalis\ IV ./mod/common

  # Preview the assignment without writing anything
  tagtint recolour --dry-run /games/eu4 ./out

  # Bundle the rewritten files into a tar.xz archive
  tagtint recolour --archive /games/eu4 ./colours.tar.xz

  # Only count references in .txt files and use perceptual distance
  tagtint recolour --include '**/*.txt' --metric lab /games/eu4 ./out`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecolour(cmd, args[0], args[1], archive, &flags)
		},
	}

	bindScanFlags(cmd.Flags(), &flags)
	bindAllocateFlags(cmd.Flags(), &flags)
	cmd.Flags().BoolVar(&archive, "archive", false, "write <output> as a .tar.xz archive instead of a directory")

	return cmd
}

// runRecolour executes the recolour command.
func runRecolour(cmd *cobra.Command, gameDir, output string, archive bool, flags *runFlags) error {
	logger := newLogger(cmd)

	cfg, err := loadConfig(cmd, gameDir, flags)
	if err != nil {
		return err
	}

	open := func() (gamefile.Writer, error) {
		if archive {
			aw, err := gamefile.NewArchiveWriter(output)
			if err != nil {
				return nil, err
			}
			return aw, nil
		}
		return gamefile.NewDirWriter(output), nil
	}

	report, err := recolour.Run(cmd.Context(), cfg, open, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatAssignments(report, colour.SupportsANSIColours()))
	if cfg.DryRun {
		fmt.Fprintf(out, "\nDry run: %d tags planned from a %d colour palette (%d corpus files)\n",
			len(report.Entries), report.PaletteSize, report.CorpusFiles)
	} else {
		fmt.Fprintf(out, "\nRecoloured %d tags from a %d colour palette (%d corpus files), output: %s\n",
			len(report.Written), report.PaletteSize, report.CorpusFiles, output)
	}
	return nil
}

// formatAssignments renders the report as a table in priority order.
func formatAssignments(report *recolour.Report, preview bool) string {
	headers := []string{"#", "TAG", "HITS", "OLD", "NEW", "DISTANCE", "PATH"}
	table := NewTable(headers)
	table.SetColumnAlign(0, AlignRight)
	table.SetColumnAlign(2, AlignRight)
	table.SetColumnAlign(5, AlignRight)

	swatch := func(rgb colour.RGB) string {
		if preview {
			return colour.ColourPreview(rgb, 2) + " " + rgb.Hex()
		}
		return rgb.Hex()
	}

	for i, e := range report.Entries {
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			e.Tag.Name,
			strconv.Itoa(e.Count),
			swatch(e.Tag.Colour),
			swatch(e.Colour),
			strconv.FormatFloat(e.Distance, 'f', 1, 64),
			e.Tag.Path,
		})
	}
	return table.Render()
}
