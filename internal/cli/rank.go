package cli

import (
	"fmt"
	"strconv"

	"github.com/jmylchreest/tagtint/internal/recolour"
	"github.com/spf13/cobra"
)

func newRankCmd() *cobra.Command {
	var (
		flags runFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "rank <game-dir>",
		Short: "List country tags by how often the game's scripts reference them",
		Long: `Count references to every country tag in the corpus directories
(history, decisions and events by default) and print them most frequent first.
This is the order in which recolour hands out colours.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			cfg, err := loadConfig(cmd, args[0], &flags)
			if err != nil {
				return err
			}

			set, err := recolour.LoadTags(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			ranked, files, err := recolour.RankTags(cmd.Context(), cfg, set, logger)
			if err != nil {
				return err
			}

			table := NewTable([]string{"#", "TAG", "HITS", "COLOUR", "PATH"})
			table.SetColumnAlign(0, AlignRight)
			table.SetColumnAlign(2, AlignRight)
			for i, r := range ranked {
				if limit > 0 && i >= limit {
					break
				}
				table.AddRow([]string{
					strconv.Itoa(i + 1),
					r.Name,
					strconv.Itoa(r.Count),
					r.Colour.Hex(),
					r.Path,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, table.Render())
			fmt.Fprintf(out, "\n%d tags, %d corpus files\n", len(ranked), files)
			return nil
		},
	}

	bindScanFlags(cmd.Flags(), &flags)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the first n tags (0 = all)")

	return cmd
}
