// Package cli provides the command-line interface for tagtint.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tagtint/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the tagtint command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagtint",
		Short: "Give the most referenced country tags the most distinct colours",
		Long: `tagtint reassigns map colours to the country tags of a Paradox game install.

Tags are ranked by how often they are referenced in the game's history,
decision and event scripts. Colours are drawn from an evenly spaced RGB
lattice and handed out greedily in rank order: each tag claims the free
colour nearest to its current one, so the countries players see most end
up with the most distinct colours.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().String("config", "", "config file (default: <game-dir>/tagtint.yaml when present)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRecolourCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newPaletteCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger creates the command logger from the global verbosity flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "tagtint",
		Output: cmd.ErrOrStderr(),
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
