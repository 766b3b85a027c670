package cli

import (
	"fmt"

	"github.com/jmylchreest/tagtint/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runFlags are the config overrides shared by commands that scan a game tree.
type runFlags struct {
	include       string
	workers       int
	skipMalformed bool
	metric        string
	paletteSize   int
	gameProcess   string
	dryRun        bool
}

// bindScanFlags registers the flags that control reading the game tree.
func bindScanFlags(fs *pflag.FlagSet, f *runFlags) {
	fs.StringVar(&f.include, "include", "**", "doublestar pattern selecting corpus files below each corpus directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent corpus readers (0 = number of CPUs)")
	fs.BoolVar(&f.skipMalformed, "skip-malformed", false, "skip tag definitions that cannot be parsed instead of failing")
}

// bindAllocateFlags registers the flags that control colour allocation and output.
func bindAllocateFlags(fs *pflag.FlagSet, f *runFlags) {
	fs.StringVarP(&f.metric, "metric", "m", "rgb", "colour distance metric (rgb, lab)")
	fs.IntVarP(&f.paletteSize, "palette-size", "c", 0, "approximate palette size (0 = one colour per tag)")
	fs.StringVar(&f.gameProcess, "game-process", "eu4", "warn when a process with this name is running (empty disables)")
	fs.BoolVar(&f.dryRun, "dry-run", false, "plan the assignment without writing files")
}

// loadConfig resolves the config file for gameDir, loads it with environment
// overrides, then applies any flags the user set explicitly.
func loadConfig(cmd *cobra.Command, gameDir string, f *runFlags) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	path, err := config.FindFile(explicit, gameDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if gameDir != "" {
		cfg.GameDir = gameDir
	}

	fs := cmd.Flags()
	if fs.Changed("include") {
		cfg.CorpusInclude = f.include
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("skip-malformed") {
		cfg.SkipMalformed = f.skipMalformed
	}
	if fs.Changed("metric") {
		cfg.Metric = f.metric
	}
	if fs.Changed("palette-size") {
		cfg.PaletteSize = f.paletteSize
	}
	if fs.Changed("game-process") {
		cfg.GameProcess = f.gameProcess
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
