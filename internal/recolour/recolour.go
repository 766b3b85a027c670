// Package recolour drives a full recolouring run: load tags, build a palette,
// rank tags by corpus frequency, allocate colours and rewrite definitions.
package recolour

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tagtint/internal/allocate"
	"github.com/jmylchreest/tagtint/internal/colour"
	"github.com/jmylchreest/tagtint/internal/config"
	"github.com/jmylchreest/tagtint/internal/corpus"
	"github.com/jmylchreest/tagtint/internal/gamefile"
	"github.com/jmylchreest/tagtint/internal/tags"
)

// Entry is one tag's outcome, in priority order.
type Entry struct {
	allocate.Assignment
	// Count is how often the tag occurred in the corpus.
	Count int
}

// Report summarises a run.
type Report struct {
	Tags        int
	PaletteSize int
	CorpusFiles int
	Entries     []Entry
	// Written lists output paths relative to the output root.
	Written []string
}

// LoadTags parses the tag index and definition files named by cfg.
func LoadTags(ctx context.Context, cfg *config.Config, logger hclog.Logger) (*tags.Set, error) {
	loader := &tags.Loader{
		TagsDir:        cfg.TagsPath(),
		DefinitionsDir: cfg.DefinitionsPath(),
		SkipMalformed:  cfg.SkipMalformed,
		Logger:         logger.Named("tags"),
	}
	set, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	logger.Debug("tags loaded", "count", set.Len())
	return set, nil
}

// RankTags reads the corpus and orders set by tag frequency.
// It also returns the number of corpus files that were read.
func RankTags(ctx context.Context, cfg *config.Config, set *tags.Set, logger hclog.Logger) ([]tags.Ranked, int, error) {
	reader := &corpus.Reader{
		Include: cfg.CorpusInclude,
		Workers: cfg.Workers,
		Logger:  logger.Named("corpus"),
	}
	docs, err := reader.Read(ctx, cfg.CorpusPaths()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read corpus: %w", err)
	}

	ranked, err := tags.Rank(ctx, set, corpus.Texts(docs), cfg.Workers)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to rank tags: %w", err)
	}
	return ranked, len(docs), nil
}

// Plan runs every phase except writing and returns the resulting assignments.
func Plan(ctx context.Context, cfg *config.Config, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	metric, err := cfg.MetricFunc()
	if err != nil {
		return nil, err
	}

	set, err := LoadTags(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	size := cfg.PaletteSize
	if size == 0 {
		size = set.Len()
	}
	palette, err := colour.GeneratePalette(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate palette for %d tags: %w", set.Len(), err)
	}
	logger.Debug("palette generated", "requested", size, "colours", palette.Len())

	report := &Report{Tags: set.Len(), PaletteSize: palette.Len()}

	ranked, files, err := RankTags(ctx, cfg, set, logger)
	if err != nil {
		return nil, err
	}
	report.CorpusFiles = files

	assignments, err := allocate.Allocate(tags.TagsOf(ranked), palette,
		allocate.WithMetric(metric),
		allocate.WithLogger(logger.Named("allocate")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate colours: %w", err)
	}

	report.Entries = make([]Entry, len(assignments))
	for i, a := range assignments {
		report.Entries[i] = Entry{Assignment: a, Count: ranked[i].Count}
	}
	return report, nil
}

// Apply rewrites the definition file of every entry with its new colour and
// stores it through w, mirroring the definition path.
func Apply(ctx context.Context, cfg *config.Config, report *Report, w gamefile.Writer, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if cfg.GameProcess != "" {
		running, err := ProcessRunning(cfg.GameProcess)
		switch {
		case err != nil:
			logger.Debug("could not list processes", "error", err)
		case running:
			logger.Warn("game appears to be running; restart it to pick up new colours", "process", cfg.GameProcess)
		}
	}

	for _, e := range report.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := filepath.FromSlash(e.Tag.Path)
		src := filepath.Join(cfg.DefinitionsPath(), rel)
		text, err := gamefile.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read definition for %s: %w", e.Tag.Name, err)
		}

		text, err = gamefile.ReplaceColour(text, e.Colour)
		if err != nil {
			return fmt.Errorf("failed to rewrite %s: %w", src, err)
		}

		data, err := gamefile.Encode(text)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", src, err)
		}

		logger.Info("writing definition", "tag", e.Tag.Name, "path", rel)
		if err := w.WriteFile(rel, data); err != nil {
			return err
		}
		report.Written = append(report.Written, rel)
	}

	return nil
}

// Opener creates the output a run writes to.
type Opener func() (gamefile.Writer, error)

// discarder is implemented by writers that can abandon their output.
type discarder interface {
	Discard() error
}

// Run plans the recolouring and, unless cfg.DryRun is set, writes the result
// through the writer returned by open. The writer is only opened once a plan
// exists, so a failed plan leaves existing output untouched. If writing fails
// and the writer supports it, its output is discarded instead of closed.
func Run(ctx context.Context, cfg *config.Config, open Opener, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	report, err := Plan(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.DryRun {
		return report, nil
	}

	w, err := open()
	if err != nil {
		return report, err
	}

	if err := Apply(ctx, cfg, report, w, logger); err != nil {
		if d, ok := w.(discarder); ok {
			if discardErr := d.Discard(); discardErr != nil {
				logger.Warn("failed to discard partial output", "error", discardErr)
			}
		} else if closeErr := w.Close(); closeErr != nil {
			logger.Warn("failed to close output", "error", closeErr)
		}
		return report, err
	}

	if err := w.Close(); err != nil {
		return report, fmt.Errorf("failed to finalise output: %w", err)
	}
	return report, nil
}
