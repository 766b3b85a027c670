// Package config handles configuration loading and validation for tagtint.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jmylchreest/tagtint/internal/colour"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the game directory.
const FileName = "tagtint.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TAGTINT_"

// Config holds the settings for a recolouring run.
// Relative directories are resolved against GameDir.
type Config struct {
	GameDir        string   `yaml:"game_dir"`
	TagsDir        string   `yaml:"tags_dir"`
	DefinitionsDir string   `yaml:"definitions_dir"`
	CorpusDirs     []string `yaml:"corpus_dirs"`
	CorpusInclude  string   `yaml:"corpus_include"`
	PaletteSize    int      `yaml:"palette_size"` // 0 = one colour per tag
	Metric         string   `yaml:"metric"`
	Workers        int      `yaml:"workers"` // 0 = GOMAXPROCS
	SkipMalformed  bool     `yaml:"skip_malformed"`
	GameProcess    string   `yaml:"game_process"` // warn when running; empty disables
	DryRun         bool     `yaml:"dry_run"`
}

// DefaultConfig returns the layout of a Europa Universalis IV install.
func DefaultConfig() Config {
	return Config{
		TagsDir:        filepath.Join("common", "country_tags"),
		DefinitionsDir: "common",
		CorpusDirs:     []string{"history", "decisions", "events"},
		CorpusInclude:  "**",
		Metric:         colour.MetricRGB,
		GameProcess:    "eu4",
	}
}

// FindFile returns the config file to load. An explicit path must exist;
// otherwise tagtint.yaml in gameDir is used when present. An empty result
// means no file.
func FindFile(explicit, gameDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	if gameDir == "" {
		return "", nil
	}

	candidate := filepath.Join(gameDir, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// Load reads configPath over the defaults, then applies environment
// overrides. An empty configPath loads defaults only. The result is not
// validated, so callers can layer flags on top before calling Validate.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath) // #nosec G304 - config path supplied by the user
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyEnv overrides fields from TAGTINT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("GAME_DIR", &c.GameDir)
	str("TAGS_DIR", &c.TagsDir)
	str("DEFINITIONS_DIR", &c.DefinitionsDir)
	str("CORPUS_INCLUDE", &c.CorpusInclude)
	str("METRIC", &c.Metric)
	if v, ok := lookup(EnvPrefix + "GAME_PROCESS"); ok {
		c.GameProcess = v
	}
	if v, ok := lookup(EnvPrefix + "CORPUS_DIRS"); ok && v != "" {
		c.CorpusDirs = splitList(v)
	}

	return errors.Join(
		integer("PALETTE_SIZE", &c.PaletteSize),
		integer("WORKERS", &c.Workers),
		boolean("SKIP_MALFORMED", &c.SkipMalformed),
		boolean("DRY_RUN", &c.DryRun),
	)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TagsDir == "" {
		c.TagsDir = defaults.TagsDir
	}
	if c.DefinitionsDir == "" {
		c.DefinitionsDir = defaults.DefinitionsDir
	}
	if c.CorpusInclude == "" {
		c.CorpusInclude = defaults.CorpusInclude
	}
	if c.Metric == "" {
		c.Metric = defaults.Metric
	}
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	var errs []error
	if c.GameDir == "" {
		errs = append(errs, errors.New("game directory is required"))
	}
	if c.TagsDir == "" {
		errs = append(errs, errors.New("tags_dir must not be empty"))
	}
	if c.DefinitionsDir == "" {
		errs = append(errs, errors.New("definitions_dir must not be empty"))
	}
	if c.PaletteSize < 0 {
		errs = append(errs, fmt.Errorf("palette_size must not be negative, got %d", c.PaletteSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := colour.MetricByName(c.Metric); err != nil {
		errs = append(errs, err)
	}
	if !doublestar.ValidatePattern(c.CorpusInclude) {
		errs = append(errs, fmt.Errorf("invalid corpus_include pattern: %s", c.CorpusInclude))
	}
	return errors.Join(errs...)
}

// Resolve joins a relative path onto GameDir.
func (c *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.GameDir, path)
}

// TagsPath is the directory holding the tag index files.
func (c *Config) TagsPath() string {
	return c.Resolve(c.TagsDir)
}

// DefinitionsPath is the directory definition paths are relative to.
func (c *Config) DefinitionsPath() string {
	return c.Resolve(c.DefinitionsDir)
}

// CorpusPaths lists the corpus roots.
func (c *Config) CorpusPaths() []string {
	paths := make([]string, len(c.CorpusDirs))
	for i, dir := range c.CorpusDirs {
		paths[i] = c.Resolve(dir)
	}
	return paths
}

// MetricFunc returns the configured distance metric.
func (c *Config) MetricFunc() (colour.Metric, error) {
	return colour.MetricByName(c.Metric)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
