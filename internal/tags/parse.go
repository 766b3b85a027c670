package tags

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tagtint/internal/colour"
	"github.com/jmylchreest/tagtint/internal/gamefile"
	"github.com/jmylchreest/tagtint/internal/security"
)

// ErrMalformedRecord is returned when a tag definition is missing its name,
// path or colour.
var ErrMalformedRecord = errors.New("malformed record")

// significantLine strips comments and whitespace from line and reports
// whether what is left looks like a tag assignment.
func significantLine(line string) (string, bool) {
	inQuote := false
	for i := 0; i < len(line); i++ {
		if line[i] == '"' {
			inQuote = !inQuote
		} else if line[i] == '#' && !inQuote {
			line = line[:i]
			break
		}
	}
	line = strings.TrimSpace(line)
	if line == "" || !strings.Contains(line, "=") {
		return "", false
	}
	return line, true
}

// ParseTagLine splits a `TAG = "countries/File.txt"` line into the tag name
// and the quoted definition path.
func ParseTagLine(line string) (name, path string, err error) {
	before, after, found := strings.Cut(line, "=")
	if !found {
		return "", "", fmt.Errorf("%w: missing '=' in %q", ErrMalformedRecord, line)
	}

	name = strings.TrimSpace(before)
	if name == "" || strings.ContainsAny(name, " \t\"") {
		return "", "", fmt.Errorf("%w: invalid tag name in %q", ErrMalformedRecord, line)
	}

	start := strings.IndexByte(after, '"')
	if start < 0 {
		return "", "", fmt.Errorf("%w: missing quoted path in %q", ErrMalformedRecord, line)
	}
	end := strings.IndexByte(after[start+1:], '"')
	if end < 0 {
		return "", "", fmt.Errorf("%w: unterminated path in %q", ErrMalformedRecord, line)
	}

	path = strings.TrimSpace(after[start+1 : start+1+end])
	if path == "" {
		return "", "", fmt.Errorf("%w: empty path in %q", ErrMalformedRecord, line)
	}
	return name, path, nil
}

// ParseColour reads the first top-level `color = { R G B }` field in text.
// Tokens that are not bytes are skipped; the first three that are form the colour.
func ParseColour(text string) (colour.RGB, error) {
	body, ok := gamefile.ColourBody(text)
	if !ok {
		return colour.RGB{}, fmt.Errorf("%w: %w", ErrMalformedRecord, gamefile.ErrNoColourField)
	}

	var channels []uint8
	for _, field := range strings.Fields(body) {
		v, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			continue
		}
		channels = append(channels, uint8(v))
		if len(channels) == 3 {
			return colour.RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
		}
	}

	return colour.RGB{}, fmt.Errorf("%w: colour field %q has %d byte components, want 3",
		ErrMalformedRecord, strings.TrimSpace(body), len(channels))
}

// Loader reads the tag index files and the definition file behind each tag.
type Loader struct {
	// TagsDir holds the tag index files (common/country_tags).
	TagsDir string
	// DefinitionsDir is the root the quoted definition paths are relative to (common).
	DefinitionsDir string
	// SkipMalformed logs and skips bad definitions instead of failing.
	SkipMalformed bool
	// Logger receives warnings about skipped and duplicate tags.
	Logger hclog.Logger
}

// Load parses every regular file in TagsDir, in name order, into a Set.
// The first definition of a tag wins.
func (l *Loader) Load(ctx context.Context) (*Set, error) {
	logger := l.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	entries, err := os.ReadDir(l.TagsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags directory: %w", err)
	}

	set := NewSet()
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := filepath.Join(l.TagsDir, entry.Name())
		text, err := gamefile.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read tag file %s: %w", file, err)
		}

		logger.Debug("parsing tag file", "path", file)
		for i, line := range strings.Split(text, "\n") {
			line, ok := significantLine(line)
			if !ok {
				continue
			}

			tag, err := l.parseRecord(line)
			if err != nil {
				err = fmt.Errorf("%s:%d: %w", file, i+1, err)
				if l.SkipMalformed {
					logger.Warn("skipping malformed tag definition", "error", err)
					continue
				}
				return nil, err
			}

			if !set.Add(tag) {
				logger.Warn("duplicate tag definition ignored", "tag", tag.Name, "path", file, "line", i+1)
			}
		}
	}

	return set, nil
}

// parseRecord parses one tag line and reads the colour from its definition file.
func (l *Loader) parseRecord(line string) (Tag, error) {
	name, path, err := ParseTagLine(line)
	if err != nil {
		return Tag{}, err
	}

	if err := security.ValidateFilePath(filepath.FromSlash(path), l.DefinitionsDir); err != nil {
		return Tag{}, fmt.Errorf("%w: tag %s: %w", ErrMalformedRecord, name, err)
	}

	definition, err := gamefile.ReadFile(filepath.Join(l.DefinitionsDir, filepath.FromSlash(path)))
	if err != nil {
		return Tag{}, fmt.Errorf("%w: tag %s: %w", ErrMalformedRecord, name, err)
	}

	rgb, err := ParseColour(definition)
	if err != nil {
		return Tag{}, fmt.Errorf("tag %s (%s): %w", name, path, err)
	}

	return Tag{Name: name, Colour: rgb, Path: path}, nil
}
