// Package corpus gathers the script files that tag references are counted in.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tagtint/internal/security"
	"golang.org/x/sync/errgroup"
)

// DefaultInclude matches every file below a root.
const DefaultInclude = "**"

// maxFileSize caps how much of a single script is read.
const maxFileSize = 64 * 1024 * 1024

// Document is one file of the corpus.
type Document struct {
	Path string
	Text string
}

// Reader walks corpus roots and loads the files in them.
type Reader struct {
	// Include is a doublestar pattern matched against root-relative slash paths.
	Include string
	// Workers bounds concurrent file reads. Zero means GOMAXPROCS.
	Workers int
	// Logger receives warnings about skipped files and directories.
	Logger hclog.Logger
}

// Read loads every matching file under roots. Paths that cannot be read are
// logged and skipped; only cancellation of ctx is reported as an error.
// Documents are returned sorted by path.
func (r *Reader) Read(ctx context.Context, roots ...string) ([]Document, error) {
	logger := r.logger()
	include := r.Include
	if include == "" {
		include = DefaultInclude
	}
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("invalid include pattern: %s", include)
	}

	var paths []string
	for _, root := range roots {
		found, err := collect(ctx, root, include, logger)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	docs := make([]*Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := readText(path)
			if err != nil {
				logger.Warn("skipping unreadable file", "path", path, "error", err)
				return nil
			}
			docs[i] = &Document{Path: path, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, *d)
		}
	}
	logger.Debug("corpus loaded", "roots", len(roots), "files", len(out))
	return out, nil
}

// Texts returns the text of each document, in order.
func Texts(docs []Document) []string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return texts
}

// collect walks root and returns the regular files matching include.
// Roots that are missing or are not directories contribute nothing.
func collect(ctx context.Context, root, include string, logger hclog.Logger) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		logger.Warn("skipping unreadable corpus root", "path", root, "error", err)
		return nil, nil
	}
	if !info.IsDir() {
		logger.Warn("skipping corpus root that is not a directory", "path", root)
		return nil, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(include, filepath.ToSlash(rel)); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil, err
	}
	return paths, nil
}

// readText reads a file through a size limit and replaces invalid UTF-8.
func readText(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 - path found by walking the corpus roots
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(security.NewLimitedReader(f, maxFileSize))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

func (r *Reader) logger() hclog.Logger {
	if r.Logger == nil {
		return hclog.NewNullLogger()
	}
	return r.Logger
}

func (r *Reader) workers() int {
	if r.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return r.Workers
}
