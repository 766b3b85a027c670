package tags

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FrequencyTable maps a tag name to the number of times it occurs in a corpus.
type FrequencyTable map[string]int

// Ranked is a tag together with its occurrence count.
type Ranked struct {
	Tag
	Count int
}

// Count tallies non-overlapping occurrences of every tag name across corpus.
// Blobs are split between up to workers goroutines (GOMAXPROCS when
// workers <= 0); each builds a partial tally that is summed afterwards.
// Counting stops early if ctx is cancelled.
func Count(ctx context.Context, set *Set, corpus []string, workers int) (FrequencyTable, error) {
	names := set.Names()
	table := make(FrequencyTable, len(names))
	for _, name := range names {
		table[name] = 0
	}
	if len(corpus) == 0 || len(names) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return table, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := (len(corpus) + workers - 1) / workers

	var partials [][]int
	g, gctx := errgroup.WithContext(ctx)
	for blobs := range slices.Chunk(corpus, size) {
		counts := make([]int, len(names))
		partials = append(partials, counts)
		g.Go(func() error {
			for _, blob := range blobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				for i, name := range names {
					if name == "" {
						continue
					}
					counts[i] += strings.Count(blob, name)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, counts := range partials {
		for i, c := range counts {
			table[names[i]] += c
		}
	}
	return table, nil
}

// RankTable orders the tags in set by their count in table, most frequent first.
// Equal counts are ordered by tag name.
func RankTable(set *Set, table FrequencyTable) []Ranked {
	ranked := make([]Ranked, 0, set.Len())
	for _, t := range set.Tags() {
		ranked = append(ranked, Ranked{Tag: t, Count: table[t.Name]})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ranked
}

// Rank counts tag occurrences in corpus and returns the tags most frequent first.
func Rank(ctx context.Context, set *Set, corpus []string, workers int) ([]Ranked, error) {
	table, err := Count(ctx, set, corpus, workers)
	if err != nil {
		return nil, err
	}
	return RankTable(set, table), nil
}

// TagsOf strips the counts from a ranking, keeping its order.
func TagsOf(ranked []Ranked) []Tag {
	out := make([]Tag, len(ranked))
	for i, r := range ranked {
		out[i] = r.Tag
	}
	return out
}
