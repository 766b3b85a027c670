// Package allocate hands out palette colours to ranked tags.
//
// Allocation is greedy: each tag, in priority order, claims the remaining
// palette colour nearest to its original colour, and that colour is gone for
// every tag after it. The result is not a globally optimal matching.
package allocate

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tagtint/internal/colour"
	"github.com/jmylchreest/tagtint/internal/tags"
)

// ErrPaletteExhausted is returned when there are more tags than palette colours.
var ErrPaletteExhausted = errors.New("palette exhausted")

// Assignment is the colour given to a tag.
type Assignment struct {
	Tag    tags.Tag
	Colour colour.RGB
	// Distance between the tag's original colour and Colour under the metric used.
	Distance float64
}

type options struct {
	metric colour.Metric
	logger hclog.Logger
}

// Option configures Allocate.
type Option func(*options)

// WithMetric sets the distance metric. The default is colour.EuclideanDistance.
func WithMetric(m colour.Metric) Option {
	return func(o *options) {
		if m != nil {
			o.metric = m
		}
	}
}

// WithLogger sets the logger used for per-tag debug output.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Allocate assigns every tag in ranked a colour from palette, in order.
// Claimed colours are removed from palette. If the palette runs dry the
// assignments made so far are returned with ErrPaletteExhausted.
func Allocate(ranked []tags.Tag, palette *colour.Palette, opts ...Option) ([]Assignment, error) {
	o := options{
		metric: colour.EuclideanDistance,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	assignments := make([]Assignment, 0, len(ranked))
	for _, t := range ranked {
		index, distance, ok := Nearest(t.Colour, palette, o.metric)
		if !ok {
			return assignments, fmt.Errorf("%w: no colour left for tag %s after %d of %d assignments",
				ErrPaletteExhausted, t.Name, len(assignments), len(ranked))
		}

		picked, err := palette.Take(index)
		if err != nil {
			return assignments, fmt.Errorf("failed to claim colour for tag %s: %w", t.Name, err)
		}

		o.logger.Debug("assigned colour", "tag", t.Name, "from", t.Colour.Hex(), "to", picked.Hex(), "distance", distance)
		assignments = append(assignments, Assignment{Tag: t, Colour: picked, Distance: distance})
	}

	return assignments, nil
}

// Nearest returns the index of the palette colour closest to target.
// Only a strictly smaller distance replaces the current best, so ties go to
// the earliest colour. ok is false when the palette is empty.
func Nearest(target colour.RGB, palette *colour.Palette, metric colour.Metric) (index int, distance float64, ok bool) {
	index = -1
	distance = math.Inf(1)
	for i, c := range palette.All() {
		if d := metric(target, c); d < distance {
			index, distance = i, d
		}
	}
	return index, distance, index >= 0
}
