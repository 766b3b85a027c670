// Package tags holds country tag definitions and ranks them by how often
// they are referenced in game scripts.
package tags

import (
	"slices"

	"github.com/jmylchreest/tagtint/internal/colour"
)

// Tag is a country tag with the colour it is defined with.
type Tag struct {
	// Name is the tag identifier, e.g. "SWE".
	Name string
	// Colour is the colour from the tag's definition file.
	Colour colour.RGB
	// Path is the definition file relative to the definitions root.
	Path string
}

// Set is a collection of tags keyed by name. It remembers insertion order.
type Set struct {
	byName map[string]int
	tags   []Tag
}

// NewSet creates a Set holding the given tags.
func NewSet(tags ...Tag) *Set {
	s := &Set{byName: make(map[string]int, len(tags))}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add inserts t unless a tag with the same name is already present.
// It reports whether t was added.
func (s *Set) Add(t Tag) bool {
	if _, ok := s.byName[t.Name]; ok {
		return false
	}
	s.byName[t.Name] = len(s.tags)
	s.tags = append(s.tags, t)
	return true
}

// Get returns the tag with the given name.
func (s *Set) Get(name string) (Tag, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Tag{}, false
	}
	return s.tags[i], true
}

// Len returns the number of tags.
func (s *Set) Len() int {
	return len(s.tags)
}

// Tags returns the tags in insertion order.
func (s *Set) Tags() []Tag {
	return slices.Clone(s.tags)
}

// Names returns the tag names in insertion order.
func (s *Set) Names() []string {
	names := make([]string, len(s.tags))
	for i, t := range s.tags {
		names[i] = t.Name
	}
	return names
}
