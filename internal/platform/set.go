package platform

import (
	"iter"
	"slices"
	"strings"

	"github.com/thoreinstein/tmplorg/internal/command"
	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/index"
)

// Set is the immutable set of literal platform names observed in an index.
// A Set is read-only once built and safe for concurrent use.
type Set struct {
	names map[string]struct{}
	// byLength is sorted longest first, then lexicographically, so the
	// first prefix match is the one Longest must return.
	byLength []string
}

// NewSet builds a Set from literal platform names. Pattern-form names are
// ignored.
func NewSet(names ...string) *Set {
	s := &Set{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if IsPattern(name) {
			continue
		}
		s.names[name] = struct{}{}
	}

	s.byLength = make([]string, 0, len(s.names))
	for name := range s.names {
		s.byLength = append(s.byLength, name)
	}
	slices.SortFunc(s.byLength, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return s
}

// Collect performs the first pass over the index: it gathers every literal
// platform field into a Set. The first read error aborts the pass.
func Collect(records iter.Seq2[index.Record, error]) (*Set, error) {
	var names []string
	for rec, err := range records {
		if err != nil {
			return nil, errors.Wrap(err, "collecting concrete platforms")
		}
		if !IsPattern(rec.RawPlatform) {
			names = append(names, rec.RawPlatform)
		}
	}
	return NewSet(names...), nil
}

// Len returns the number of concrete platforms.
func (s *Set) Len() int {
	return len(s.names)
}

// All returns the platform names in lexicographic order.
func (s *Set) All() []string {
	all := slices.Clone(s.byLength)
	slices.Sort(all)
	return all
}

// Longest returns the longest platform p for which stem starts with p+"_",
// or which is listed in a leading "(p|q)_" alternation group of stem.
// Among equally long matches the lexicographically smallest wins.
func (s *Set) Longest(stem string) (string, bool) {
	alts, _, grouped := command.GroupPrefix(stem)
	for _, name := range s.byLength {
		if strings.HasPrefix(stem, name+"_") {
			return name, true
		}
		if grouped && slices.Contains(alts, name) {
			return name, true
		}
	}
	return "", false
}

// Resolve assigns a concrete platform to rec. Literal platform fields
// resolve to themselves; pattern fields are resolved from the primary
// template filename.
func (s *Set) Resolve(rec index.Record) Resolution {
	if !IsPattern(rec.RawPlatform) {
		return Resolution{Platform: rec.RawPlatform, Source: SourceLiteral}
	}

	stem := command.Stem(rec.Primary())
	if name, ok := s.Longest(stem); ok {
		return Resolution{Platform: name, Source: SourcePrefix}
	}
	return Resolution{Platform: Fallback(stem), Source: SourceFallback}
}

// Fallback synthesizes a platform name from the first two
// underscore-separated segments of stem. A stem with a single segment is
// returned unchanged.
func Fallback(stem string) string {
	parts := strings.SplitN(stem, "_", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "_")
}
