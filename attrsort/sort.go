package attrsort

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/amp-labs/amp-attrsort/maps"
	"github.com/amp-labs/amp-attrsort/sortable"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sort returns a new slice holding items ordered by attribute, followed by
// the items that do not expose attribute, in their original order. The empty
// string is an attribute like any other: it finds the "" key and accessors
// named Get or Is.
func Sort(items []any, attribute string, opts ...Option) []any {
	return SortSlice(items, attribute, opts...)
}

// SortSlice is Sort for slices of any element type.
func SortSlice[T any](items []T, attribute string, opts ...Option) []T {
	s := newSorter(attribute, opts)
	sorted, excluded := partition(s, slices.All(items))

	out := make([]T, 0, len(items))

	for _, c := range sorted {
		out = append(out, c.item)
	}

	for _, c := range excluded {
		out = append(out, c.item)
	}

	s.done(len(sorted), len(excluded))

	return out
}

// SortMap returns a new map with the entries of m ordered by attribute,
// followed by the entries that do not expose it.
//
// Keys follow array-merge rules: sorted entries with named keys keep them,
// sorted entries with index keys are renumbered 0, 1, 2... in their new
// order, and excluded entries are appended under the next free indexes.
func SortMap[V any](m *maps.OrderedMap[V], attribute string, opts ...Option) *maps.OrderedMap[V] {
	s := newSorter(attribute, opts)
	sorted, excluded := partition(s, m.All())

	out := maps.New[V]()

	for _, c := range sorted {
		if c.key.IsIndex() {
			out.Append(c.item)
		} else {
			out.Add(c.key, c.item)
		}
	}

	for _, c := range excluded {
		out.Append(c.item)
	}

	s.done(len(sorted), len(excluded))

	return out
}

type sorter struct {
	attribute string
	options   Options
	caser     cases.Caser
}

func newSorter(attribute string, opts []Option) *sorter {
	return &sorter{
		attribute: attribute,
		options:   newOptions(opts),
		caser:     cases.Lower(language.Und),
	}
}

type candidate[K, T any] struct {
	key     K
	item    T
	sortKey sortable.Key
}

// partition resolves the sort key of every item in seq, returning the
// resolvable ones stably sorted and the rest in encounter order.
func partition[K, T any](s *sorter, seq iter.Seq2[K, T]) (sorted, excluded []candidate[K, T]) {
	position := 0

	for key, item := range seq {
		c := candidate[K, T]{key: key, item: item}

		if sortKey, ok := s.sortKey(position, item); ok {
			c.sortKey = sortKey
			sorted = append(sorted, c)
		} else {
			excluded = append(excluded, c)
		}

		position++
	}

	slices.SortStableFunc(sorted, func(a, b candidate[K, T]) int {
		return sortable.Compare(a.sortKey, b.sortKey)
	})

	return sorted, excluded
}

func (s *sorter) sortKey(position int, item any) (sortable.Key, bool) {
	element := Wrap(item)

	value, found, err := element.resolve(s.attribute)
	if !found {
		if s.debug() {
			args := []any{
				"attribute", s.attribute,
				"position", position,
				"shape", element.Shape().String(),
				"type", fmt.Sprintf("%T", item),
			}

			if err != nil {
				args = append(args, "error", err)
			}

			s.options.Logger.DebugContext(s.options.ctx, "element excluded from sort", args...)
		}

		return sortable.Key{}, false
	}

	key := sortable.KeyOf(value)
	if !s.options.CaseSensitive {
		key = key.Fold(s.caser)
	}

	return key, true
}

func (s *sorter) done(sorted, excluded int) {
	if s.debug() {
		s.options.Logger.DebugContext(s.options.ctx, "sorted by attribute",
			"attribute", s.attribute,
			"case_sensitive", s.options.CaseSensitive,
			"sorted", sorted,
			"excluded", excluded)
	}
}

func (s *sorter) debug() bool {
	return s.options.Logger.Enabled(s.options.ctx, slog.LevelDebug)
}
