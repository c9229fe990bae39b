package tplfuncs

import (
	"fmt"
	"reflect"
	"slices"
	"text/template"

	"github.com/amp-labs/amp-attrsort/attrsort"
	sorterrors "github.com/amp-labs/amp-attrsort/errors"
	"github.com/amp-labs/amp-attrsort/maps"
	"github.com/amp-labs/amp-attrsort/sortable"
	"github.com/spf13/cast"
)

// FilterName is the name the sorter is registered under.
const FilterName = "sort_by_attribute"

// FuncMap returns a new FuncMap holding only the sort_by_attribute function.
func FuncMap() template.FuncMap {
	funcs := make(template.FuncMap, 1)

	Register(funcs)

	return funcs
}

// Register adds sort_by_attribute to funcs. It panics if the name is
// already taken.
func Register(funcs template.FuncMap) {
	if _, found := funcs[FilterName]; found {
		panic(fmt.Sprintf("duplicate template func %q", FilterName))
	}

	funcs[FilterName] = SortByAttribute
}

// SortByAttribute is the template-facing form of attrsort.Sort and
// attrsort.SortMap.
//
// args[0] is the attribute. Without it, or when it is nil, the collection
// comes back in its original order. Non-string values are converted (so 0
// sorts lists of lists by their first item), and "" is an ordinary
// attribute. args[1] is an optional options mapping, see
// attrsort.DecodeOptions.
//
// Slices and arrays come back as []any. Ordered maps and Go maps come back
// as *maps.OrderedMap[any]; Go maps are first laid out in ascending key
// order, as range would visit them.
func SortByAttribute(collection any, args ...any) (any, error) {
	if len(args) > 2 { //nolint:mnd
		return nil, fmt.Errorf("%w: %s takes at most 2 arguments after the collection, got %d",
			sorterrors.ErrWrongType, FilterName, len(args))
	}

	var (
		attribute string
		present   bool
	)

	if len(args) > 0 && args[0] != nil {
		s, err := cast.ToStringE(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s attribute: %w", sorterrors.ErrWrongType, FilterName, err)
		}

		attribute, present = s, true
	}

	var options attrsort.Options

	if len(args) > 1 {
		decoded, err := attrsort.DecodeOptions(args[1])
		if err != nil {
			return nil, fmt.Errorf("%s options: %w", FilterName, err)
		}

		options = decoded
	}

	var sorter collectionSorter = unsorted{}
	if present {
		sorter = byAttribute{attribute: attribute, opts: []attrsort.Option{attrsort.WithOptions(options)}}
	}

	return sortCollection(collection, sorter)
}

// collectionSorter orders the two collection forms the filter returns.
type collectionSorter interface {
	slice(items []any) []any
	ordered(m *maps.OrderedMap[any]) *maps.OrderedMap[any]
}

type byAttribute struct {
	attribute string
	opts      []attrsort.Option
}

func (b byAttribute) slice(items []any) []any {
	return attrsort.Sort(items, b.attribute, b.opts...)
}

func (b byAttribute) ordered(m *maps.OrderedMap[any]) *maps.OrderedMap[any] {
	return attrsort.SortMap(m, b.attribute, b.opts...)
}

// unsorted copies the collection, keeping its order.
type unsorted struct{}

func (unsorted) slice(items []any) []any                              { return slices.Clone(items) }
func (unsorted) ordered(m *maps.OrderedMap[any]) *maps.OrderedMap[any] { return m.Clone() }

func sortCollection(collection any, sorter collectionSorter) (any, error) {
	switch c := collection.(type) {
	case nil:
		return nil, nil //nolint:nilnil
	case []any:
		return sorter.slice(c), nil
	case *maps.OrderedMap[any]:
		return sorter.ordered(c), nil
	}

	rv := reflect.ValueOf(collection)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = rv.Index(i).Interface()
		}

		return sorter.slice(items), nil
	case reflect.Map:
		m, err := orderedFromMap(rv)
		if err != nil {
			return nil, err
		}

		return sorter.ordered(m), nil
	default:
		return nil, fmt.Errorf("%w: %s cannot sort %T", sorterrors.ErrUnsupportedCollection, FilterName, collection)
	}
}

// orderedFromMap copies a Go map into an OrderedMap, keys ascending. Two
// keys that print the same (1 and "1") cannot both be kept and are an error.
func orderedFromMap(rv reflect.Value) (*maps.OrderedMap[any], error) {
	keys := rv.MapKeys()

	slices.SortStableFunc(keys, func(a, b reflect.Value) int {
		return sortable.Compare(sortable.KeyOf(a.Interface()), sortable.KeyOf(b.Interface()))
	})

	out := maps.New[any]()
	from := make(map[maps.Key]any, len(keys))

	for _, key := range keys {
		k := maps.KeyOf(fmt.Sprint(key.Interface()))

		if prev, taken := from[k]; taken {
			return nil, fmt.Errorf("%w: %s: map keys %#v and %#v both become key %q",
				sorterrors.ErrWrongType, FilterName, prev, key.Interface(), k.String())
		}

		from[k] = key.Interface()
		out.Add(k, rv.MapIndex(key).Interface())
	}

	return out, nil
}
