// Package attrsort sorts heterogeneous collections by a single attribute.
//
// # Overview
//
// Given a collection whose elements may be keyed containers, objects with
// accessor methods, or plain scalars, [Sort] orders the collection by one
// attribute (a key, an index or an accessor name) and returns a new
// collection. Elements that do not expose the attribute are not an error:
// they are appended, unchanged and in their original order, after the
// sorted ones. The input is never modified.
//
//	people := []any{
//	    map[string]any{"name": "Bob"},
//	    &Person{Name: "alice"}, // has a GetName method
//	    "not a person",
//	}
//	attrsort.Sort(people, "name")
//	// [&Person{alice}, map[name:Bob], "not a person"]
//
// # Resolving an attribute
//
// Every element is classified once by [Wrap] into one of four shapes and then
// resolved in this order:
//
//  1. Indexable: the element implements [Indexable] and holds the attribute
//     as a key. *maps.OrderedMap implements Indexable.
//  2. Object: the element implements [AttributeGetter]/[AttributeIser], is a
//     struct, or is a non-nil pointer. The accessor "get"+attribute is tried,
//     then "is"+attribute. Reflected method names are matched after removing
//     every non-alphanumeric character and lowercasing, so "first_name"
//     finds GetFirstName and "active" finds IsActive. An Indexable object
//     that lacks the key falls back to its accessors.
//  3. Plain container: a Go map holding the attribute as a key (converted to
//     the map's key type), or a slice/array with the attribute as an index.
//  4. Anything else is unsortable.
//
// An accessor that panics or returns a non-nil error makes its element
// unsortable.
//
// # Ordering
//
// Resolved values become [sortable.Key] values and are sorted stably in
// ascending order. Unless [WithCaseSensitive] is set, text keys are
// lowercased first. Values of different types follow the cross-type order
// documented in package sortable.
//
// # Keyed collections
//
// [SortMap] sorts a *maps.OrderedMap. Named keys travel with their values;
// index keys are renumbered, as when merging arrays.
//
// # Concurrency
//
// All functions are safe for concurrent use. Per-type accessor tables are
// cached process-wide.
package attrsort
