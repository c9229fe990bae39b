// Package sortable defines the ordering used to sort heterogeneous values.
//
// # Overview
//
// [Key] captures a value extracted from a collection element and places it in
// a single total order, no matter which Go type the value had. That lets a
// sorter compare the age stored in a map with the result of a GetAge method
// on a struct, and still produce a deterministic result when one of them
// happens to be a string.
//
// # Ordering
//
// Keys are ordered by kind first:
//
//	null < bool < number < string < time < other
//
// and by value inside a kind:
//
//   - bool: false before true.
//   - number: every int, uint and float kind is comparable with every other.
//     Integers are compared exactly; anything involving a float is compared
//     as float64. NaN sorts before all other numbers and equals itself.
//   - string: byte-wise, so "B" sorts before "a". Use [Key.Fold] for a
//     case-insensitive order.
//   - time: chronological.
//   - other: by Go type name, then by the fmt.Sprint rendering.
//
// # Usage
//
//	keys := []sortable.Key{sortable.KeyOf("b"), sortable.KeyOf(3), sortable.KeyOf(nil)}
//	slices.SortStableFunc(keys, sortable.Compare[sortable.Key])
//	// nil, 3, "b"
//
// Custom types can take part in the same helpers by implementing [Sortable].
package sortable
