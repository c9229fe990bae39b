package sortable

// Sortable is implemented by types with a total order.
type Sortable[T any] interface {
	// Equals reports whether the receiver and other occupy the same position
	// in the order.
	Equals(other T) bool

	// LessThan reports whether the receiver sorts strictly before other.
	LessThan(other T) bool
}

// Compare is a three-way comparison built from a Sortable's Equals and
// LessThan, suitable for slices.SortStableFunc and friends.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.Equals(b):
		return 0
	case a.LessThan(b):
		return -1
	default:
		return 1
	}
}
