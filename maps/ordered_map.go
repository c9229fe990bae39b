// Package maps provides OrderedMap, an insertion-ordered collection keyed by
// names or integer indexes. It is the keyed collection the attribute sorter
// reads and produces: iteration order is the order entries were added, and
// YAML/JSON encoding keeps that order.
package maps

import (
	"iter"
	"slices"
)

// KeyValuePair is one entry of an OrderedMap.
type KeyValuePair[V any] struct {
	Key   Key
	Value V
}

// OrderedMap is an insertion-ordered map from Key to V. The zero value is an
// empty map ready to use. It is not safe for concurrent mutation.
type OrderedMap[V any] struct {
	keys []Key
	data map[Key]V
	next int // next index used by Append
}

// New returns an empty OrderedMap.
func New[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{data: make(map[Key]V)}
}

// FromSlice returns a map holding items under the index keys 0..len(items)-1.
func FromSlice[V any](items []V) *OrderedMap[V] {
	m := &OrderedMap[V]{
		keys: make([]Key, 0, len(items)),
		data: make(map[Key]V, len(items)),
	}

	for _, item := range items {
		m.Append(item)
	}

	return m
}

// Add inserts or replaces the value for key. A replaced key keeps its
// position; a new key is appended.
func (m *OrderedMap[V]) Add(key Key, value V) {
	if m.data == nil {
		m.data = make(map[Key]V)
	}

	if _, found := m.data[key]; !found {
		m.keys = append(m.keys, key)
	}

	m.data[key] = value

	if key.indexed && key.pos >= m.next {
		m.next = key.pos + 1
	}
}

// Append adds value under the next free index key (one past the largest
// index key seen so far) and returns that key.
func (m *OrderedMap[V]) Append(value V) Key {
	key := Index(m.next)
	m.Add(key, value)

	return key
}

// Get returns the value stored for key.
func (m *OrderedMap[V]) Get(key Key) (V, bool) {
	if m == nil {
		var zero V

		return zero, false
	}

	value, found := m.data[key]

	return value, found
}

// Contains reports whether key is present.
func (m *OrderedMap[V]) Contains(key Key) bool {
	_, found := m.Get(key)

	return found
}

// Remove deletes key. Removing a missing key is a no-op.
func (m *OrderedMap[V]) Remove(key Key) {
	if m == nil {
		return
	}

	if _, found := m.data[key]; !found {
		return
	}

	delete(m.data, key)
	m.keys = slices.DeleteFunc(m.keys, func(k Key) bool { return k == key })
}

// Size returns the number of entries.
func (m *OrderedMap[V]) Size() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys in order. The slice is a copy.
func (m *OrderedMap[V]) Keys() []Key {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Values returns the values in order.
func (m *OrderedMap[V]) Values() []V {
	values := make([]V, 0, m.Size())

	for _, entry := range m.Seq() {
		values = append(values, entry.Value)
	}

	return values
}

// Seq yields (position, entry) pairs in insertion order.
func (m *OrderedMap[V]) Seq() iter.Seq2[int, KeyValuePair[V]] {
	return func(yield func(int, KeyValuePair[V]) bool) {
		if m == nil {
			return
		}

		for i, key := range m.keys {
			if !yield(i, KeyValuePair[V]{Key: key, Value: m.data[key]}) {
				return
			}
		}
	}
}

// All yields (key, value) pairs in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for _, entry := range m.Seq() {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy with the same order.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	out := &OrderedMap[V]{
		keys: m.Keys(),
		data: make(map[Key]V, m.Size()),
	}

	if m == nil {
		return out
	}

	for key, value := range m.data {
		out.data[key] = value
	}

	out.next = m.next

	return out
}

// Index looks up the entry whose key is KeyOf(key). It lets an OrderedMap
// element be sorted by one of its own keys.
func (m *OrderedMap[V]) Index(key string) (any, bool) {
	value, found := m.Get(KeyOf(key))
	if !found {
		return nil, false
	}

	return value, true
}
