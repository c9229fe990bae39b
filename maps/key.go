package maps

import "strconv"

// Key identifies an entry of an OrderedMap. A key is either named (any
// string) or an integer index. Decimal strings in canonical form ("0", "42",
// "-7", but not "007" or "+1") are index keys, so KeyOf("3") == Index(3).
type Key struct {
	name    string
	pos     int
	indexed bool
}

// KeyOf returns the key for s, normalizing canonical integers to index keys.
func KeyOf(s string) Key {
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		return Index(n)
	}

	return Key{name: s}
}

// Index returns the index key i.
func Index(i int) Key {
	return Key{pos: i, indexed: true}
}

// IsIndex reports whether k is an index key.
func (k Key) IsIndex() bool {
	return k.indexed
}

// Position returns the integer of an index key, or -1 for a named key.
func (k Key) Position() int {
	if !k.indexed {
		return -1
	}

	return k.pos
}

// Name returns the name of a named key, or "" for an index key.
func (k Key) Name() string {
	return k.name
}

// String returns the key as it would be written in a document.
func (k Key) String() string {
	if k.indexed {
		return strconv.Itoa(k.pos)
	}

	return k.name
}
