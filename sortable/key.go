package sortable

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Kind is the coarse type of a Key. Kinds are ordered by their numeric value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindTime
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindOther:
		return "other"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

type numberKind uint8

const (
	numInt numberKind = iota
	numUint
	numFloat
)

var timeType = reflect.TypeFor[time.Time]() //nolint:gochecknoglobals

// Key is a comparable snapshot of a value used purely for ordering.
// The zero Key is the null key.
type Key struct {
	kind Kind
	num  numberKind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	t    time.Time
	typ  string
}

var _ Sortable[Key] = Key{}

// Text returns a string key.
func Text(s string) Key {
	return Key{kind: KindString, s: s}
}

// KeyOf classifies v and returns its key. Pointers are followed; a nil
// pointer is a null key. Named types are classified by their underlying kind,
// so a `type Name string` value is a string key.
func KeyOf(v any) Key {
	switch x := v.(type) {
	case nil:
		return Key{}
	case Key:
		return x
	case string:
		return Text(x)
	case bool:
		return Key{kind: KindBool, b: x}
	case int:
		return Key{kind: KindNumber, num: numInt, i: int64(x)}
	case int64:
		return Key{kind: KindNumber, num: numInt, i: x}
	case float64:
		return Key{kind: KindNumber, num: numFloat, f: x}
	case time.Time:
		return Key{kind: KindTime, t: x}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Key{}
		}

		rv = rv.Elem()
	}

	if rv.Type() == timeType {
		t, _ := rv.Interface().(time.Time)

		return Key{kind: KindTime, t: t}
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Bool:
		return Key{kind: KindBool, b: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Key{kind: KindNumber, num: numInt, i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Key{kind: KindNumber, num: numUint, u: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return Key{kind: KindNumber, num: numFloat, f: rv.Float()}
	case reflect.String:
		return Text(rv.String())
	default:
		return Key{kind: KindOther, typ: rv.Type().String(), s: fmt.Sprint(rv.Interface())}
	}
}

// Kind returns the kind of the key.
func (k Key) Kind() Kind {
	return k.kind
}

// Text returns the string held by a string key.
func (k Key) Text() (string, bool) {
	return k.s, k.kind == KindString
}

// Fold returns the key with its text lowercased by caser. Keys of any other
// kind are returned unchanged.
func (k Key) Fold(caser cases.Caser) Key {
	if k.kind != KindString {
		return k
	}

	return Text(caser.String(k.s))
}

// Equals reports whether k and other sort to the same position.
func (k Key) Equals(other Key) bool {
	return k.compare(other) == 0
}

// LessThan reports whether k sorts before other.
func (k Key) LessThan(other Key) bool {
	return k.compare(other) < 0
}

func (k Key) compare(other Key) int {
	if k.kind != other.kind {
		return cmp.Compare(k.kind, other.kind)
	}

	switch k.kind {
	case KindNull:
		return 0
	case KindBool:
		switch {
		case k.b == other.b:
			return 0
		case !k.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		return compareNumbers(k, other)
	case KindString:
		return strings.Compare(k.s, other.s)
	case KindTime:
		return k.t.Compare(other.t)
	default:
		if c := strings.Compare(k.typ, other.typ); c != 0 {
			return c
		}

		return strings.Compare(k.s, other.s)
	}
}

func compareNumbers(a, b Key) int {
	switch {
	case a.num == numInt && b.num == numInt:
		return cmp.Compare(a.i, b.i)
	case a.num == numUint && b.num == numUint:
		return cmp.Compare(a.u, b.u)
	case a.num == numInt && b.num == numUint:
		if a.i < 0 {
			return -1
		}

		return cmp.Compare(uint64(a.i), b.u)
	case a.num == numFloat && b.num == numFloat:
		// cmp.Compare puts NaN first and treats NaNs as equal.
		return cmp.Compare(a.f, b.f)
	case a.num == numInt:
		return compareIntFloat(a.i, b.f)
	case a.num == numUint && b.num == numFloat:
		return compareUintFloat(a.u, b.f)
	default:
		return -compareNumbers(b, a)
	}
}

// Bounds of the integer ranges as exact float64 values.
const (
	twoTo63 = float64(1 << 63)
	twoTo64 = twoTo63 * 2
)

// compareIntFloat compares exactly, without rounding i to a float64.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= twoTo63:
		return -1
	case f < -twoTo63:
		return 1
	}

	whole := math.Trunc(f)
	if c := cmp.Compare(i, int64(whole)); c != 0 {
		return c
	}

	// i equals the integer part of f; the fraction decides.
	return cmp.Compare(whole, f)
}

// compareUintFloat is compareIntFloat for unsigned integers.
func compareUintFloat(u uint64, f float64) int {
	switch {
	case math.IsNaN(f), f < 0:
		return 1
	case f >= twoTo64:
		return -1
	}

	whole := math.Trunc(f)
	if c := cmp.Compare(u, uint64(whole)); c != 0 {
		return c
	}

	return cmp.Compare(whole, f)
}

// String renders the key for logs and test failures.
func (k Key) String() string {
	switch k.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(k.b)
	case KindNumber:
		switch k.num {
		case numInt:
			return strconv.FormatInt(k.i, 10)
		case numUint:
			return strconv.FormatUint(k.u, 10)
		default:
			return strconv.FormatFloat(k.f, 'g', -1, 64)
		}
	case KindString:
		return strconv.Quote(k.s)
	case KindTime:
		return k.t.Format(time.RFC3339Nano)
	default:
		return k.typ + "(" + k.s + ")"
	}
}
