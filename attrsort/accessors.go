package attrsort

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	sorterrors "github.com/amp-labs/amp-attrsort/errors"
)

// accessorSet resolves "get" and "is" accessors of one object. A non-nil
// error always comes with found == false.
type accessorSet interface {
	get(attribute string) (any, bool, error)
	is(attribute string) (any, bool, error)
}

// objectAccessors reports whether v is an object and, if so, how to reach
// its accessors. Objects are values implementing AttributeGetter or
// AttributeIser, structs, and non-nil pointers.
func objectAccessors(v any) (accessorSet, bool) {
	if v == nil {
		return nil, false
	}

	getter, hasGetter := v.(AttributeGetter)
	iser, hasIser := v.(AttributeIser)

	if hasGetter || hasIser {
		return interfaceAccessors{getter: getter, iser: iser}, true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
	case reflect.Struct:
		// Copy behind a pointer so pointer-receiver accessors are callable
		// without touching the caller's value.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		rv = ptr
	default:
		return nil, false
	}

	return reflectedAccessors{receiver: rv, methods: methodTable(rv.Type())}, true
}

type interfaceAccessors struct {
	getter AttributeGetter
	iser   AttributeIser
}

func (a interfaceAccessors) get(attribute string) (any, bool, error) {
	if a.getter == nil {
		return nil, false, nil
	}

	return guard(func() (any, bool) { return a.getter.GetAttribute(attribute) })
}

func (a interfaceAccessors) is(attribute string) (any, bool, error) {
	if a.iser == nil {
		return nil, false, nil
	}

	return guard(func() (any, bool) { return a.iser.IsAttribute(attribute) })
}

type reflectedAccessors struct {
	receiver reflect.Value
	methods  map[string]int
}

func (a reflectedAccessors) get(attribute string) (any, bool, error) {
	return a.call(AccessorName("get", attribute))
}

func (a reflectedAccessors) is(attribute string) (any, bool, error) {
	return a.call(AccessorName("is", attribute))
}

func (a reflectedAccessors) call(name string) (any, bool, error) {
	idx, found := a.methods[name]
	if !found {
		return nil, false, nil
	}

	var callErr error

	v, ok, err := guard(func() (any, bool) {
		out := a.receiver.Method(idx).Call(nil)

		if len(out) == 2 && !out[1].IsNil() {
			callErr, _ = out[1].Interface().(error)

			return nil, false
		}

		return out[0].Interface(), true
	})
	if err != nil {
		return nil, false, err
	}

	if callErr != nil {
		return nil, false, fmt.Errorf("accessor %s: %w", name, callErr)
	}

	return v, ok, nil
}

// guard runs fn, turning a panic into an error.
func guard(fn func() (any, bool)) (value any, found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, found, err = nil, false, sorterrors.PanicError(r)
		}
	}()

	value, found = fn()

	return value, found, nil
}

// AccessorName builds the normalized accessor name for prefix and attribute:
// the concatenation with every character outside [A-Za-z0-9] removed,
// lowercased. Method names are matched in the same normalized form, so
// AccessorName("get", "first_name") matches a GetFirstName method.
func AccessorName(prefix, attribute string) string {
	return normalize(prefix + attribute)
}

func normalize(name string) string {
	var b strings.Builder

	b.Grow(len(name))

	for i := range len(name) {
		c := name[i]

		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}

	return b.String()
}

// methodTables caches reflect.Type -> map[string]int.
var methodTables sync.Map //nolint:gochecknoglobals

var errorType = reflect.TypeFor[error]() //nolint:gochecknoglobals

// methodTable indexes the accessor-shaped methods of typ by normalized name.
// An accessor takes no arguments and returns one value, or a value and an
// error. Tables are computed once per type.
func methodTable(typ reflect.Type) map[string]int {
	if cached, ok := methodTables.Load(typ); ok {
		table, _ := cached.(map[string]int)

		return table
	}

	table := make(map[string]int)

	for i := range typ.NumMethod() {
		method := typ.Method(i)
		mt := method.Type // includes the receiver

		if mt.NumIn() != 1 {
			continue
		}

		switch {
		case mt.NumOut() == 1:
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
		default:
			continue
		}

		name := normalize(method.Name)
		if _, taken := table[name]; !taken {
			table[name] = i
		}
	}

	actual, _ := methodTables.LoadOrStore(typ, table)
	table, _ = actual.(map[string]int)

	return table
}
