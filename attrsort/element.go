package attrsort

import (
	"reflect"
	"strconv"
)

// Shape is the kind of element the sorter sees once a host value is wrapped.
type Shape int

const (
	// ShapeOpaque elements expose nothing and are always unsortable.
	ShapeOpaque Shape = iota
	// ShapeIndexable elements support generic key lookup (see Indexable).
	ShapeIndexable
	// ShapeAccessorObject elements are objects with getter/isser accessors.
	ShapeAccessorObject
	// ShapePlainContainer elements are Go maps, slices and arrays.
	ShapePlainContainer
)

func (s Shape) String() string {
	switch s {
	case ShapeOpaque:
		return "opaque"
	case ShapeIndexable:
		return "indexable"
	case ShapeAccessorObject:
		return "accessor-object"
	case ShapePlainContainer:
		return "plain-container"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// Indexable is implemented by containers that support lookup by key. The
// boolean reports whether key is present; a present key may hold nil.
type Indexable interface {
	Index(key string) (any, bool)
}

// AttributeGetter is implemented by objects that resolve "get" accessors
// themselves. GetAttribute("name") plays the role of a GetName method.
type AttributeGetter interface {
	GetAttribute(name string) (any, bool)
}

// AttributeIser is the "is" counterpart of AttributeGetter:
// IsAttribute("active") plays the role of an IsActive method.
type AttributeIser interface {
	IsAttribute(name string) (any, bool)
}

// Element is a host value classified into one of the four shapes. Only this
// package implements Element; use Wrap to obtain one.
type Element interface {
	// Value returns the wrapped host value.
	Value() any

	// Shape returns the element's shape.
	Shape() Shape

	// Resolve extracts the sort value for attribute. It reports false when
	// the element does not expose the attribute.
	Resolve(attribute string) (any, bool)

	// resolve is Resolve plus the failure of an accessor that panicked or
	// returned an error.
	resolve(attribute string) (any, bool, error)
}

// Wrap classifies v. The classification and, for objects, the accessor
// lookup table are computed here, once, rather than on every comparison.
func Wrap(v any) Element {
	if e, ok := v.(Element); ok {
		return e
	}

	accessors, isObject := objectAccessors(v)

	if idx, ok := indexable(v); ok {
		return &indexableElement{value: v, index: idx, accessors: accessors}
	}

	if isObject {
		return &accessorObject{value: v, accessors: accessors}
	}

	if lookup, ok := containerLookup(v); ok {
		return &plainContainer{value: v, lookup: lookup}
	}

	return opaque{value: v}
}

// indexable returns v as an Indexable. Struct values are also checked
// through a pointer to a copy, the same way their accessors are found.
func indexable(v any) (Indexable, bool) {
	if idx, ok := v.(Indexable); ok {
		return idx, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}

	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)

	idx, ok := ptr.Interface().(Indexable)

	return idx, ok
}

type indexableElement struct {
	value     any
	index     Indexable
	accessors accessorSet // nil unless the value is also an object
}

func (e *indexableElement) Value() any   { return e.value }
func (e *indexableElement) Shape() Shape { return ShapeIndexable }

func (e *indexableElement) Resolve(attribute string) (any, bool) {
	v, found, _ := e.resolve(attribute)

	return v, found
}

func (e *indexableElement) resolve(attribute string) (any, bool, error) {
	if v, found := e.index.Index(attribute); found {
		return v, true, nil
	}

	if e.accessors == nil {
		return nil, false, nil
	}

	return resolveAccessor(e.accessors, attribute)
}

type accessorObject struct {
	value     any
	accessors accessorSet
}

func (e *accessorObject) Value() any   { return e.value }
func (e *accessorObject) Shape() Shape { return ShapeAccessorObject }

func (e *accessorObject) Resolve(attribute string) (any, bool) {
	v, found, _ := e.resolve(attribute)

	return v, found
}

func (e *accessorObject) resolve(attribute string) (any, bool, error) {
	return resolveAccessor(e.accessors, attribute)
}

type plainContainer struct {
	value  any
	lookup func(key string) (any, bool)
}

func (e *plainContainer) Value() any   { return e.value }
func (e *plainContainer) Shape() Shape { return ShapePlainContainer }

func (e *plainContainer) Resolve(attribute string) (any, bool) {
	return e.lookup(attribute)
}

func (e *plainContainer) resolve(attribute string) (any, bool, error) {
	v, found := e.lookup(attribute)

	return v, found, nil
}

type opaque struct {
	value any
}

func (e opaque) Value() any                        { return e.value }
func (e opaque) Shape() Shape                      { return ShapeOpaque }
func (e opaque) Resolve(string) (any, bool)        { return nil, false }
func (e opaque) resolve(string) (any, bool, error) { return nil, false, nil }

// resolveAccessor tries the "get" accessor, then the "is" accessor. A failing
// "get" accessor does not fall through to "is".
func resolveAccessor(accessors accessorSet, attribute string) (any, bool, error) {
	v, found, err := accessors.get(attribute)
	if found || err != nil {
		return v, found, err
	}

	return accessors.is(attribute)
}

// containerLookup returns a key lookup for Go maps, slices and arrays.
func containerLookup(v any) (func(string) (any, bool), bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Map:
		return func(key string) (any, bool) {
			if rv.IsNil() {
				return nil, false
			}

			for _, mk := range convertKey(key, rv.Type().Key()) {
				if found := rv.MapIndex(mk); found.IsValid() {
					return found.Interface(), true
				}
			}

			return nil, false
		}, true
	case reflect.Slice, reflect.Array:
		return func(key string) (any, bool) {
			i, err := strconv.Atoi(key)
			if err != nil || strconv.Itoa(i) != key || i < 0 || i >= rv.Len() {
				return nil, false
			}

			return rv.Index(i).Interface(), true
		}, true
	default:
		return nil, false
	}
}

// convertKey returns the values of the map's key type that key may denote.
// Interface-keyed maps are probed with the string and, for canonical
// integers, the int.
func convertKey(key string, typ reflect.Type) []reflect.Value {
	switch typ.Kind() { //nolint:exhaustive
	case reflect.String:
		return []reflect.Value{reflect.ValueOf(key).Convert(typ)}
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return nil
		}

		candidates := []reflect.Value{reflect.ValueOf(key).Convert(typ)}
		if n, err := strconv.Atoi(key); err == nil && strconv.Itoa(n) == key {
			candidates = append(candidates, reflect.ValueOf(n).Convert(typ))
		}

		return candidates
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, typ.Bits())
		if err != nil {
			return nil
		}

		return []reflect.Value{reflect.ValueOf(n).Convert(typ)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(key, 10, typ.Bits())
		if err != nil {
			return nil
		}

		return []reflect.Value{reflect.ValueOf(n).Convert(typ)}
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(key, typ.Bits())
		if err != nil {
			return nil
		}

		return []reflect.Value{reflect.ValueOf(f).Convert(typ)}
	case reflect.Bool:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return nil
		}

		return []reflect.Value{reflect.ValueOf(b).Convert(typ)}
	default:
		return nil
	}
}
