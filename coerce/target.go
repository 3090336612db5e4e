package coerce

import (
	"assign-where/kind"
	"assign-where/options"
	"fmt"
	"reflect"
)

// Container is a resolved merge target.
type Container interface {
	// Set stores value at key, overwriting.
	Set(key string, value any) error
	// Value returns what the merge hands back to the caller.
	Value() any
}

// Target resolves dst into a Container. String keyed maps, and pointers to them,
// are used in place. A string becomes a fresh map of its characters when
// options.CoercionString is allowed.
func Target(dst any, allowed options.CategoryEnum) (Container, error) {
	switch d := dst.(type) {
	case map[string]any:
		if d == nil {
			return nil, ErrNilMap
		}
		return objectTarget{m: d, ret: dst}, nil
	case *map[string]any:
		if d == nil {
			return nil, ErrNilTarget
		}
		if *d == nil {
			*d = map[string]any{}
		}
		return objectTarget{m: *d, ret: dst}, nil
	}

	switch k := kind.Of(dst); k {
	case kind.KindNullish:
		return nil, ErrNilTarget
	case kind.KindString:
		if !allowed.Has(options.CoercionString) {
			return nil, fmt.Errorf("%w: %s", ErrNotAllowed, k)
		}
		m := map[string]any{}
		for _, e := range stringEntries(indirect(reflect.ValueOf(dst)).String()) {
			m[e.Key] = e.Value
		}
		return objectTarget{m: m, ret: m}, nil
	case kind.KindMap:
		return mapTarget(dst)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotEnumerable, k)
	}
}

func mapTarget(dst any) (Container, error) {
	rv := reflect.ValueOf(dst)

	if rv.Kind() == reflect.Ptr {
		if rv.Elem().Kind() != reflect.Map {
			return nil, fmt.Errorf("%w: pointer to %s", ErrNotEnumerable, rv.Elem().Kind())
		}
		if rv.Elem().IsNil() {
			rv.Elem().Set(reflect.MakeMap(rv.Elem().Type()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s", ErrNotEnumerable, rv.Type())
	}

	if rv.IsNil() {
		return nil, ErrNilMap
	}

	return reflectTarget{m: rv, ret: dst}, nil
}

type objectTarget struct {
	m   map[string]any
	ret any
}

func (t objectTarget) Set(key string, value any) error {
	t.m[key] = value
	return nil
}

func (t objectTarget) Value() any { return t.ret }

type reflectTarget struct {
	m   reflect.Value
	ret any
}

func (t reflectTarget) Set(key string, value any) error {
	mt := t.m.Type()

	val, ok := convertValue(value, mt.Elem())
	if !ok {
		return fmt.Errorf("%w: %T into %s", ErrUnassignable, value, mt)
	}

	t.m.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), val)

	return nil
}

func (t reflectTarget) Value() any { return t.ret }

// convertValue returns value as elem, allowing lossless numeric conversions only.
func convertValue(value any, elem reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch elem.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(elem), true
		default:
			return reflect.Value{}, false
		}
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(elem) {
		return rv, true
	}

	if kind.FromReflectValue(rv) != kind.KindNumber || kind.FromReflectValue(reflect.Zero(elem)) != kind.KindNumber {
		return reflect.Value{}, false
	}

	converted := rv.Convert(elem)
	if negative(converted) != negative(rv) || !converted.Convert(rv.Type()).Equal(rv) {
		return reflect.Value{}, false
	}

	return converted, true
}

func negative(rv reflect.Value) bool {
	switch {
	case rv.CanInt():
		return rv.Int() < 0
	case rv.CanFloat():
		return rv.Float() < 0
	default:
		return false
	}
}
