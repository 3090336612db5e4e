package predicate

import (
	"assign-where/entry"
	"errors"
	"reflect"
)

var (
	ErrNotAFunction = errors.New("provided predicate is not a function")
	ErrBadArity     = errors.New("predicate must accept an entry or a key and a value")
	ErrBadResult    = errors.New("predicate must return bool or (bool, error)")
	ErrBadKey       = errors.New("predicate key parameter must be string based")
)

// Func is the normalized predicate form every accepted signature is wrapped into.
type Func func(e entry.Entry) (bool, error)

var (
	typeEntry = reflect.TypeFor[entry.Entry]()
	typeError = reflect.TypeFor[error]()
)

// Parse inspects fn and returns it as a Func.
//
// Supports signatures:
//   - func(key string, value any) bool
//   - func(e entry.Entry) bool
//   - func(key K, value V) bool, where K is string based and V is any type
//   - any of the above returning (bool, error)
//
// With a typed value parameter, entries whose value is not assignable to V
// are rejected without calling fn.
func Parse(fn any) (Func, error) {
	// fast paths avoid reflection for the common literals
	switch f := fn.(type) {
	case Func:
		if f == nil {
			return nil, ErrNotAFunction
		}
		return f, nil
	case func(entry.Entry) (bool, error):
		if f == nil {
			return nil, ErrNotAFunction
		}
		return f, nil
	case func(entry.Entry) bool:
		if f == nil {
			return nil, ErrNotAFunction
		}
		return func(e entry.Entry) (bool, error) { return f(e), nil }, nil
	case func(string, any) bool:
		if f == nil {
			return nil, ErrNotAFunction
		}
		return func(e entry.Entry) (bool, error) { return f(e.Key, e.Value), nil }, nil
	case func(string, any) (bool, error):
		if f == nil {
			return nil, ErrNotAFunction
		}
		return func(e entry.Entry) (bool, error) { return f(e.Key, e.Value) }, nil
	}

	if fn == nil {
		return nil, ErrNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func || fnVal.IsNil() {
		return nil, ErrNotAFunction
	}

	hasErr, err := parseResults(fnType)
	if err != nil {
		return nil, err
	}

	if fnType.IsVariadic() {
		return nil, ErrBadArity
	}

	var args func(e entry.Entry) ([]reflect.Value, bool)

	switch fnType.NumIn() {
	default:
		return nil, ErrBadArity
	case 1:
		if fnType.In(0) != typeEntry {
			return nil, ErrBadArity
		}
		args = func(e entry.Entry) ([]reflect.Value, bool) {
			return []reflect.Value{reflect.ValueOf(e)}, true
		}
	case 2:
		keyType, valType := fnType.In(0), fnType.In(1)
		if keyType.Kind() != reflect.String {
			return nil, ErrBadKey
		}
		args = func(e entry.Entry) ([]reflect.Value, bool) {
			val, ok := valueOf(e.Value, valType)
			if !ok {
				return nil, false
			}
			return []reflect.Value{reflect.ValueOf(e.Key).Convert(keyType), val}, true
		}
	}

	return func(e entry.Entry) (bool, error) {
		in, ok := args(e)
		if !ok {
			return false, nil
		}

		out := fnVal.Call(in)
		if hasErr && !out[1].IsNil() {
			return false, out[1].Interface().(error)
		}

		return out[0].Bool(), nil
	}, nil
}

func parseResults(t reflect.Type) (hasErr bool, err error) {
	switch t.NumOut() {
	case 1:
		if t.Out(0).Kind() != reflect.Bool {
			return false, ErrBadResult
		}
		return false, nil
	case 2:
		if t.Out(0).Kind() != reflect.Bool || t.Out(1) != typeError {
			return false, ErrBadResult
		}
		return true, nil
	default:
		return false, ErrBadResult
	}
}

// valueOf adapts v to the parameter type t, reporting false when v cannot be passed.
func valueOf(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		default:
			return reflect.Value{}, false
		}
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}

	return rv, true
}

// Always is a predicate accepting every entry.
func Always(entry.Entry) (bool, error) { return true, nil }

// Never is a predicate rejecting every entry.
func Never(entry.Entry) (bool, error) { return false, nil }

// And combines predicates, stopping at the first rejection or error.
func And(fns ...Func) Func {
	return func(e entry.Entry) (bool, error) {
		for _, fn := range fns {
			ok, err := fn(e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Or combines predicates, stopping at the first acceptance or error.
func Or(fns ...Func) Func {
	return func(e entry.Entry) (bool, error) {
		for _, fn := range fns {
			ok, err := fn(e)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// Not negates fn, errors pass through.
func Not(fn Func) Func {
	return func(e entry.Entry) (bool, error) {
		ok, err := fn(e)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}
