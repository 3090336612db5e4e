// Package coerce turns arbitrary Go values into ordered entries and resolves
// the container entries are assigned onto.
//
// Coercion table for sources:
//
//	kind            contributes                              allowed by
//	nullish         nothing, callers skip it before          -
//	map             every entry, integer keys in base 10     always
//	slice/array     "0", "1", ... -> element                 options.CoercionArray
//	string          "0", "1", ... -> one string per rune     options.CoercionString
//	number/bool     nothing                                  options.CoercionScalar
//	struct          exported fields, json tag names          options.CoercionStruct
//	func/chan/...   never                                    -
//
// The string and scalar rows exist to stay drop-in compatible with the
// classic shallow merge, where any value may be passed as a source.
package coerce

import (
	"assign-where/entry"
	"assign-where/kind"
	"assign-where/options"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrNotEnumerable = errors.New("value is not enumerable")
	ErrNotAllowed    = errors.New("coercion of this kind is disabled")
	ErrNilTarget     = errors.New("cannot convert nil to object")
	ErrNilMap        = errors.New("cannot assign into a nil map")
	ErrUnassignable  = errors.New("value cannot be stored in the target map")
)

var sourceTable = map[kind.KindEnum]options.CategoryEnum{
	kind.KindMap:    options.CoercionNone,
	kind.KindArray:  options.CoercionArray,
	kind.KindString: options.CoercionString,
	kind.KindNumber: options.CoercionScalar,
	kind.KindBool:   options.CoercionScalar,
	kind.KindStruct: options.CoercionStruct,
}

// Check reports whether src may be used as a source under allowed without enumerating it.
func Check(src any, allowed options.CategoryEnum) error {
	k := kind.Of(src)
	if k == kind.KindNullish {
		return nil
	}

	need, ok := sourceTable[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotEnumerable, k)
	}

	if !allowed.Has(need) {
		return fmt.Errorf("%w: %s", ErrNotAllowed, k)
	}

	return nil
}

// Entries enumerates the own entries of src, as if src alone were merged onto
// an empty container. Nullish sources yield no entries.
func Entries(src any, allowed options.CategoryEnum) ([]entry.Entry, error) {
	if err := Check(src, allowed); err != nil {
		return nil, err
	}

	// fast paths for decoder output
	switch s := src.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		out := make([]entry.Entry, 0, len(s))
		for k, v := range s {
			out = append(out, entry.Entry{Key: k, Value: v})
		}
		entry.Sort(out)
		return out, nil
	case []any:
		out := make([]entry.Entry, 0, len(s))
		for i, v := range s {
			out = append(out, entry.Entry{Key: entry.IndexKey(i), Value: v})
		}
		return out, nil
	case string:
		return stringEntries(s), nil
	}

	rv := indirect(reflect.ValueOf(src))

	switch kind.FromReflectValue(rv) {
	default:
		return nil, nil
	case kind.KindMap:
		return mapEntries(rv)
	case kind.KindArray:
		out := make([]entry.Entry, 0, rv.Len())
		for i := range rv.Len() {
			out = append(out, entry.Entry{Key: entry.IndexKey(i), Value: rv.Index(i).Interface()})
		}
		return out, nil
	case kind.KindString:
		return stringEntries(rv.String()), nil
	case kind.KindStruct:
		return structEntries(rv), nil
	}
}

func stringEntries(s string) []entry.Entry {
	out := make([]entry.Entry, 0, len(s))
	i := 0
	for _, r := range s {
		out = append(out, entry.Entry{Key: entry.IndexKey(i), Value: string(r)})
		i++
	}
	return out
}

func mapEntries(rv reflect.Value) ([]entry.Entry, error) {
	out := make([]entry.Entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, err := keyString(iter.Key())
		if err != nil {
			return nil, err
		}
		out = append(out, entry.Entry{Key: key, Value: iter.Value().Interface()})
	}

	entry.Sort(out)

	return out, nil
}

func keyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}

	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	default:
		return "", fmt.Errorf("%w: map key of type %s", ErrNotEnumerable, k.Type())
	}
}

func structEntries(rv reflect.Value) []entry.Entry {
	t := rv.Type()
	out := make([]entry.Entry, 0, t.NumField())

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}

		out = append(out, entry.Entry{Key: name, Value: rv.Field(i).Interface()})
	}

	return out
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv
}
