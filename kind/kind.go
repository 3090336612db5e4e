package kind

import (
	"reflect"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is the closed set of value shapes the merge logic distinguishes.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindNullish
	KindFunction
	KindMap
	KindStruct
	KindArray
	KindString
	KindNumber
	KindBool
	KindUnsupported // channels, complex numbers, unsafe pointers

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsObject reports whether the kind has enumerable own keys without coercion.
func (k KindEnum) IsObject() bool {
	switch k {
	default:
		return false
	case KindMap, KindStruct, KindArray:
		return true
	}
}

// IsScalar reports whether the kind contributes no keys when merged.
func (k KindEnum) IsScalar() bool {
	switch k {
	default:
		return false
	case KindNumber, KindBool:
		return true
	}
}

// Of classifies v. Pointers are followed, a nil pointer (at any depth) is nullish.
func Of(v any) KindEnum {
	if v == nil {
		return KindNullish
	}

	// fast path for the shapes produced by decoders
	switch v.(type) {
	case map[string]any:
		return KindMap
	case []any:
		return KindArray
	case string:
		return KindString
	case bool:
		return KindBool
	case int, int64, float64:
		return KindNumber
	}

	return FromReflectValue(reflect.ValueOf(v))
}

// FromReflectValue classifies an already reflected value.
func FromReflectValue(rv reflect.Value) KindEnum {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return KindNullish
		}
		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return KindNullish
	}

	switch rv.Kind() {
	default:
		return KindUnsupported
	case reflect.Func:
		return KindFunction
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		return KindStruct
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	}
}

// IsNullish reports whether v is nil, a nil pointer or a nil interface.
func IsNullish(v any) bool {
	return Of(v) == KindNullish
}
