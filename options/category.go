package options

// CategoryEnum selects which non-object sources may be coerced into entries.
// Maps are always enumerable and need no bit.
type CategoryEnum int

const (
	CoercionArray  CategoryEnum = 1 << iota // slice, array: index keyed elements "0", "1", ...
	CoercionString                          // string: index keyed characters, one per rune
	CoercionScalar                          // number, bool: accepted, contribute nothing
	CoercionStruct                          // struct: exported fields, json tag names honored

	CoercionAll  = (1 << iota) - 1 // host compatible merge, the default
	CoercionNone = 0               // strict: only maps are accepted
)

// Has reports whether every bit of want is allowed.
func (c CategoryEnum) Has(want CategoryEnum) bool {
	return c&want == want
}
