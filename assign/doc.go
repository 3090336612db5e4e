// Package assign provides a filtered shallow merge: the own entries of every
// source are offered to a predicate, and the accepted ones are written onto
// the target in source order.
//
// Usage:
//
//	startsWithA := func(key string, _ any) bool { return strings.HasPrefix(key, "a") }
//
//	out, err := assign.Where(startsWithA, map[string]any{"existing": "here"},
//		map[string]any{"apple": "Manzana"},
//		map[string]any{"bannana": "Banano"},
//	)
//	// out: map[apple:Manzana existing:here]
package assign
