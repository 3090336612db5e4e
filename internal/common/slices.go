package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Filter returns the elements of s satisfying keep, preserving order.
func Filter[S ~[]E, E any](s S, keep func(E) bool) S {
	out := make(S, 0, len(s))
	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Indices returns the positions of the elements of s satisfying keep, in ascending order.
func Indices[S ~[]E, E any](s S, keep func(E) bool) []int {
	out := make([]int, 0, len(s))
	for i, e := range s {
		if keep(e) {
			out = append(out, i)
		}
	}
	return out
}
