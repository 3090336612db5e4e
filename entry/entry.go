package entry

import (
	"fmt"
	"slices"
	"strconv"
)

// Entry is a single key/value pair offered by a source.
type Entry struct {
	Key   string
	Value any
}

func (e Entry) String() string {
	return fmt.Sprintf("%s=%v", e.Key, e.Value)
}

// Unpack returns the key and the value, handy for range loops over entries.
func (e Entry) Unpack() (string, any) {
	return e.Key, e.Value
}

// IndexKey formats a position in an indexed container as its key.
func IndexKey(i int) string {
	return strconv.Itoa(i)
}

// Sort orders entries the way own keys are enumerated: canonical array
// indices first in ascending numeric order, then the remaining keys lexically.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		ai, aIdx := arrayIndex(a.Key)
		bi, bIdx := arrayIndex(b.Key)

		switch {
		case aIdx && bIdx:
			return cmpUint(ai, bi)
		case aIdx:
			return -1
		case bIdx:
			return 1
		}

		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		default:
			return 0
		}
	})
}

// arrayIndex parses canonical non-negative integers only: "01" and "+1" are plain keys.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}

	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}

	return n, true
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
