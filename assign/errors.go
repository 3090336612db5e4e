package assign

import (
	"errors"
	"fmt"
)

// ErrType is wrapped by every validation failure, errors.Is(err, ErrType) tells them apart from predicate failures.
var ErrType = errors.New("type error")

// InvalidPredicateError is returned when the predicate argument cannot be called.
type InvalidPredicateError struct {
	Value any
	Type  string
	Err   error
}

func (e *InvalidPredicateError) Error() string {
	return fmt.Sprintf("assignWhere expected predicate to be a function, instead got %v (%s): %v", e.Value, e.Type, e.Err)
}

func (e *InvalidPredicateError) Unwrap() []error { return []error{ErrType, e.Err} }

// InvalidTargetError is returned when the target cannot receive entries.
type InvalidTargetError struct {
	Value any
	Type  string
	Err   error
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("assignWhere expected target to be enumerable, instead got %v (%s): %v", e.Value, e.Type, e.Err)
}

func (e *InvalidTargetError) Unwrap() []error { return []error{ErrType, e.Err} }

// InvalidSourceError is returned for a source that cannot be enumerated, or
// whose coercion is disabled. Earlier sources may already have been applied.
type InvalidSourceError struct {
	Index int
	Value any
	Type  string
	Err   error
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("assignWhere expected source %d to be enumerable, instead got %v (%s): %v", e.Index, e.Value, e.Type, e.Err)
}

func (e *InvalidSourceError) Unwrap() []error { return []error{ErrType, e.Err} }

// AssignError is returned when an accepted entry cannot be stored in a typed target.
type AssignError struct {
	Source int
	Key    string
	Value  any
	Err    error
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("assignWhere cannot assign %q from source %d: %v", e.Key, e.Source, e.Err)
}

func (e *AssignError) Unwrap() error { return e.Err }

// typeOf names the observed type the way the messages report it.
func typeOf(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
