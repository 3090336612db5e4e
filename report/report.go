package report

import (
	"fmt"
	"strings"
)

// Report holds the outcomes of one or more merges. Not safe for concurrent use.
type Report struct {
	Assigned []Outcome
	Rejected []Outcome
	Skipped  []Outcome
}

// Outcome is the fate of a single entry or source.
type Outcome struct {
	// Reason the outcome was recorded.
	Reason Reason
	// Source is the position of the source in the argument list.
	Source int
	// Key of the entry, empty when the whole source was skipped.
	Key string
	// Value of the entry, nil when the whole source was skipped.
	Value any
}

// Reason tells why an outcome was recorded.
type Reason int

const (
	ReasonAssigned Reason = iota
	ReasonRejected
	ReasonNilSource
	ReasonNilValue
)

// String returns a human-readable reason name.
func (r Reason) String() string {
	switch r {
	case ReasonAssigned:
		return "assigned"
	case ReasonRejected:
		return "rejected"
	case ReasonNilSource:
		return "nil source"
	case ReasonNilValue:
		return "nil value"
	default:
		return "unknown"
	}
}

// Assign records an entry written onto the target.
func (r *Report) Assign(source int, key string, value any) {
	r.Assigned = append(r.Assigned, Outcome{Reason: ReasonAssigned, Source: source, Key: key, Value: value})
}

// Reject records an entry the predicate turned down.
func (r *Report) Reject(source int, key string, value any) {
	r.Rejected = append(r.Rejected, Outcome{Reason: ReasonRejected, Source: source, Key: key, Value: value})
}

// SkipSource records a nil source.
func (r *Report) SkipSource(source int) {
	r.Skipped = append(r.Skipped, Outcome{Reason: ReasonNilSource, Source: source})
}

// SkipValue records an entry dropped for its nil value.
func (r *Report) SkipValue(source int, key string) {
	r.Skipped = append(r.Skipped, Outcome{Reason: ReasonNilValue, Source: source, Key: key})
}

// Merge appends the outcomes of other.
func (r *Report) Merge(other Report) {
	r.Assigned = append(r.Assigned, other.Assigned...)
	r.Rejected = append(r.Rejected, other.Rejected...)
	r.Skipped = append(r.Skipped, other.Skipped...)
}

// Reset drops every recorded outcome, keeping the allocated storage.
func (r *Report) Reset() {
	r.Assigned = r.Assigned[:0]
	r.Rejected = r.Rejected[:0]
	r.Skipped = r.Skipped[:0]
}

// Keys returns the keys that ended up on the target, last write wins, in assignment order.
func (r *Report) Keys() []string {
	seen := make(map[string]struct{}, len(r.Assigned))
	var keys []string
	for _, o := range r.Assigned {
		if _, ok := seen[o.Key]; ok {
			continue
		}
		seen[o.Key] = struct{}{}
		keys = append(keys, o.Key)
	}
	return keys
}

// String returns a formatted outcome.
func (o Outcome) String() string {
	if o.Key == "" && o.Reason == ReasonNilSource {
		return fmt.Sprintf("[source %d] %s", o.Source, o.Reason)
	}

	return fmt.Sprintf("[source %d] %s: %s", o.Source, o.Key, o.Reason)
}

// String renders every outcome, one per line, grouped by kind.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "assigned %d, rejected %d, skipped %d\n", len(r.Assigned), len(r.Rejected), len(r.Skipped))

	for _, group := range [][]Outcome{r.Assigned, r.Rejected, r.Skipped} {
		for _, o := range group {
			b.WriteString("  ")
			b.WriteString(o.String())
			b.WriteByte('\n')
		}
	}

	return b.String()
}
