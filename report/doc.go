// Package report records what a filtered merge did with every entry it saw.
//
// Key capabilities:
//   - Assigned entries, with the source they came from
//   - Entries rejected by the predicate
//   - Skipped nil sources and nil values
package report
