// Package filter builds merge predicates from command line patterns.
package filter

import (
	"assign-where/entry"
	"assign-where/internal/common"
	"assign-where/kind"
	"assign-where/predicate"
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// Options lists the patterns an entry is matched against. Empty lists match everything.
type Options struct {
	// Keys are glob patterns, an entry is kept when its key matches any of them.
	Keys []string
	// ExcludeKeys are glob patterns, an entry is dropped when its key matches any of them.
	ExcludeKeys []string
	// Values are regular expressions matched against the text of scalar values.
	Values []string
}

// Build compiles opts into a predicate.
func Build(opts Options) (predicate.Func, error) {
	var parts []predicate.Func

	keys, err := globs(opts.Keys)
	if err != nil {
		return nil, err
	}
	if keys != nil {
		parts = append(parts, keys)
	}

	excluded, err := globs(opts.ExcludeKeys)
	if err != nil {
		return nil, err
	}
	if excluded != nil {
		parts = append(parts, predicate.Not(excluded))
	}

	values, err := regexps(opts.Values)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		parts = append(parts, matchValue(values))
	}

	if len(parts) == 0 {
		return predicate.Always, nil
	}

	return predicate.And(parts...), nil
}

func nonEmpty(s string) bool { return s != "" }

// globs returns a predicate matching keys against any of patterns, nil for no patterns.
func globs(patterns []string) (predicate.Func, error) {
	patterns = common.Filter(patterns, nonEmpty)
	if common.IsEmpty(patterns) {
		return nil, nil
	}

	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid key pattern %q", p)
		}
	}

	fns := make([]predicate.Func, 0, len(patterns))
	for _, p := range patterns {
		fns = append(fns, func(e entry.Entry) (bool, error) {
			return doublestar.Match(p, e.Key)
		})
	}

	return predicate.Or(fns...), nil
}

func regexps(exprs []string) ([]*regexp.Regexp, error) {
	exprs = common.Filter(exprs, nonEmpty)

	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid value pattern %q: %w", expr, err)
		}
		out = append(out, re)
	}

	return out, nil
}

func matchValue(res []*regexp.Regexp) predicate.Func {
	return func(e entry.Entry) (bool, error) {
		switch kind.Of(e.Value) {
		case kind.KindString, kind.KindNumber, kind.KindBool:
		default:
			return false, nil
		}

		text := fmt.Sprint(e.Value)
		for _, re := range res {
			if re.MatchString(text) {
				return true, nil
			}
		}

		return false, nil
	}
}
