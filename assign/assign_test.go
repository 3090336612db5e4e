package assign_test

import (
	"assign-where/assign"
	"assign-where/coerce"
	"assign-where/entry"
	"assign-where/options"
	"assign-where/predicate"
	"assign-where/report"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	isTrue      = func(string, any) bool { return true }
	isFalse     = func(string, any) bool { return false }
	startsWithA = func(e entry.Entry) bool { return strings.HasPrefix(e.Key, "a") }
	endsWithO   = func(_ string, v any) bool {
		s, ok := v.(string)
		return ok && strings.HasSuffix(s, "o")
	}
)

func spanish() []any {
	return []any{
		map[string]any{"apple": "Manzana"},
		map[string]any{"bannana": "Banano"},
		map[string]any{"crab": "crangrejo"},
	}
}

func TestWhereOutput(t *testing.T) {
	t.Parallel()

	deep := map[string]any{"deep": true}

	tests := []struct {
		name    string
		pred    any
		target  map[string]any
		sources []any
		want    map[string]any
	}{
		{
			name:    "always true",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{map[string]any{"a": "a", "b": 1, "c": deep}},
			want:    map[string]any{"a": "a", "b": 1, "c": deep},
		},
		{
			name:    "always true, multiple sources",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{map[string]any{"a": "a"}, map[string]any{"b": 1}, map[string]any{"c": deep}},
			want:    map[string]any{"a": "a", "b": 1, "c": deep},
		},
		{
			name:    "always false",
			pred:    isFalse,
			target:  map[string]any{"existing": "here"},
			sources: []any{map[string]any{"a": "a"}, map[string]any{"b": 1}},
			want:    map[string]any{"existing": "here"},
		},
		{
			name:    "filters on key",
			pred:    startsWithA,
			target:  map[string]any{"existing": "here"},
			sources: spanish(),
			want:    map[string]any{"existing": "here", "apple": "Manzana"},
		},
		{
			name:    "filters on value",
			pred:    endsWithO,
			target:  map[string]any{"existing": "here"},
			sources: spanish(),
			want:    map[string]any{"existing": "here", "bannana": "Banano", "crab": "crangrejo"},
		},
		{
			name:   "last source wins",
			pred:   isTrue,
			target: map[string]any{"a": "a"},
			sources: []any{
				map[string]any{"a": "a1"}, map[string]any{"a": "a2"},
				map[string]any{"a": "a1"}, map[string]any{"a": "a2"},
			},
			want: map[string]any{"a": "a2"},
		},
		{
			name:    "rejected later value keeps earlier one",
			pred:    func(_ string, v any) bool { return v != "a2" },
			target:  map[string]any{"a": "a"},
			sources: []any{map[string]any{"a": "a1"}, map[string]any{"a": "a2"}},
			want:    map[string]any{"a": "a1"},
		},
		{
			name:    "nil values skipped",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{map[string]any{"x": nil, "y": (*int)(nil), "z": false}},
			want:    map[string]any{"z": false},
		},
		{
			name:    "array source",
			pred:    isTrue,
			target:  map[string]any{"a": "a"},
			sources: []any{[]any{1, 2}},
			want:    map[string]any{"a": "a", "0": 1, "1": 2},
		},
		{
			name:    "nil sources anywhere",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{nil, map[string]any{"a": 1}, (*struct{})(nil), nil},
			want:    map[string]any{"a": 1},
		},
		{
			name:    "string source",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{nil, map[string]any{}, "no"},
			want:    map[string]any{"0": "n", "1": "o"},
		},
		{
			name:    "scalar sources contribute nothing",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{nil, map[string]any{}, 1, true, false},
			want:    map[string]any{},
		},
		{
			name:    "struct source",
			pred:    isTrue,
			target:  map[string]any{},
			sources: []any{struct{ Name string }{Name: "apple"}},
			want:    map[string]any{"Name": "apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := assign.New().Assign(tt.pred, tt.target, tt.sources)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Assign(%s) mismatch (-want +got):\n%s", spew.Sdump(tt.sources), diff)
			}
		})
	}
}

func TestWhereIdentity(t *testing.T) {
	t.Parallel()

	target := map[string]any{}
	got, err := assign.Where(isTrue, target, map[string]any{"a": 1})
	require.NoError(t, err)

	got.(map[string]any)["probe"] = true
	assert.Equal(t, map[string]any{"a": 1, "probe": true}, target, "the very same map must be returned")
}

func TestWhereNoSources(t *testing.T) {
	t.Parallel()

	target := map[string]any{"a": 1}
	got, err := assign.Where(isTrue, target)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, got)

	_, err = assign.Where(nil, target)
	assert.ErrorIs(t, err, assign.ErrType, "validation still happens without sources")
}

func TestWhereStringTarget(t *testing.T) {
	t.Parallel()

	got, err := assign.Where(isTrue, "ab", map[string]any{"c": 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"0": "a", "1": "b", "c": 3}, got)
}

func TestInvalidPredicate(t *testing.T) {
	t.Parallel()

	for _, pred := range []any{nil, "notfn", 42, map[string]any{}, []any{}} {
		target := map[string]any{"existing": "here"}

		_, err := assign.Where(pred, target, map[string]any{"a": 1})

		var perr *assign.InvalidPredicateError
		require.ErrorAs(t, err, &perr, "predicate %#v", pred)
		assert.ErrorIs(t, err, assign.ErrType)
		assert.ErrorIs(t, err, predicate.ErrNotAFunction)
		assert.Equal(t, pred, perr.Value)
		assert.Contains(t, err.Error(), "assignWhere expected predicate to be a function")
		assert.Equal(t, map[string]any{"existing": "here"}, target, "no mutation on failure")
	}
}

func TestInvalidPredicateMessage(t *testing.T) {
	t.Parallel()

	_, err := assign.Where("notfn", map[string]any{})
	assert.EqualError(t, err,
		"assignWhere expected predicate to be a function, instead got notfn (string): provided predicate is not a function")

	_, err = assign.Where(nil, map[string]any{})
	assert.EqualError(t, err,
		"assignWhere expected predicate to be a function, instead got <nil> (nil): provided predicate is not a function")
}

func TestInvalidTarget(t *testing.T) {
	t.Parallel()

	var nilPtr *map[string]any

	for _, target := range []any{nil, nilPtr, 1, true, []any{}} {
		source := map[string]any{"a": 1}
		calls := 0
		pred := func(string, any) bool { calls++; return true }

		_, err := assign.Where(pred, target, source)

		var terr *assign.InvalidTargetError
		require.ErrorAs(t, err, &terr, "target %#v", target)
		assert.ErrorIs(t, err, assign.ErrType)
		assert.Zero(t, calls, "predicate must not run for an invalid target")
	}

	_, err := assign.Where(isTrue, nil, map[string]any{})
	assert.ErrorIs(t, err, coerce.ErrNilTarget)
	assert.Contains(t, err.Error(), "cannot convert nil to object")
}

func TestInvalidSourceBeforeMutation(t *testing.T) {
	t.Parallel()

	target := map[string]any{"existing": "here"}
	strict := assign.New(assign.WithCoercion(options.CoercionNone))

	_, err := strict.Assign(isTrue, target, []any{map[string]any{"a": 1}, 1})

	var serr *assign.InvalidSourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Index)
	assert.ErrorIs(t, err, assign.ErrType)
	assert.ErrorIs(t, err, coerce.ErrNotAllowed)
	assert.Equal(t, map[string]any{"existing": "here"}, target, "first source must not be applied")

	_, err = assign.Where(isTrue, target, func() {})
	assert.ErrorIs(t, err, coerce.ErrNotEnumerable)
}

func TestPredicateErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	target := map[string]any{}

	_, err := assign.Where(func(key string, _ any) (bool, error) {
		if key == "b" {
			return false, boom
		}
		return true, nil
	}, target, map[string]any{"a": 1}, map[string]any{"b": 2}, map[string]any{"c": 3})

	assert.Same(t, boom, err, "predicate errors are returned unmodified")
	assert.NotErrorIs(t, err, assign.ErrType)
	assert.Equal(t, map[string]any{"a": 1}, target, "entries applied before the failure stay")
}

func TestPredicatePanicPropagates(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "predicate exploded", func() {
		_, _ = assign.Where(func(string, any) bool { panic("predicate exploded") },
			map[string]any{}, map[string]any{"a": 1})
	})
}

func TestPredicateCalledPerSource(t *testing.T) {
	t.Parallel()

	var seen []string
	_, err := assign.Where(func(e entry.Entry) bool {
		seen = append(seen, e.String())
		return true
	}, map[string]any{"residual": "x"}, map[string]any{"b": 1, "a": 1}, map[string]any{"a": 2}, []any{"z"})
	require.NoError(t, err)

	// each source is enumerated alone, residual target keys are never offered
	assert.Equal(t, []string{"a=1", "b=1", "a=2", "0=z"}, seen)
}

func TestTypedTarget(t *testing.T) {
	t.Parallel()

	target := map[string]int{"a": 1}
	got, err := assign.Into(isTrue, target, map[string]any{"b": 2.0}, map[string]int{"c": 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, got)

	_, err = assign.Into(isTrue, target, map[string]any{"d": "four"})
	var aerr *assign.AssignError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "d", aerr.Key)
	assert.ErrorIs(t, err, coerce.ErrUnassignable)
}

func TestPointerTarget(t *testing.T) {
	t.Parallel()

	var target map[string]any
	got, err := assign.Where(isTrue, &target, map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Same(t, &target, got)
	assert.Equal(t, map[string]any{"a": 1}, target)
}

func TestWithReport(t *testing.T) {
	t.Parallel()

	var rep report.Report
	m := assign.New(assign.WithReport(&rep))

	_, err := m.Assign(startsWithA, map[string]any{}, []any{
		map[string]any{"apple": "Manzana", "avocado": nil},
		nil,
		map[string]any{"bannana": "Banano"},
	})
	require.NoError(t, err)

	assert.Equal(t, []report.Outcome{{Reason: report.ReasonAssigned, Source: 0, Key: "apple", Value: "Manzana"}}, rep.Assigned)
	assert.Equal(t, []report.Outcome{{Reason: report.ReasonRejected, Source: 2, Key: "bannana", Value: "Banano"}}, rep.Rejected)
	assert.ElementsMatch(t, []report.Outcome{
		{Reason: report.ReasonNilSource, Source: 1},
		{Reason: report.ReasonNilValue, Source: 0, Key: "avocado"},
	}, rep.Skipped)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	m := assign.New(assign.WithLogger(zap.New(core)), assign.WithLogger(nil))

	_, err := m.Assign(isFalse, map[string]any{}, []any{nil, map[string]any{"a": 1}})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("nil source skipped").Len())
	assert.Equal(t, 1, logs.FilterMessage("entry rejected").Len())
	assert.Equal(t, 1, logs.FilterMessage("source merged").Len())
}
