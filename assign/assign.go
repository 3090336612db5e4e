package assign

import (
	"assign-where/coerce"
	"assign-where/entry"
	"assign-where/internal/common"
	"assign-where/kind"
	"assign-where/predicate"

	"go.uber.org/zap"
)

// Merger performs filtered merges with a fixed configuration.
// It is safe for concurrent use unless configured WithReport.
type Merger struct {
	cfg config
}

// New creates a Merger. Without options it behaves like Where.
func New(opts ...Option) *Merger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Merger{cfg: *cfg}
}

var defaultMerger = New()

// Where conditionally copies the own entries of sources onto target, keeping
// only the entries predicate accepts, and returns target.
//
// Sources are applied left to right, the last accepted value for a key wins,
// including over values already on target. Nil sources and nil values are
// skipped. See predicate.Parse for the accepted predicate signatures and the
// coerce package for how non-map sources and targets are treated.
func Where(predicate any, target any, sources ...any) (any, error) {
	return defaultMerger.Assign(predicate, target, sources)
}

// Into is Where for string keyed map targets, returning the map with its static type.
func Into[M ~map[string]V, V any](predicate any, target M, sources ...any) (M, error) {
	if _, err := defaultMerger.Assign(predicate, target, sources); err != nil {
		return nil, err
	}

	return target, nil
}

// Assign is Where with an explicit source list.
//
// Validation of predicate, target and every source happens before target is
// touched. Errors returned by the predicate are passed through unmodified and
// may leave target partially merged; panics are not recovered.
func (m *Merger) Assign(pred any, target any, sources []any) (any, error) {
	fn, err := predicate.Parse(pred)
	if err != nil {
		return nil, &InvalidPredicateError{Value: pred, Type: typeOf(pred), Err: err}
	}

	dst, err := coerce.Target(target, m.cfg.allowed)
	if err != nil {
		return nil, &InvalidTargetError{Value: target, Type: typeOf(target), Err: err}
	}

	log := m.cfg.logger

	if common.IsEmpty(sources) {
		log.Debug("no sources to merge")
		return dst.Value(), nil
	}

	kept := common.Indices(sources, func(src any) bool { return !kind.IsNullish(src) })

	if len(kept) != len(sources) {
		for i, src := range sources {
			if !kind.IsNullish(src) {
				continue
			}
			log.Debug("nil source skipped", zap.Int("source", i))
			if m.cfg.report != nil {
				m.cfg.report.SkipSource(i)
			}
		}
	}

	// enumerate everything first so a bad source fails before any write
	perSource := make([][]entry.Entry, len(kept))
	for n, i := range kept {
		entries, err := coerce.Entries(sources[i], m.cfg.allowed)
		if err != nil {
			return nil, &InvalidSourceError{Index: i, Value: sources[i], Type: typeOf(sources[i]), Err: err}
		}
		perSource[n] = entries
	}

	for n, i := range kept {
		if err := m.apply(fn, dst, i, perSource[n]); err != nil {
			return nil, err
		}
	}

	return dst.Value(), nil
}

func (m *Merger) apply(fn predicate.Func, dst coerce.Container, source int, entries []entry.Entry) error {
	log, rep := m.cfg.logger, m.cfg.report

	for _, e := range entries {
		if kind.IsNullish(e.Value) {
			if rep != nil {
				rep.SkipValue(source, e.Key)
			}
			continue
		}

		ok, err := fn(e)
		if err != nil {
			return err
		}

		if !ok {
			log.Debug("entry rejected", zap.Int("source", source), zap.String("key", e.Key))
			if rep != nil {
				rep.Reject(source, e.Key, e.Value)
			}
			continue
		}

		if err := dst.Set(e.Key, e.Value); err != nil {
			return &AssignError{Source: source, Key: e.Key, Value: e.Value, Err: err}
		}

		if rep != nil {
			rep.Assign(source, e.Key, e.Value)
		}
	}

	log.Debug("source merged", zap.Int("source", source), zap.Int("entries", len(entries)))

	return nil
}
