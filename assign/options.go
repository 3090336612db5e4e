package assign

import (
	"assign-where/options"
	"assign-where/report"

	"go.uber.org/zap"
)

// config holds the Merger configuration.
type config struct {
	allowed options.CategoryEnum
	logger  *zap.Logger
	report  *report.Report
}

// Option configures a Merger.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		allowed: options.CoercionAll,
		logger:  zap.NewNop(),
	}
}

// WithCoercion selects which non-map sources are accepted. options.CoercionNone rejects
// everything but maps.
func WithCoercion(allowed options.CategoryEnum) Option {
	return func(c *config) {
		c.allowed = allowed
	}
}

// WithLogger sets the logger, nil keeps the no-op default.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReport records every outcome into r. A Merger with a report must not be shared between goroutines.
func WithReport(r *report.Report) Option {
	return func(c *config) {
		c.report = r
	}
}
