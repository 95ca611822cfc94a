package fixture

import "go.uber.org/zap"

// Option configures a Fixture at construction.
type Option func(*Fixture)

// WithLogger routes the fixture's debug events (registrations, freezes,
// clears) to logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fixture) {
		if logger != nil {
			f.log = logger
		}
	}
}
