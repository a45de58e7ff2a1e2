package monitor

import (
	"log/slog"
	"time"

	"github.com/dr-yst/org-x/internal/parser"
)

// Option configures a Monitor at construction time.
type Option func(*Monitor)

// WithDebounce overrides the event debounce window.
func WithDebounce(d time.Duration) Option {
	return func(m *Monitor) { m.debounce = d }
}

// WithLogger sets the monitor's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) { m.logger = logger }
}

// WithParseOptions sets the parse options applied to every file the
// monitor parses. They are captured here once; event handlers never
// consult configuration at dispatch time.
func WithParseOptions(opts ...parser.Option) Option {
	return func(m *Monitor) { m.parseOpts = opts }
}
