package microlp

import (
	"github.com/rs/zerolog"

	"github.com/ajasmin/microlp/internal/simplex"
)

// Logger receives the informational events spec.md 6 names: one per
// refactorization, and one per unusual event (stall, infeasibility
// detected, singular basis recovered). It is the same shape as
// internal/simplex.Logger, re-exported here so callers never need to import
// an internal package to implement it -- generalized from
// jjhbw-GoMILP/instrumentation.go's BnbMiddleware pluggable-observer
// interface (see DESIGN.md).
type Logger interface {
	Infof(format string, args ...interface{})
}

// noopLogger is the default sink: it discards every event, mirroring
// jjhbw-GoMILP/instrumentation.go's dummyMiddleware.
type noopLogger struct{}

func (noopLogger) Infof(format string, args ...interface{}) {}

var _ simplex.Logger = noopLogger{}

// zerologLogger adapts a zerolog.Logger to the Logger interface, the
// concrete default a host can opt into via WithLogger(NewZerologLogger(...))
// instead of writing its own adapter, per SPEC_FULL.md's AMBIENT/Logging
// section and itohio-EasyRobot/pkg/logger's zerolog-backed default.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps a zerolog.Logger as a microlp.Logger, logging each
// event at Info level.
func NewZerologLogger(log zerolog.Logger) Logger {
	return zerologLogger{log: log}
}

func (z zerologLogger) Infof(format string, args ...interface{}) {
	z.log.Info().Msgf(format, args...)
}

var _ simplex.Logger = zerologLogger{}
