package observability

import (
	"context"

	"github.com/rs/zerolog"
)

// ErrorReporter captures errors that must not reach the caller.
type ErrorReporter interface {
	CaptureException(ctx context.Context, err error, extra map[string]interface{})
}

// CorrelationIDFunc extracts the request correlation identifier from a context.
type CorrelationIDFunc func(ctx context.Context) string

// LogReporter reports captured errors as structured log events.
type LogReporter struct {
	logger      zerolog.Logger
	component   string
	correlation CorrelationIDFunc
}

// NewLogReporter builds a reporter writing to the provided logger.
func NewLogReporter(logger zerolog.Logger, component string, correlation CorrelationIDFunc) *LogReporter {
	if component == "" {
		component = "unknown"
	}
	return &LogReporter{
		logger:      logger.With().Str("component", component).Logger(),
		component:   component,
		correlation: correlation,
	}
}

// CaptureException logs err with every extra entry attached.
func (r *LogReporter) CaptureException(ctx context.Context, err error, extra map[string]interface{}) {
	if err == nil {
		return
	}

	event := r.logger.Error().Err(err)
	if r.correlation != nil {
		if id := r.correlation(ctx); id != "" {
			event = event.Str("correlation_id", id)
		}
	}
	for key, value := range extra {
		event = event.Interface(key, value)
	}
	event.Msg("captured exception")

	ReportedErrors().WithLabelValues(r.component).Inc()
}
