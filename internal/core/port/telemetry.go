package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans, metrics and business events without
// knowing the backend.
type Telemetry interface {
	StartRepositorySpan(ctx context.Context, operation string, entity string) (context.Context, trace.Span)
	StartServiceSpan(ctx context.Context, service string, operation string) (context.Context, trace.Span)

	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)
	RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error)
	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string)
}
