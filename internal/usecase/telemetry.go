package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/i2y/oasmint/internal/domain"
)

const instrumentationName = "github.com/i2y/oasmint/internal/usecase"

// telemetry bundles the tracer and counters shared by the use cases.
type telemetry struct {
	tracer     trace.Tracer
	operations metric.Int64Counter
	files      metric.Int64Counter
}

func newTelemetry(logger *slog.Logger) telemetry {
	meter := otel.Meter(instrumentationName)

	operations, err := meter.Int64Counter("oasmint.operations",
		metric.WithDescription("Operations processed, by terminal status."))
	if err != nil {
		logger.Warn("Failed to create operations counter", slog.Any("error", err))
	}
	files, err := meter.Int64Counter("oasmint.files",
		metric.WithDescription("OpenAPI documents processed, by outcome."))
	if err != nil {
		logger.Warn("Failed to create files counter", slog.Any("error", err))
	}

	return telemetry{
		tracer:     otel.Tracer(instrumentationName),
		operations: operations,
		files:      files,
	}
}

func (t telemetry) countOperation(ctx context.Context, status domain.OperationStatus) {
	if t.operations == nil {
		return
	}
	t.operations.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}

func (t telemetry) countFile(ctx context.Context, command string, ok bool) {
	if t.files == nil {
		return
	}
	t.files.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.Bool("ok", ok),
	))
}

// endSpan marks span as failed when err is non-nil and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
