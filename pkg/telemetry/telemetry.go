// Package telemetry wraps generation runs in OpenTelemetry spans, so a
// trace backend can show step counts, rollback counts, and the terminal
// outcome for a single generate call alongside whatever spans the calling
// service already emits.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/eng618/wfc-loom/pkg/wfc"

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartGeneration opens a span named "wfc.generate" tagged with the grid
// dimensions. Callers must call the returned func exactly once, typically
// deferred, passing the outcome string and any error.
func StartGeneration(ctx context.Context, height, width int) (context.Context, func(outcome string, err error)) {
	ctx, span := tracer().Start(ctx, "wfc.generate",
		trace.WithAttributes(
			attribute.Int("wfc.height", height),
			attribute.Int("wfc.width", width),
		),
	)

	end := func(outcome string, err error) {
		span.SetAttributes(attribute.String("wfc.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	return ctx, end
}

// RecordStep adds an event to the span in ctx describing a single step,
// cheap enough to call on every Step without sampling concerns for small
// grids; callers generating at scale should gate this behind a verbose
// flag.
func RecordStep(ctx context.Context, step int, action, outcome string, point string) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("wfc.step", trace.WithAttributes(
		attribute.Int("wfc.step.number", step),
		attribute.String("wfc.step.action", action),
		attribute.String("wfc.step.outcome", outcome),
		attribute.String("wfc.step.point", point),
	))
}
