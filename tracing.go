package endpoint

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/dylanonelson/endpoint"
	requestSpanName     = "endpoint.request"
)

func (e *Endpoint) startSpan(ctx context.Context, req RequestAction, requestID string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, requestSpanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("endpoint.name", e.name),
			attribute.String("endpoint.path", fmt.Sprint(req.Meta.Path)),
			attribute.String("endpoint.request_id", requestID),
			attribute.String("url.full", req.Meta.URL),
		),
	)
}

func endSpan(span trace.Span, ingest IngestAction) {
	if err := ingest.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
