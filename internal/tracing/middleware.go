package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"glint/internal/analyzer"
)

// NewAnalyzer wraps an analyzer so every Analyze call runs inside a span
// named "analyzer.<name>". The span records the request shape and the
// report outcome; the source text itself is never attached.
//
// If tracer is nil, the inner analyzer is returned unchanged so callers
// pay nothing when tracing is disabled.
func NewAnalyzer(inner analyzer.Analyzer, tracer trace.Tracer) analyzer.Analyzer {
	if tracer == nil {
		return inner
	}
	return &tracedAnalyzer{inner: inner, tracer: tracer}
}

type tracedAnalyzer struct {
	inner  analyzer.Analyzer
	tracer trace.Tracer
}

var _ analyzer.Analyzer = (*tracedAnalyzer)(nil)

// Name implements analyzer.Analyzer.
func (t *tracedAnalyzer) Name() string {
	return t.inner.Name()
}

// Analyze implements analyzer.Analyzer.
func (t *tracedAnalyzer) Analyze(ctx context.Context, req analyzer.Request) (*analyzer.Report, error) {
	ctx, span := t.tracer.Start(ctx, SpanPrefixAnalyzer+t.inner.Name(),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	span.SetAttributes(
		attribute.String(AttrAnalyzer, t.inner.Name()),
		attribute.String(AttrLanguage, req.Language),
		attribute.Int(AttrSourceBytes, len(req.Source)),
		attribute.Int(AttrSourceLines, strings.Count(req.Source, "\n")+1),
	)

	report, err := t.inner.Analyze(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int(AttrFindingCount, len(report.Findings)),
		attribute.String(AttrMaxRisk, string(report.MaxRisk())),
	)
	span.SetStatus(codes.Ok, "")
	return report, nil
}
