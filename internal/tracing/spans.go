package tracing

// Span attribute keys for analysis pipeline tracing.
// Source text itself never appears in span attributes, only its shape.
const (
	// Analyzer attributes
	AttrAnalyzer    = "analyzer.name"
	AttrLanguage    = "source.language"
	AttrSourceBytes = "source.bytes"
	AttrSourceLines = "source.lines"
	AttrDigest      = "source.digest"

	// Finding attributes
	AttrFindingCount = "findings.count"
	AttrMaxRisk      = "findings.max_risk"

	// Review cycle attributes
	AttrCycleID = "cycle.id"
)

// Span names for pipeline stages.
const (
	SpanAnalysisCycle = "analysis.cycle"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixAnalyzer = "analyzer."
	SpanPrefixRepo     = "repo."
)

// Event names for span events.
const (
	EventCycleSaved    = "cycle.saved"
	EventCycleReplayed = "cycle.replayed"
)
