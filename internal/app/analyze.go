package app

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"glint/internal/analyzer"
	"glint/internal/importer"
	"glint/internal/log"
	"glint/internal/store"
	"glint/internal/tracing"
)

// analysisTimeout bounds one analysis cycle. Remote analyzers can hang on a
// dead connection; local ones finish in milliseconds either way.
const analysisTimeout = 2 * time.Minute

// analyzeCmd runs one analysis cycle in the background: analyze, persist
// the cycle if its digest is new, and report back. The whole cycle runs
// inside one span so analyzer latency and store writes correlate.
//
// With reuse set, a stored cycle for the same digest is replayed instead
// of invoking the analyzer. Automatic cycles (initial load, watcher
// reload) pass reuse; the explicit re-analyze key does not, so it can
// always demand a fresh model opinion on unchanged text.
func analyzeCmd(az analyzer.Analyzer, repo *store.ReviewRepository, tracer trace.Tracer, document, language string, reuse bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		ctx, span := tracer.Start(ctx, tracing.SpanAnalysisCycle,
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		digest := analyzer.Digest(language + "\x00" + document)
		span.SetAttributes(
			attribute.String(tracing.AttrAnalyzer, az.Name()),
			attribute.String(tracing.AttrLanguage, language),
			attribute.Int(tracing.AttrSourceBytes, len(document)),
			attribute.Int(tracing.AttrSourceLines, strings.Count(document, "\n")+1),
			attribute.String(tracing.AttrDigest, digest),
		)

		if reuse && repo != nil {
			if cycle, err := repo.FindByDigest(digest); err == nil {
				report := reportFromCycle(cycle)
				span.SetAttributes(
					attribute.Int(tracing.AttrFindingCount, len(report.Findings)),
					attribute.String(tracing.AttrMaxRisk, string(report.MaxRisk())),
				)
				span.AddEvent(tracing.EventCycleReplayed,
					trace.WithAttributes(attribute.String(tracing.AttrCycleID, cycle.ID)),
				)
				span.SetStatus(codes.Ok, "")
				log.Info(log.CatStore, "Replaying stored review cycle",
					"id", cycle.ID, "analyzer", cycle.Analyzer)
				return analysisResultMsg{report: report, document: document, language: language}
			} else if !errors.Is(err, store.ErrCycleNotFound) {
				log.ErrorErr(log.CatStore, "Failed to check history for digest", err)
			}
		}

		report, err := az.Analyze(ctx, analyzer.Request{Source: document, Language: language})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return analysisResultMsg{document: document, language: language, err: err}
		}

		span.SetAttributes(
			attribute.Int(tracing.AttrFindingCount, len(report.Findings)),
			attribute.String(tracing.AttrMaxRisk, string(report.MaxRisk())),
		)
		span.SetStatus(codes.Ok, "")

		saveCycle(repo, span, report, document, language, digest)

		return analysisResultMsg{report: report, document: document, language: language}
	}
}

// reportFromCycle rebuilds an analyzer report from its stored form.
// Duration stays zero; the original timing was not persisted.
func reportFromCycle(c *store.Cycle) *analyzer.Report {
	return &analyzer.Report{
		ID:       c.ID,
		Analyzer: c.Analyzer,
		Summary:  c.Summary,
		Findings: c.Findings,
	}
}

// saveCycle persists the report unless the digest already has a stored
// cycle. The cached analyzer replays reports for repeated text, so an
// unconditional insert would fill the history with duplicates. Store
// failures only log; the review on screen is unaffected.
func saveCycle(repo *store.ReviewRepository, span trace.Span, report *analyzer.Report, document, language, digest string) {
	if repo == nil {
		return
	}

	if _, err := repo.FindByDigest(digest); err == nil {
		log.Debug(log.CatStore, "Cycle already stored", "digest", digest[:12])
		return
	} else if !errors.Is(err, store.ErrCycleNotFound) {
		log.ErrorErr(log.CatStore, "Failed to check for existing cycle", err)
		return
	}

	cycle := &store.Cycle{
		Digest:   digest,
		Language: language,
		Analyzer: report.Analyzer,
		Summary:  report.Summary,
		Source:   document,
		Findings: report.Findings,
		MaxRisk:  report.MaxRisk(),
	}
	if err := repo.Save(cycle); err != nil {
		log.ErrorErr(log.CatStore, "Failed to save review cycle", err)
		return
	}

	span.AddEvent(tracing.EventCycleSaved,
		trace.WithAttributes(attribute.String(tracing.AttrCycleID, cycle.ID)),
	)
	log.Info(log.CatStore, "Review cycle saved", "id", cycle.ID, "findings", len(report.Findings))
}

// loadFileCmd reads a source file from disk.
func loadFileCmd(files importer.FileImporter, path string) tea.Cmd {
	return func() tea.Msg {
		snip, err := files.Import(context.Background(), path)
		if err != nil {
			return sourceLoadedMsg{err: err}
		}
		return sourceLoadedMsg{document: snip.Source, name: snip.Name, language: snip.Language}
	}
}

// importSampleCmd loads one of the embedded sample snippets.
func importSampleCmd(samples importer.SampleImporter, name string) tea.Cmd {
	return func() tea.Msg {
		snip, err := samples.Import(context.Background(), name)
		if err != nil {
			return sourceLoadedMsg{err: err}
		}
		return sourceLoadedMsg{document: snip.Source, name: snip.Name, language: snip.Language}
	}
}
