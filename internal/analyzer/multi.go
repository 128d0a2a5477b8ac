package analyzer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"glint/internal/finding"
	"glint/internal/log"
)

// Multi runs several analyzers over the same request and merges their
// findings into one report. A failing member degrades the report instead
// of sinking it; the run only errors when every member fails.
//
// Findings keep member order, so when the local pattern scanner and a
// model both flag the same line, the index tie-break sees both and the
// pattern-based finding wins.
type Multi struct {
	analyzers []Analyzer
}

var _ Analyzer = (*Multi)(nil)

// NewMulti composes analyzers in the order they should run.
func NewMulti(analyzers ...Analyzer) (*Multi, error) {
	if len(analyzers) == 0 {
		return nil, ErrNoAnalyzers
	}
	return &Multi{analyzers: analyzers}, nil
}

// Name implements Analyzer, joining the member names.
func (m *Multi) Name() string {
	names := make([]string, len(m.analyzers))
	for i, a := range m.analyzers {
		names[i] = a.Name()
	}
	return strings.Join(names, "+")
}

// Analyze implements Analyzer.
func (m *Multi) Analyze(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	var findings []finding.Finding
	var summaries []string
	var errs []error
	succeeded := 0

	for _, a := range m.analyzers {
		report, err := a.Analyze(ctx, req)
		if err != nil {
			log.ErrorErr(log.CatAnalyzer, "analyzer failed, continuing", err, "analyzer", a.Name())
			errs = append(errs, err)
			continue
		}
		succeeded++
		findings = append(findings, report.Findings...)
		if report.Summary != "" {
			summaries = append(summaries, report.Summary)
		}
	}

	if succeeded == 0 {
		return nil, errors.Join(errs...)
	}

	return &Report{
		ID:       uuid.NewString(),
		Analyzer: m.Name(),
		Summary:  strings.Join(summaries, " "),
		Findings: findings,
		Duration: time.Since(start),
	}, nil
}
