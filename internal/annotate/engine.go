// Package annotate turns a source document plus a findings index into
// per-line render descriptors for the viewer.
//
// The Engine is an immutable snapshot over one (document, profile, index)
// triple. Sessions rebuild it whole on every analysis cycle or document
// edit; nothing is ever patched in place, which is what keeps selection
// staleness from leaking into rendering.
package annotate

import (
	"strings"

	"glint/internal/finding"
	"glint/internal/syntax"
)

// Segmenter splits one source line into classified tokens. The default is
// syntax.SegmentLine; swap in a syntax.CachedSegmenter via WithSegmenter
// when the same document is described repeatedly.
type Segmenter func(line string, p *syntax.Profile) []syntax.Token

// View is the session state the engine reads while describing lines. The
// engine never mutates it. A SelectedID that no current finding carries
// behaves exactly like no selection at all.
type View struct {
	SelectedID string
	Fixed      map[string]bool
}

// LineDescriptor is the full rendering contract for one source line. The
// viewer styles from this alone and never reaches back into findings.
type LineDescriptor struct {
	Line     int
	Tokens   []syntax.Token
	HasIssue bool
	Selected bool
	Fixed    bool
	Risk     finding.Risk
	IssueID  string
}

// Engine is an annotation snapshot over one document.
type Engine struct {
	lines   []string
	profile *syntax.Profile
	index   finding.Index
	segment Segmenter
}

// Option configures the Engine.
type Option func(*Engine)

// WithSegmenter replaces the line segmenter.
func WithSegmenter(s Segmenter) Option {
	return func(e *Engine) {
		e.segment = s
	}
}

// NewEngine builds a snapshot over document. Lines split on \n exactly, so
// a trailing newline yields a final empty line, same as the editors that
// produced the text.
func NewEngine(document string, p *syntax.Profile, idx finding.Index, opts ...Option) *Engine {
	e := &Engine{
		lines:   strings.Split(document, "\n"),
		profile: p,
		index:   idx,
		segment: syntax.SegmentLine,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LineCount returns the number of lines in the snapshot.
func (e *Engine) LineCount() int {
	return len(e.lines)
}

// Line returns the raw text of line n (1-based), or "" when n is out of
// range.
func (e *Engine) Line(n int) string {
	if n < 1 || n > len(e.lines) {
		return ""
	}
	return e.lines[n-1]
}

// Descriptor describes line n under the session state in v. Out-of-range
// lines come back empty with no tokens and no issue.
func (e *Engine) Descriptor(n int, v View) LineDescriptor {
	d := LineDescriptor{Line: n}
	if n < 1 || n > len(e.lines) {
		return d
	}
	d.Tokens = e.segment(e.lines[n-1], e.profile)

	winner, ok := e.index.Get(n)
	if !ok {
		return d
	}
	d.HasIssue = true
	d.IssueID = winner.ID
	d.Risk = winner.Risk
	d.Selected = v.SelectedID != "" && winner.ID == v.SelectedID
	d.Fixed = v.Fixed[winner.ID]
	return d
}

// Descriptors describes every line in order, 1 through LineCount.
func (e *Engine) Descriptors(v View) []LineDescriptor {
	out := make([]LineDescriptor, len(e.lines))
	for i := range e.lines {
		out[i] = e.Descriptor(i+1, v)
	}
	return out
}

// Activate resolves a click on line n to a selection transition: the
// winning finding's ID for an annotated line, or ("", false) for a plain
// line, which sessions treat as clearing the cursor.
func (e *Engine) Activate(n int) (string, bool) {
	f, ok := e.index.Get(n)
	if !ok {
		return "", false
	}
	return f.ID, true
}

// ScrollTarget resolves a finding ID to the line the viewer should bring
// into view. Unknown IDs and unanchored findings return ok false and
// scroll nowhere. Anchors past the end of the document pass through; the
// viewport clamps them.
func (e *Engine) ScrollTarget(issueID string) (int, bool) {
	return e.index.LineOf(issueID)
}
