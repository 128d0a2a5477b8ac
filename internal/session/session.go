// Package session owns the mutable review state around the annotation
// engine: the current document, the findings snapshot, the selection
// cursor, the fixed-issue set, and the undo history.
//
// The engine itself is immutable per cycle; everything that changes
// between renders lives here. State is guarded so analyzer goroutines and
// the UI loop can share one session.
package session

import (
	"sync"

	"glint/internal/annotate"
	"glint/internal/finding"
)

// DefaultHistoryLimit bounds the undo stack. Oldest snapshots fall off
// first.
const DefaultHistoryLimit = 50

// Session is the state owner for one review. The zero value is not usable;
// call New.
type Session struct {
	mu sync.RWMutex

	document string
	findings []finding.Finding
	index    finding.Index

	selectedID string
	fixed      map[string]bool

	history      []string
	historyLimit int
	loaded       bool
}

// New returns an empty session.
func New() *Session {
	return &Session{
		fixed:        make(map[string]bool),
		historyLimit: DefaultHistoryLimit,
	}
}

// BeginCycle replaces the whole snapshot: document, findings, and the line
// index derived from them. The selection cursor and fixed set reset
// together; per-finding state never survives into a new findings snapshot.
// The previous document is pushed onto the undo history when the document
// actually changed.
func (s *Session) BeginCycle(document string, findings []finding.Finding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && document != s.document {
		s.push(s.document)
	}
	s.loaded = true

	s.document = document
	s.findings = append([]finding.Finding(nil), findings...)
	s.index = finding.BuildIndex(findings)
	s.selectedID = ""
	s.fixed = make(map[string]bool)
}

// push appends doc to the history, dropping the oldest entry past the
// limit.
func (s *Session) push(doc string) {
	s.history = append(s.history, doc)
	if len(s.history) > s.historyLimit {
		s.history = s.history[1:]
	}
}

// Undo restores the most recent previous document. The findings snapshot,
// cursor, and fixed set are cleared; annotations for the restored text
// return on its next analysis cycle. Returns ok false when there is
// nothing to undo.
func (s *Session) Undo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return "", false
	}
	doc := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	s.document = doc
	s.findings = nil
	s.index = finding.BuildIndex(nil)
	s.selectedID = ""
	s.fixed = make(map[string]bool)
	return doc, true
}

// CanUndo reports whether the history holds a previous document.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history) > 0
}

// Select moves the cursor to a finding ID. The engine treats an ID absent
// from the current snapshot as no selection, so storing one is harmless.
func (s *Session) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// ClearSelection drops the cursor.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// Selected returns the cursor's finding ID, "" when nothing is selected.
func (s *Session) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// MarkFixed records a finding as remediated for this cycle.
func (s *Session) MarkFixed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixed[id] = true
}

// Unfix clears a finding's remediated mark.
func (s *Session) Unfix(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fixed, id)
}

// ToggleFixed flips a finding's remediated mark and returns the new state.
func (s *Session) ToggleFixed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fixed[id] {
		delete(s.fixed, id)
		return false
	}
	s.fixed[id] = true
	return true
}

// Fixed returns a copy of the remediated set.
func (s *Session) Fixed() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.fixed))
	for id := range s.fixed {
		out[id] = true
	}
	return out
}

// Document returns the current source text.
func (s *Session) Document() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document
}

// Findings returns a copy of the current findings snapshot in analyzer
// order.
func (s *Session) Findings() []finding.Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]finding.Finding(nil), s.findings...)
}

// Index returns the line index built from the current snapshot.
func (s *Session) Index() finding.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// View bundles the read-only state the engine needs for one render pass.
func (s *Session) View() annotate.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fixed := make(map[string]bool, len(s.fixed))
	for id := range s.fixed {
		fixed[id] = true
	}
	return annotate.View{SelectedID: s.selectedID, Fixed: fixed}
}
