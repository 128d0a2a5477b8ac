package analyzer

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Mock is a scripted Analyzer for tests and demo runs. Behavior is
// configured through function fields; calls are counted.
type Mock struct {
	// AnalyzeFunc is called when Analyze is invoked. If nil, an empty
	// clean report is returned.
	AnalyzeFunc func(ctx context.Context, req Request) (*Report, error)

	mu    sync.Mutex
	calls int
}

var _ Analyzer = (*Mock)(nil)

// NewMock creates a mock that reports clean source by default.
func NewMock() *Mock {
	return &Mock{}
}

// Name implements Analyzer.
func (m *Mock) Name() string {
	return "mock"
}

// Analyze implements Analyzer, delegating to AnalyzeFunc when set.
func (m *Mock) Analyze(ctx context.Context, req Request) (*Report, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return &Report{
		ID:       uuid.NewString(),
		Analyzer: m.Name(),
		Summary:  "No issues found.",
	}, nil
}

// Calls returns how many times Analyze was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Reset clears the call counter.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
}
