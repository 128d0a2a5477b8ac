package testutil

import "glint/internal/finding"

// FlaggedCycle configures a cycle with one high-risk eval finding, the
// shape most history tests want.
func FlaggedCycle() []CycleOption {
	return []CycleOption{
		WithSource("result = eval(user_input)"),
		WithSummary("Pattern scan matched 1 known issue(s), 1 high risk."),
		WithFinding(finding.Finding{
			ID:         "f-eval",
			Line:       1,
			Risk:       finding.RiskHigh,
			Reason:     "Known high-risk pattern: eval()",
			Title:      "Dynamic code execution",
			Suggestion: "Parse the data instead of executing it.",
		}),
	}
}

// CleanCycle configures a cycle that found nothing.
func CleanCycle() []CycleOption {
	return []CycleOption{
		WithSource("print('hello')"),
		WithSummary("No known dangerous patterns detected."),
	}
}
