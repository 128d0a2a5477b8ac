package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/finding"
)

func TestLocal_EmptySource(t *testing.T) {
	l := NewLocal()

	_, err := l.Analyze(context.Background(), Request{Source: "   \n\t"})
	require.ErrorIs(t, err, ErrEmptySource)
}

func TestLocal_CleanSource(t *testing.T) {
	l := NewLocal()

	report, err := l.Analyze(context.Background(), Request{Source: "x = a + b\nprint(x)"})
	require.NoError(t, err)

	assert.Empty(t, report.Findings)
	assert.Equal(t, "local", report.Analyzer)
	assert.Equal(t, "No known dangerous patterns detected.", report.Summary)
	assert.Empty(t, string(report.MaxRisk()))
}

func TestLocal_DetectsPatterns(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		expectedRule string
		expectedRisk finding.Risk
	}{
		{
			name:         "eval",
			source:       "result = eval(userInput)",
			expectedRule: "eval()",
			expectedRisk: finding.RiskHigh,
		},
		{
			name:         "child process exec",
			source:       `exec("rm -rf " + dir)`,
			expectedRule: "command execution",
			expectedRisk: finding.RiskHigh,
		},
		{
			name:         "subprocess shell",
			source:       "subprocess.run(cmd, shell=True)",
			expectedRule: "subprocess with shell=True",
			expectedRisk: finding.RiskHigh,
		},
		{
			name:         "innerHTML sink",
			source:       "el.innerHTML = payload",
			expectedRule: "DOM XSS sink",
			expectedRisk: finding.RiskHigh,
		},
		{
			name:         "hardcoded credential",
			source:       `api_key = "sk_live_ABCD1234efgh"`,
			expectedRule: "hardcoded credential",
			expectedRisk: finding.RiskHigh,
		},
		{
			name:         "pickle load",
			source:       "data = pickle.loads(blob)",
			expectedRule: "unsafe deserialization",
			expectedRisk: finding.RiskHigh,
		},
		{
			name:         "sql concatenation",
			source:       `db.query("SELECT * FROM users WHERE id = " + id)`,
			expectedRule: "SQL built by concatenation",
			expectedRisk: finding.RiskMedium,
		},
		{
			name:         "weak hash",
			source:       "digest = hashlib.md5(data).hexdigest()",
			expectedRule: "weak hash algorithm",
			expectedRisk: finding.RiskMedium,
		},
		{
			name:         "plain http url",
			source:       `endpoint = "http://api.example.com/v1"`,
			expectedRule: "unencrypted transport",
			expectedRisk: finding.RiskLow,
		},
	}

	l := NewLocal()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := l.Analyze(context.Background(), Request{Source: tt.source})
			require.NoError(t, err)
			require.NotEmpty(t, report.Findings)

			var hit *finding.Finding
			for i := range report.Findings {
				if strings.Contains(report.Findings[i].Reason, tt.expectedRule) {
					hit = &report.Findings[i]
					break
				}
			}
			require.NotNil(t, hit, "no finding for rule %q in %v", tt.expectedRule, report.Findings)
			assert.Equal(t, 1, hit.Line)
			assert.Equal(t, tt.expectedRisk, hit.Risk)
			assert.True(t, hit.PatternBased())
			assert.NotEmpty(t, hit.ID)
			assert.NotEmpty(t, hit.Title)
			assert.NotEmpty(t, hit.Suggestion)
		})
	}
}

func TestLocal_LineAnchors(t *testing.T) {
	source := strings.Join([]string{
		"import subprocess",
		"",
		"def run(cmd):",
		"    subprocess.call(cmd, shell=True)",
		"",
		"value = eval(raw)",
	}, "\n")

	l := NewLocal()
	report, err := l.Analyze(context.Background(), Request{Source: source})
	require.NoError(t, err)

	byRule := map[string]int{}
	for _, f := range report.Findings {
		byRule[f.Reason] = f.Line
	}
	assert.Equal(t, 4, byRule["Known high-risk pattern: subprocess with shell=True"])
	assert.Equal(t, 6, byRule["Known high-risk pattern: eval()"])
}

func TestLocal_SummaryCountsHighRisk(t *testing.T) {
	source := "eval(a)\nx = hashlib.md5(b)"

	l := NewLocal()
	report, err := l.Analyze(context.Background(), Request{Source: source})
	require.NoError(t, err)

	assert.Equal(t, "Pattern scan matched 2 known issue(s), 1 high risk.", report.Summary)
	assert.Equal(t, finding.RiskHigh, report.MaxRisk())
}

func TestLocal_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLocal()
	_, err := l.Analyze(ctx, Request{Source: "eval(x)"})
	require.ErrorIs(t, err, context.Canceled)
}
