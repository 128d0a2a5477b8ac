package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"glint/internal/finding"
	"glint/internal/log"
)

// patternRule is one entry in the offline scanner's table. Findings it
// produces carry a "Known high-risk pattern" reason, which outranks model
// heuristics when both land on the same line.
type patternRule struct {
	name       string
	re         *regexp.Regexp
	risk       finding.Risk
	title      string
	suggestion string
}

// Local scans source against a fixed table of dangerous patterns. It needs
// no network and no credentials, so it always runs; remote analyzers merge
// on top of it.
type Local struct {
	rules []patternRule
}

var _ Analyzer = (*Local)(nil)

// NewLocal returns the offline pattern analyzer.
func NewLocal() *Local {
	return &Local{rules: defaultPatternRules()}
}

// Name implements Analyzer.
func (l *Local) Name() string {
	return "local"
}

// Analyze implements Analyzer. One finding per rule per matching line.
func (l *Local) Analyze(ctx context.Context, req Request) (*Report, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, ErrEmptySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var findings []finding.Finding
	for i, line := range strings.Split(req.Source, "\n") {
		for _, r := range l.rules {
			if !r.re.MatchString(line) {
				continue
			}
			findings = append(findings, finding.Finding{
				ID:         uuid.NewString(),
				Line:       i + 1,
				Risk:       r.risk,
				Reason:     "Known high-risk pattern: " + r.name,
				Title:      r.title,
				Suggestion: r.suggestion,
			})
		}
	}

	log.Debug(log.CatAnalyzer, "local scan complete", "findings", len(findings))
	return &Report{
		ID:       uuid.NewString(),
		Analyzer: l.Name(),
		Summary:  localSummary(findings),
		Findings: findings,
		Duration: time.Since(start),
	}, nil
}

func localSummary(findings []finding.Finding) string {
	if len(findings) == 0 {
		return "No known dangerous patterns detected."
	}
	high := 0
	for _, f := range findings {
		if f.Risk == finding.RiskHigh {
			high++
		}
	}
	return fmt.Sprintf("Pattern scan matched %d known issue(s), %d high risk.", len(findings), high)
}

// defaultPatternRules covers the classic paste-review offenders across the
// c-like and python families.
func defaultPatternRules() []patternRule {
	return []patternRule{
		{
			name:       "eval()",
			re:         regexp.MustCompile(`\beval\s*\(`),
			risk:       finding.RiskHigh,
			title:      "Dynamic code execution",
			suggestion: "Parse the data instead of executing it; eval runs attacker-controlled input.",
		},
		{
			name:       "command execution",
			re:         regexp.MustCompile(`\b(?:execSync|exec|spawnSync|spawn|system|popen)\s*\(`),
			risk:       finding.RiskHigh,
			title:      "Shell command execution",
			suggestion: "Avoid shelling out with user input; use an allowlisted command with fixed arguments.",
		},
		{
			name:       "subprocess with shell=True",
			re:         regexp.MustCompile(`shell\s*=\s*True`),
			risk:       finding.RiskHigh,
			title:      "Shell injection risk",
			suggestion: "Pass an argument list and drop shell=True.",
		},
		{
			name:       "DOM XSS sink",
			re:         regexp.MustCompile(`\.innerHTML\s*=|\bdocument\.write\s*\(`),
			risk:       finding.RiskHigh,
			title:      "Cross-site scripting sink",
			suggestion: "Use textContent or a sanitizer before writing markup.",
		},
		{
			name:       "hardcoded credential",
			re:         regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret|passw(?:or)?d|token)\b\s*[:=]\s*["'][^"']{4,}["']`),
			risk:       finding.RiskHigh,
			title:      "Hardcoded credential",
			suggestion: "Load secrets from the environment or a secret manager, never source.",
		},
		{
			name:       "unsafe deserialization",
			re:         regexp.MustCompile(`\bpickle\.loads?\s*\(|\byaml\.load\s*\(`),
			risk:       finding.RiskHigh,
			title:      "Unsafe deserialization",
			suggestion: "Use a safe loader (yaml.safe_load, json) for untrusted input.",
		},
		{
			name:       "SQL built by concatenation",
			re:         regexp.MustCompile(`(?i)["'][^"']*\b(?:select|insert|update|delete)\b[^"']*["']\s*\+`),
			risk:       finding.RiskMedium,
			title:      "Possible SQL injection",
			suggestion: "Use parameterized queries instead of string concatenation.",
		},
		{
			name:       "weak hash algorithm",
			re:         regexp.MustCompile(`\bhashlib\.(?:md5|sha1)\b|\bcreateHash\s*\(\s*["'](?:md5|sha1)["']`),
			risk:       finding.RiskMedium,
			title:      "Weak hash algorithm",
			suggestion: "Use SHA-256 or better; MD5 and SHA-1 are broken for security uses.",
		},
		{
			name:       "unencrypted transport",
			re:         regexp.MustCompile(`["']http://[^"']+["']`),
			risk:       finding.RiskLow,
			title:      "Plain HTTP URL",
			suggestion: "Prefer https:// unless the endpoint is local.",
		},
	}
}
