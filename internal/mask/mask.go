// Package mask redacts secret material from source text before it leaves
// the process for a remote analyzer.
//
// Masking never changes the line count. Rules are applied line by line and
// replacements contain no newlines, so findings reported against masked
// text still anchor to the right lines of the original.
package mask

import (
	"regexp"
	"strings"

	"glint/internal/log"
)

// Rule is one redaction pattern. Replacement may reference capture groups
// with ${n} to keep surrounding context intact.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Hit records that a rule fired on a line of the input.
type Hit struct {
	Rule  string
	Line  int
	Count int
}

// Masker applies an ordered rule set to source text.
type Masker struct {
	rules []Rule
}

// New returns a Masker over the given rules. With no rules it uses
// DefaultRules.
func New(rules ...Rule) *Masker {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Masker{rules: rules}
}

// Apply redacts src and reports where rules fired. The returned text has
// exactly the same number of lines as the input.
func (m *Masker) Apply(src string) (string, []Hit) {
	lines := strings.Split(src, "\n")
	var hits []Hit

	for i, line := range lines {
		for _, r := range m.rules {
			count := len(r.Pattern.FindAllStringIndex(line, -1))
			if count == 0 {
				continue
			}
			line = r.Pattern.ReplaceAllString(line, r.Replacement)
			hits = append(hits, Hit{Rule: r.Name, Line: i + 1, Count: count})
		}
		lines[i] = line
	}

	if len(hits) > 0 {
		log.Debug(log.CatMask, "redacted secrets before analysis", "hits", len(hits))
	}
	return strings.Join(lines, "\n"), hits
}

// DefaultRules covers the credential shapes most often pasted into code
// reviews. Order matters: specific token formats run before the generic
// assignment catch-all so hits carry the more useful rule name.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "aws-access-key",
			Pattern:     regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
			Replacement: "[MASKED_AWS_KEY]",
		},
		{
			Name:        "stripe-key",
			Pattern:     regexp.MustCompile(`\bsk_(?:live|test)_[0-9a-zA-Z]{8,}\b`),
			Replacement: "[MASKED_STRIPE_KEY]",
		},
		{
			Name:        "github-token",
			Pattern:     regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`),
			Replacement: "[MASKED_GITHUB_TOKEN]",
		},
		{
			Name:        "slack-token",
			Pattern:     regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`),
			Replacement: "[MASKED_SLACK_TOKEN]",
		},
		{
			Name:        "jwt",
			Pattern:     regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{5,}\b`),
			Replacement: "[MASKED_JWT]",
		},
		{
			Name:        "private-key-header",
			Pattern:     regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`),
			Replacement: "[MASKED_PRIVATE_KEY]",
		},
		{
			Name:        "bearer-token",
			Pattern:     regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._~+/-]{16,}=*`),
			Replacement: "Bearer [MASKED_TOKEN]",
		},
		{
			Name:        "secret-assignment",
			Pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token|passw(?:or)?d|credential)(\s*[:=]\s*)(["'])[^"']{6,}(["'])`),
			Replacement: `${1}${2}${3}[MASKED]${4}`,
		},
	}
}
