package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"glint/internal/finding"
	"glint/internal/log"
	"glint/internal/mask"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = `You are a security code reviewer. Review the submitted source for ` +
	`vulnerabilities: injection, unsafe execution, hardcoded secrets, weak crypto, ` +
	`unsafe deserialization, XSS, path traversal, SSRF.

Respond with a single JSON object and nothing else, in this shape:
{
  "summary": "one or two sentences",
  "findings": [
    {
      "line": 0,
      "risk": "Low" | "Medium" | "High",
      "title": "short name",
      "reason": "why this was flagged",
      "detail": "longer explanation",
      "suggestion": "how to fix it"
    }
  ]
}

"line" is the 1-based line number the issue is anchored to, or 0 when it
applies to the document as a whole. Report nothing when the code is clean:
an empty findings array.`

// OpenAI sends source to a chat model for review. Source is masked before
// it leaves the process.
type OpenAI struct {
	client *openai.Client
	model  string
	masker *mask.Masker

	baseURL string
}

var _ Analyzer = (*OpenAI)(nil)

// OpenAIOption configures the OpenAI analyzer.
type OpenAIOption func(*OpenAI)

// WithModel overrides the chat model.
func WithModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		o.model = model
	}
}

// WithBaseURL points the client at a different endpoint, e.g. a local
// OpenAI-compatible server.
func WithBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) {
		o.baseURL = url
	}
}

// WithMasker replaces the default secret masker.
func WithMasker(m *mask.Masker) OpenAIOption {
	return func(o *OpenAI) {
		o.masker = m
	}
}

// NewOpenAI builds the remote analyzer. The key is required; everything
// else has defaults.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	o := &OpenAI{
		model:  DefaultModel,
		masker: mask.New(),
	}
	for _, opt := range opts {
		opt(o)
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	o.client = openai.NewClientWithConfig(cfg)

	log.Info(log.CatAnalyzer, "openai analyzer ready", "model", o.model)
	return o, nil
}

// Name implements Analyzer.
func (o *OpenAI) Name() string {
	return "openai"
}

// Analyze implements Analyzer. Secrets are masked before the request is
// sent; masking never changes line numbering, so the model's anchors apply
// to the original source unchanged.
func (o *OpenAI) Analyze(ctx context.Context, req Request) (*Report, error) {
	if strings.TrimSpace(req.Source) == "" {
		return nil, ErrEmptySource
	}
	start := time.Now()

	masked, hits := o.masker.Apply(req.Source)
	if len(hits) > 0 {
		log.Info(log.CatAnalyzer, "masked secrets before remote analysis", "hits", len(hits))
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req.Language, masked)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	report, err := parseReview(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	report.ID = uuid.NewString()
	report.Analyzer = o.Name()
	report.Duration = time.Since(start)

	log.Debug(log.CatAnalyzer, "openai review parsed",
		"findings", len(report.Findings), "duration", report.Duration)
	return report, nil
}

func userPrompt(language, source string) string {
	lang := language
	if lang == "" {
		lang = "unknown"
	}
	return fmt.Sprintf("Language hint: %s\n\n```\n%s\n```", lang, source)
}

// reviewPayload is the wire shape the model is instructed to produce.
type reviewPayload struct {
	Summary  string `json:"summary"`
	Findings []struct {
		Line       int    `json:"line"`
		Risk       string `json:"risk"`
		Title      string `json:"title"`
		Reason     string `json:"reason"`
		Detail     string `json:"detail"`
		Suggestion string `json:"suggestion"`
	} `json:"findings"`
}

// parseReview decodes the model's JSON into a report. Models occasionally
// wrap JSON in a markdown fence despite instructions, so fences are
// stripped first. Negative line anchors collapse to 0 (unanchored);
// unknown risks normalize to Medium.
func parseReview(content string) (*Report, error) {
	var payload reviewPayload
	if err := json.Unmarshal([]byte(stripFences(content)), &payload); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	findings := make([]finding.Finding, 0, len(payload.Findings))
	for _, f := range payload.Findings {
		line := f.Line
		if line < 0 {
			line = 0
		}
		risk, ok := finding.ParseRisk(f.Risk)
		if !ok {
			log.Warn(log.CatAnalyzer, "model returned unknown risk", "risk", f.Risk)
		}
		findings = append(findings, finding.Finding{
			ID:         uuid.NewString(),
			Line:       line,
			Risk:       risk,
			Reason:     f.Reason,
			Title:      f.Title,
			Detail:     f.Detail,
			Suggestion: f.Suggestion,
		})
	}

	return &Report{Summary: payload.Summary, Findings: findings}, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return ""
	}
	s = strings.TrimSpace(s[i+1:])
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
