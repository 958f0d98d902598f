// Package summarize derives a normalized research-focus statement from
// raw profile text via the text-generation service. The service is
// unreliable; every failure path here lands on a well-typed ResearchFocus
// with confidence unavailable rather than an error the caller must handle.
package summarize

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/prompts"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// summaryTemperature allows some variance; summaries are prose, not data.
const summaryTemperature = 0.4

// Summarizer produces research-focus statements.
type Summarizer struct {
	client      llm.Client
	minInputLen int // below this, confidence degrades
	maxLen      int // summaries truncate to this many chars
	log         *zap.Logger
}

// NewSummarizer builds a summarizer. log may be nil.
func NewSummarizer(client llm.Client, minInputLen, maxLen int, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Summarizer{
		client:      client,
		minInputLen: minInputLen,
		maxLen:      maxLen,
		log:         log,
	}
}

// Summarize turns a faculty profile into a ResearchFocus. Empty profile
// text short-circuits to unavailable without a service call. A failed or
// empty first response is retried once with the fallback prompt variant;
// if that also fails the focus is unavailable. Thin input degrades
// confidence even when a summary came back.
func (s *Summarizer) Summarize(ctx context.Context, p types.FacultyProfile) types.ResearchFocus {
	raw := strings.TrimSpace(p.RawText)
	if raw == "" {
		return types.ResearchFocus{Stub: p.Stub, Confidence: types.ConfidenceUnavailable}
	}

	summary, err := s.generate(ctx, "research-focus", raw)
	if err != nil || summary == "" {
		s.log.Debug("primary summarization failed, retrying with fallback prompt",
			zap.String("faculty", p.Stub.Name),
			zap.Error(err),
		)
		summary, err = s.generate(ctx, "research-focus-fallback", raw)
	}
	if err != nil || summary == "" {
		s.log.Warn("summarization unavailable",
			zap.String("institution", p.Stub.InstitutionName),
			zap.String("faculty", p.Stub.Name),
			zap.Error(&SummarizationError{Faculty: p.Stub.Name, Cause: err}),
		)
		return types.ResearchFocus{Stub: p.Stub, Confidence: types.ConfidenceUnavailable}
	}

	summary = llm.TruncateAtWordBoundary(summary, s.maxLen)

	confidence := types.ConfidenceOK
	if len(raw) < s.minInputLen {
		confidence = types.ConfidenceDegraded
	}

	return types.ResearchFocus{
		Stub:       p.Stub,
		Summary:    summary,
		Confidence: confidence,
	}
}

func (s *Summarizer) generate(ctx context.Context, promptKey, profileText string) (string, error) {
	template, err := prompts.Get("summarize.json", promptKey)
	if err != nil {
		return "", err
	}
	prompt := prompts.Format(template, map[string]string{
		"ProfileText": profileText,
	})

	out, err := s.client.GenerateContent(ctx, prompt, llm.TierLite, summaryTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
