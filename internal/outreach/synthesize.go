// Package outreach synthesizes one personalized message body per faculty
// record. Generation failures never fail the record: after one retry the
// deterministic template body is used instead, so every faculty stub
// yields some output.
package outreach

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/prompts"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// draftTemperature gives outreach drafts natural variation between
// faculty while staying professional.
const draftTemperature = 0.7

// Kind describes how a message body was produced.
type Kind string

// Body kinds, best to worst.
const (
	// KindPersonalized means the body was generated against the faculty
	// member's research focus.
	KindPersonalized Kind = "personalized"
	// KindGenericAppeal means the body was generated without a research
	// focus (confidence was unavailable).
	KindGenericAppeal Kind = "generic_appeal"
	// KindTemplate means generation failed and the deterministic template
	// was used.
	KindTemplate Kind = "template"
)

// Result is a synthesized message body plus how it was produced.
type Result struct {
	Body string
	Kind Kind
}

// Synthesizer drafts outreach messages.
type Synthesizer struct {
	client llm.Client
	log    *zap.Logger
}

// NewSynthesizer builds a synthesizer. log may be nil.
func NewSynthesizer(client llm.Client, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{client: client, log: log}
}

// Synthesize produces the message body for one faculty record. The prompt
// includes the research focus when it is usable and falls back to a
// generic appeal otherwise. The service call is retried once; on repeated
// failure the deterministic template body is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, focus types.ResearchFocus, applicant *types.ApplicantProfile) Result {
	promptKey := "outreach-personalized"
	kind := KindPersonalized
	if !focus.Usable() {
		promptKey = "outreach-generic-appeal"
		kind = KindGenericAppeal
	}

	prompt := buildPrompt(promptKey, focus, applicant)

	body, err := s.generate(ctx, prompt)
	if err != nil || body == "" {
		body, err = s.generate(ctx, prompt)
	}
	if err != nil || body == "" {
		s.log.Warn("synthesis fell back to template body",
			zap.String("institution", focus.Stub.InstitutionName),
			zap.String("faculty", focus.Stub.Name),
			zap.Error(&SynthesisError{Faculty: focus.Stub.Name, Cause: err}),
		)
		return Result{Body: TemplateBody(focus.Stub, applicant), Kind: KindTemplate}
	}

	return Result{Body: body, Kind: kind}
}

func (s *Synthesizer) generate(ctx context.Context, prompt string) (string, error) {
	out, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard, draftTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func buildPrompt(promptKey string, focus types.ResearchFocus, applicant *types.ApplicantProfile) string {
	template := prompts.MustGet("outreach.json", promptKey)
	return prompts.Format(template, map[string]string{
		"ApplicantName":      applicant.Name,
		"Institution":        applicant.Institution,
		"Major":              applicant.Major,
		"Skills":             applicant.SkillsLine(3),
		"FacultyName":        focus.Stub.Name,
		"FacultyInstitution": focus.Stub.InstitutionName,
		"ResearchFocus":      focus.Summary,
	})
}
