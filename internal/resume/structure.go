// Package resume structures raw resume text into an ApplicantProfile via
// a single-shot extraction call. Unlike every other generation call site,
// failure here is fatal to the run: there is no per-faculty
// personalization without the applicant profile.
package resume

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/prompts"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

//go:embed applicant_profile.schema.json
var applicantSchema string

// Structure extracts an ApplicantProfile from resume text. The service
// response is validated against the applicant-profile JSON schema before
// unmarshalling; a malformed response triggers exactly one retry with the
// stricter prompt variant, after which the run-fatal ParseError is
// returned.
func Structure(ctx context.Context, client llm.Client, resumeText string) (*types.ApplicantProfile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	profile, firstErr := attempt(ctx, client, "structure-resume", resumeText)
	if firstErr == nil {
		return profile, nil
	}

	// One retry with the stricter prompt, then give up for the whole run.
	profile, retryErr := attempt(ctx, client, "structure-resume-strict", resumeText)
	if retryErr == nil {
		return profile, nil
	}

	return nil, &ParseError{
		Message: "resume could not be structured after strict-prompt retry",
		Cause:   retryErr,
	}
}

func attempt(ctx context.Context, client llm.Client, promptKey, resumeText string) (*types.ApplicantProfile, error) {
	template, err := prompts.Get("resume.json", promptKey)
	if err != nil {
		return nil, &APICallError{Message: "missing prompt template", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}

	return parseResponse(responseText, resumeText)
}

// parseResponse validates the response shape against the embedded schema,
// then unmarshals and normalizes it.
func parseResponse(responseText, resumeText string) (*types.ApplicantProfile, error) {
	responseText = llm.CleanJSONBlock(responseText)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(applicantSchema),
		gojsonschema.NewStringLoader(responseText),
	)
	if err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		var fields []string
		for _, desc := range result.Errors() {
			fields = append(fields, desc.Field()+": "+desc.Description())
		}
		return nil, &ParseError{Message: "response does not match applicant schema: " + strings.Join(fields, "; ")}
	}

	var profile types.ApplicantProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	profile.Normalize()
	if profile.Name == "" && len(profile.Skills) == 0 {
		return nil, &ParseError{Message: "response carries no applicant data"}
	}

	profile.RawResumeText = resumeText
	return &profile, nil
}
