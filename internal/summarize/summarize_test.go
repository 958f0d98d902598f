package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// scriptedClient returns canned responses in order; an empty reply string
// with a non-nil err simulates a service failure.
type scriptedClient struct {
	replies []string
	errs    []error
	prompts []string
}

func (c *scriptedClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier, _ float32) (string, error) {
	i := len(c.prompts)
	c.prompts = append(c.prompts, prompt)
	if i >= len(c.replies) {
		return "", errors.New("unexpected call")
	}
	return c.replies[i], c.errs[i]
}

func (c *scriptedClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return c.GenerateContent(context.Background(), prompt, llm.TierStandard, 0)
}

func (c *scriptedClient) Close() error { return nil }

func profileWith(text string) types.FacultyProfile {
	return types.FacultyProfile{
		Stub: types.FacultyStub{
			InstitutionName: "Test University",
			Name:            "Jane Smith",
			ProfileRef:      "https://cs.example.edu/people/jane-smith",
		},
		RawText: text,
	}
}

func TestSummarizeEmptyTextSkipsServiceCall(t *testing.T) {
	client := &scriptedClient{}
	s := NewSummarizer(client, 200, 400, nil)

	focus := s.Summarize(context.Background(), profileWith("   \n  "))

	assert.Equal(t, types.ConfidenceUnavailable, focus.Confidence)
	assert.Empty(t, focus.Summary)
	assert.Empty(t, client.prompts, "no service call expected for empty input")
}

func TestSummarizeSuccess(t *testing.T) {
	longText := strings.Repeat("Distributed systems research. ", 20)
	client := &scriptedClient{
		replies: []string{"Works on distributed consensus protocols."},
		errs:    []error{nil},
	}
	s := NewSummarizer(client, 200, 400, nil)

	focus := s.Summarize(context.Background(), profileWith(longText))

	assert.Equal(t, types.ConfidenceOK, focus.Confidence)
	assert.Equal(t, "Works on distributed consensus protocols.", focus.Summary)
	assert.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Distributed systems research.")
}

func TestSummarizeRetriesWithFallbackPrompt(t *testing.T) {
	longText := strings.Repeat("Compilers and program analysis. ", 20)
	client := &scriptedClient{
		replies: []string{"", "Studies compilers and static analysis."},
		errs:    []error{errors.New("rate limited"), nil},
	}
	s := NewSummarizer(client, 200, 400, nil)

	focus := s.Summarize(context.Background(), profileWith(longText))

	assert.Equal(t, types.ConfidenceOK, focus.Confidence)
	assert.Equal(t, "Studies compilers and static analysis.", focus.Summary)
	require.Len(t, client.prompts, 2)
	assert.NotEqual(t, client.prompts[0], client.prompts[1])
}

func TestSummarizeBothAttemptsFailIsUnavailable(t *testing.T) {
	longText := strings.Repeat("Robotics. ", 40)
	client := &scriptedClient{
		replies: []string{"", ""},
		errs:    []error{errors.New("timeout"), errors.New("timeout")},
	}
	s := NewSummarizer(client, 200, 400, nil)

	focus := s.Summarize(context.Background(), profileWith(longText))

	assert.Equal(t, types.ConfidenceUnavailable, focus.Confidence)
	assert.Empty(t, focus.Summary)
	assert.Len(t, client.prompts, 2)
}

func TestSummarizeThinInputDegradesConfidence(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"Works on theory."},
		errs:    []error{nil},
	}
	s := NewSummarizer(client, 200, 400, nil)

	focus := s.Summarize(context.Background(), profileWith("Short bio."))

	assert.Equal(t, types.ConfidenceDegraded, focus.Confidence)
	assert.Equal(t, "Works on theory.", focus.Summary)
}

func TestSummarizeTruncatesLongSummaries(t *testing.T) {
	longText := strings.Repeat("Machine learning. ", 30)
	longSummary := strings.Repeat("word ", 200)
	client := &scriptedClient{
		replies: []string{longSummary},
		errs:    []error{nil},
	}
	s := NewSummarizer(client, 200, 100, nil)

	focus := s.Summarize(context.Background(), profileWith(longText))

	assert.LessOrEqual(t, len(focus.Summary), 103)
	assert.True(t, strings.HasSuffix(focus.Summary, "..."))
}

func TestSummarizePreservesStub(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"Focus."},
		errs:    []error{nil},
	}
	s := NewSummarizer(client, 200, 400, nil)

	p := profileWith("Some text.")
	focus := s.Summarize(context.Background(), p)
	assert.Equal(t, p.Stub, focus.Stub)
}
