package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
)

const sampleResume = `Jane Doe
B.S. Computer Science, State University, 2026
Skills: Go, Python, Distributed Systems`

const goodResponse = `{
	"name": "Jane Doe",
	"skills": ["Go", "Python", "Distributed Systems"],
	"institution": "State University",
	"major": "Computer Science",
	"grad_year": 2026
}`

type scriptedClient struct {
	replies []string
	errs    []error
	calls   int
}

func (c *scriptedClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	i := c.calls
	c.calls++
	if i >= len(c.replies) {
		return "", errors.New("unexpected call")
	}
	return c.replies[i], c.errs[i]
}

func (c *scriptedClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier, _ float32) (string, error) {
	return "", errors.New("not used")
}

func (c *scriptedClient) Close() error { return nil }

func TestStructureSuccess(t *testing.T) {
	client := &scriptedClient{replies: []string{goodResponse}, errs: []error{nil}}

	profile, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, []string{"Go", "Python", "Distributed Systems"}, profile.Skills)
	assert.Equal(t, "State University", profile.Institution)
	assert.Equal(t, "Computer Science", profile.Major)
	assert.Equal(t, 2026, profile.GradYear)
	assert.Equal(t, sampleResume, profile.RawResumeText)
}

func TestStructureStripsCodeFences(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"```json\n" + goodResponse + "\n```"},
		errs:    []error{nil},
	}

	profile, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestStructureRetriesWithStrictPrompt(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"I cannot help with that.", goodResponse},
		errs:    []error{nil, nil},
	}

	profile, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestStructureBothAttemptsMalformed(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"not json", "{\"broken\":", ""},
		errs:    []error{nil, nil, nil},
	}

	_, err := Structure(context.Background(), client, sampleResume)
	require.Error(t, err)
	assert.Equal(t, 2, client.calls)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestStructureSchemaViolation(t *testing.T) {
	// Valid JSON, but grad_year has the wrong type and skills is missing.
	bad := `{"name": "Jane Doe", "institution": "X", "major": "CS", "grad_year": "2026"}`
	client := &scriptedClient{replies: []string{bad, bad}, errs: []error{nil, nil}}

	_, err := Structure(context.Background(), client, sampleResume)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestStructureServiceErrorSurfacesAsParseError(t *testing.T) {
	client := &scriptedClient{
		replies: []string{"", ""},
		errs:    []error{errors.New("quota exhausted"), errors.New("quota exhausted")},
	}

	_, err := Structure(context.Background(), client, sampleResume)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestStructureEmptyResume(t *testing.T) {
	client := &scriptedClient{}

	_, err := Structure(context.Background(), client, "   \n ")
	require.Error(t, err)
	assert.Equal(t, 0, client.calls)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestStructureNormalizesSkills(t *testing.T) {
	response := `{
		"name": " Jane Doe ",
		"skills": ["Go", " go ", "", "Python"],
		"institution": "State University",
		"major": "CS",
		"grad_year": 2026
	}`
	client := &scriptedClient{replies: []string{response}, errs: []error{nil}}

	profile, err := Structure(context.Background(), client, sampleResume)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, []string{"Go", "Python"}, profile.Skills)
}
