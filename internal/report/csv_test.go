package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

func sampleReport() *types.RunReport {
	return &types.RunReport{
		RunID: "run-1",
		Records: []types.OutreachRecord{
			{
				InstitutionName: "Test University",
				FacultyName:     "Alice Lee",
				ProfileRef:      "https://cs.example.edu/people/alice-lee",
				ResearchSummary: "Distributed consensus protocols.",
				EmailBody:       "Dear Professor Lee,\n\nI am writing because...",
				Status:          types.StatusComplete,
			},
			{
				InstitutionName: "Test University",
				FacultyName:     "Bob Cho",
				ProfileRef:      "https://cs.example.edu/people/bob-cho",
				EmailBody:       "Dear Professor Cho, ...",
				Status:          types.StatusPartial,
			},
			{
				InstitutionName: "Other University",
				FacultyName:     "Carol Wu",
				ProfileRef:      "https://other.example.edu/people/carol-wu",
				Status:          types.StatusFailed,
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"institution_name", "faculty_name", "profile_ref",
		"research_summary", "email_body", "status",
	}, rows[0])

	assert.Equal(t, "Alice Lee", rows[1][1])
	assert.Equal(t, "complete", rows[1][5])
	assert.Equal(t, "Bob Cho", rows[2][1])
	assert.Equal(t, "partial", rows[2][5])
	assert.Equal(t, "Carol Wu", rows[3][1])
	assert.Equal(t, "failed", rows[3][5])
}

func TestWriteCSVRoundTripsMultilineBodies(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Dear Professor Lee,\n\nI am writing because...", rows[1][4])
}

func TestWriteCSVEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &types.RunReport{RunID: "run-2"}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "institution_name")
	assert.Contains(t, string(data), "Alice Lee")
}
