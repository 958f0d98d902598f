package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicantNormalize(t *testing.T) {
	a := ApplicantProfile{
		Name:        "  Jane Doe ",
		Skills:      []string{" Go ", "go", "", "Python", "PYTHON", "Rust"},
		Institution: " State University ",
		Major:       " Computer Science ",
	}
	a.Normalize()

	assert.Equal(t, "Jane Doe", a.Name)
	assert.Equal(t, "State University", a.Institution)
	assert.Equal(t, "Computer Science", a.Major)
	assert.Equal(t, []string{"Go", "Python", "Rust"}, a.Skills)
}

func TestApplicantTopSkills(t *testing.T) {
	a := ApplicantProfile{Skills: []string{"Go", "Python", "Rust", "C"}}

	assert.Equal(t, []string{"Go", "Python"}, a.TopSkills(2))
	assert.Equal(t, a.Skills, a.TopSkills(0))
	assert.Equal(t, a.Skills, a.TopSkills(10))
	assert.Equal(t, "Go, Python, Rust", a.SkillsLine(3))
}

func TestFacultyStubKey(t *testing.T) {
	a := FacultyStub{InstitutionName: "U1", Name: "Alice Lee", ProfileRef: "https://u1.edu/p/alice"}
	b := FacultyStub{InstitutionName: "U1", Name: "A. Lee", ProfileRef: "https://u1.edu/p/alice"}
	c := FacultyStub{InstitutionName: "U2", Name: "Alice Lee", ProfileRef: "https://u1.edu/p/alice"}

	assert.Equal(t, a.Key(), b.Key(), "name differences do not change identity")
	assert.NotEqual(t, a.Key(), c.Key(), "institution is part of identity")
}

func TestResearchFocusUsable(t *testing.T) {
	stub := FacultyStub{InstitutionName: "U1", Name: "Alice Lee"}

	tests := []struct {
		name  string
		focus ResearchFocus
		want  bool
	}{
		{"ok with summary", ResearchFocus{Stub: stub, Summary: "x", Confidence: ConfidenceOK}, true},
		{"degraded with summary", ResearchFocus{Stub: stub, Summary: "x", Confidence: ConfidenceDegraded}, true},
		{"unavailable", ResearchFocus{Stub: stub, Confidence: ConfidenceUnavailable}, false},
		{"ok but empty summary", ResearchFocus{Stub: stub, Confidence: ConfidenceOK}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.focus.Usable())
		})
	}
}

func TestSourceSpecKey(t *testing.T) {
	s := SourceSpec{InstitutionName: "  Test University  "}
	assert.Equal(t, "Test University", s.Key())
}

func TestAdapterKindValid(t *testing.T) {
	for _, kind := range []AdapterKind{AdapterCards, AdapterListing, AdapterPeople, AdapterGeneric} {
		assert.True(t, kind.Valid(), string(kind))
	}
	assert.False(t, AdapterKind("carousel").Valid())
	assert.False(t, AdapterKind("").Valid())
}

func TestRunReportCountByStatus(t *testing.T) {
	r := RunReport{Records: []OutreachRecord{
		{Status: StatusComplete},
		{Status: StatusComplete},
		{Status: StatusPartial},
		{Status: StatusFailed},
	}}

	counts := r.CountByStatus()
	assert.Equal(t, 2, counts[StatusComplete])
	assert.Equal(t, 1, counts[StatusPartial])
	assert.Equal(t, 1, counts[StatusFailed])
}
