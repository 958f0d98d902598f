package types

import "strings"

// ApplicantProfile is the structured view of the applicant's resume,
// extracted once per run. Downstream stages treat it as read-only.
type ApplicantProfile struct {
	Name          string   `json:"name"`
	Skills        []string `json:"skills"`
	Institution   string   `json:"institution"`
	Major         string   `json:"major"`
	GradYear      int      `json:"grad_year"`
	RawResumeText string   `json:"-"`
}

// TopSkills returns up to n skills for prompt construction.
func (a *ApplicantProfile) TopSkills(n int) []string {
	if n <= 0 || n >= len(a.Skills) {
		return a.Skills
	}
	return a.Skills[:n]
}

// SkillsLine joins the top n skills into a comma-separated phrase.
func (a *ApplicantProfile) SkillsLine(n int) string {
	return strings.Join(a.TopSkills(n), ", ")
}

// Normalize trims fields and drops empty or duplicate skills, preserving
// first-seen order.
func (a *ApplicantProfile) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Institution = strings.TrimSpace(a.Institution)
	a.Major = strings.TrimSpace(a.Major)

	seen := make(map[string]bool, len(a.Skills))
	normalized := make([]string, 0, len(a.Skills))
	for _, skill := range a.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		lower := strings.ToLower(skill)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		normalized = append(normalized, skill)
	}
	a.Skills = normalized
}
