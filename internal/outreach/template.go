package outreach

import (
	"fmt"
	"strings"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// templateBody is the deterministic fallback used when generation fails
// twice. It carries no research personalization but still reads as a
// complete outreach message.
const templateBody = `Dear Professor %s,

I hope this message finds you well. My name is %s, and I am a %s student at %s. I am reaching out because I am very interested in the research happening in your group.

My technical background includes experience with %s, and I am eager to apply these skills to research problems in your area of expertise.

Would you be available for a brief meeting to discuss potential research opportunities in your lab? I would greatly appreciate the chance to learn more about your work.

Thank you for your time and consideration.

Best regards,
%s
%s | %s`

// TemplateBody fills the deterministic fallback template for one faculty
// member. Same inputs always produce the same body.
func TemplateBody(stub types.FacultyStub, applicant *types.ApplicantProfile) string {
	major := applicant.Major
	if major == "" {
		major = "university"
	}
	skills := applicant.SkillsLine(3)
	if skills == "" {
		skills = "software development"
	}

	return fmt.Sprintf(templateBody,
		lastName(stub.Name),
		applicant.Name,
		major,
		applicant.Institution,
		skills,
		applicant.Name,
		applicant.Institution,
		applicant.Major,
	)
}

// lastName returns the final word of a name for the salutation, with any
// trailing title noise kept as-is. "A. Lee" addresses "Professor Lee".
func lastName(fullName string) string {
	fields := strings.Fields(strings.TrimSpace(fullName))
	if len(fields) == 0 {
		return fullName
	}
	return strings.TrimRight(fields[len(fields)-1], ",")
}
