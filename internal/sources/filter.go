package sources

import (
	"regexp"
	"strings"
)

// facultyTitles are the keywords an anchor's text must contain for the
// generic adapter to treat it as a faculty entry.
var facultyTitles = []string{
	"professor",
	"faculty",
	"assistant",
	"associate",
	"lecturer",
	"researcher",
	"ph.d",
}

// invalidLinkPatterns mark links that point back at listings or error
// pages rather than an individual profile.
var invalidLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/directory/?$`),
	regexp.MustCompile(`/faculty/?$`),
	regexp.MustCompile(`/staff/?$`),
	regexp.MustCompile(`404`),
	regexp.MustCompile(`not[-\s]found`),
}

// hasFacultyTitle reports whether the text contains a faculty-title keyword.
func hasFacultyTitle(text string) bool {
	lower := strings.ToLower(text)
	for _, title := range facultyTitles {
		if strings.Contains(lower, title) {
			return true
		}
	}
	return false
}

// validProfileLink reports whether a resolved reference plausibly points
// at an individual profile page.
func validProfileLink(ref string) bool {
	lower := strings.ToLower(ref)
	for _, pattern := range invalidLinkPatterns {
		if pattern.MatchString(lower) {
			return false
		}
	}
	return true
}
