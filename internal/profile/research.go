package profile

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/fetch"
)

// researchKeywords mark the headings and class names that usually
// introduce a faculty member's research description.
var researchKeywords = []string{"research", "interests", "areas", "expertise"}

// ExtractResearchText pulls the research-relevant text from a profile
// page. It prefers the section under a research-related heading, then any
// element whose class names a research keyword, and finally the page's
// main text. Returns "" only when the page has no usable text at all.
func ExtractResearchText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if text := sectionAfterHeading(doc); text != "" {
		return text
	}
	if text := sectionByClass(doc); text != "" {
		return text
	}

	text, err := fetch.ExtractMainText(html, fetch.ProfilePageSelectors())
	if err != nil {
		return ""
	}
	return text
}

// sectionAfterHeading finds an h2/h3/h4 containing a research keyword and
// returns the text of the following p/div/ul sibling.
func sectionAfterHeading(doc *goquery.Document) string {
	var found string
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		headingText := strings.ToLower(heading.Text())
		for _, keyword := range researchKeywords {
			if !strings.Contains(headingText, keyword) {
				continue
			}
			sibling := heading.NextFiltered("p, div, ul")
			if sibling.Length() == 0 {
				// Some layouts interleave whitespace-only nodes.
				sibling = heading.NextAllFiltered("p, div, ul").First()
			}
			if text := fetch.CleanWhitespace(sibling.Text()); text != "" {
				found = text
				return false
			}
		}
		return true
	})
	return found
}

// sectionByClass finds the first element whose class attribute names a
// research keyword.
func sectionByClass(doc *goquery.Document) string {
	for _, keyword := range researchKeywords {
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
		var found string
		doc.Find("[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			if pattern.MatchString(class) {
				if text := fetch.CleanWhitespace(sel.Text()); text != "" {
					found = text
					return false
				}
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}
