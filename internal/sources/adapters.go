package sources

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// cardsAdapter handles directories built from faculty card divs: the name
// sits in an h3/h4/strong inside div.faculty-member, the profile link in
// the enclosing or nested anchor.
type cardsAdapter struct{}

func (a *cardsAdapter) Kind() types.AdapterKind { return types.AdapterCards }

func (a *cardsAdapter) ListFaculty(spec types.SourceSpec, html string) ([]types.FacultyStub, error) {
	return collectContainers(spec, html, "div.faculty-member", []string{"h3", "h4", "strong"})
}

// listingAdapter handles view-row style listings (CMS-generated person
// teasers), names in h2/h3/strong.
type listingAdapter struct{}

func (a *listingAdapter) Kind() types.AdapterKind { return types.AdapterListing }

func (a *listingAdapter) ListFaculty(spec types.SourceSpec, html string) ([]types.FacultyStub, error) {
	return collectContainers(spec, html, "div.views-row, div.person-teaser", []string{"h2", "h3", "strong"})
}

// peopleAdapter handles person/faculty-staff-item entries, which appear
// both as divs and list items.
type peopleAdapter struct{}

func (a *peopleAdapter) Kind() types.AdapterKind { return types.AdapterPeople }

func (a *peopleAdapter) ListFaculty(spec types.SourceSpec, html string) ([]types.FacultyStub, error) {
	return collectContainers(spec, html, "div.person, li.person, div.faculty-staff-item, li.faculty-staff-item", []string{"h3", "h4", "strong"})
}

// genericAdapter scans every anchor on the page. Because anchor text on an
// arbitrary page is mostly navigation, it additionally requires the text
// to contain a faculty-title keyword.
type genericAdapter struct{}

func (a *genericAdapter) Kind() types.AdapterKind { return types.AdapterGeneric }

func (a *genericAdapter) ListFaculty(spec types.SourceSpec, html string) ([]types.FacultyStub, error) {
	doc, err := parseDoc(spec, html)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(spec.DirectoryURL)
	if err != nil {
		return nil, &SourceFetchError{Institution: spec.InstitutionName, Message: "invalid directory URL", Cause: err}
	}

	var stubs []types.FacultyStub
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" || !hasFacultyTitle(name) {
			return
		}
		ref := resolveRef(base, sel)
		if ref == "" || !validProfileLink(ref) || seen[ref] {
			return
		}
		seen[ref] = true
		stubs = append(stubs, types.FacultyStub{
			InstitutionName: spec.InstitutionName,
			Name:            name,
			ProfileRef:      ref,
		})
	})

	return stubs, nil
}

// collectContainers walks container elements in page order, taking the
// first matching name element and the first anchor per container. Entries
// with empty names or unresolvable links are skipped; duplicate profile
// references within one page are dropped.
func collectContainers(spec types.SourceSpec, html, containerSel string, nameSels []string) ([]types.FacultyStub, error) {
	doc, err := parseDoc(spec, html)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(spec.DirectoryURL)
	if err != nil {
		return nil, &SourceFetchError{Institution: spec.InstitutionName, Message: "invalid directory URL", Cause: err}
	}

	var stubs []types.FacultyStub
	seen := make(map[string]bool)

	doc.Find(containerSel).Each(func(_ int, container *goquery.Selection) {
		var name string
		for _, nameSel := range nameSels {
			if elem := container.Find(nameSel).First(); elem.Length() > 0 {
				name = strings.TrimSpace(elem.Text())
				break
			}
		}
		if name == "" {
			return
		}

		var ref string
		// Prefer an anchor inside the container; some layouts wrap the
		// whole card in the anchor instead.
		if anchor := container.Find("a[href]").First(); anchor.Length() > 0 {
			ref = resolveRef(base, anchor)
		} else if container.Is("a[href]") {
			ref = resolveRef(base, container)
		} else if parent := container.Closest("a[href]"); parent.Length() > 0 {
			ref = resolveRef(base, parent)
		}
		if ref == "" || !validProfileLink(ref) || seen[ref] {
			return
		}

		seen[ref] = true
		stubs = append(stubs, types.FacultyStub{
			InstitutionName: spec.InstitutionName,
			Name:            name,
			ProfileRef:      ref,
		})
	})

	return stubs, nil
}

func parseDoc(spec types.SourceSpec, html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &SourceFetchError{Institution: spec.InstitutionName, Message: "failed to parse directory HTML", Cause: err}
	}
	return doc, nil
}

// resolveRef resolves an anchor's href against the directory URL,
// returning "" for malformed or non-HTTP references.
func resolveRef(base *url.URL, anchor *goquery.Selection) string {
	href, ok := anchor.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}
	refURL, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(refURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
