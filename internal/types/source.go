// Package types defines the shared data model that flows through the
// outreach pipeline: source specs, faculty stubs and profiles, research
// focus summaries, the applicant profile, and the final outreach records.
package types

import "strings"

// AdapterKind selects the directory-page layout a source adapter parses.
type AdapterKind string

// Adapter kinds supported by the source registry.
const (
	// AdapterCards matches directories built from faculty card divs
	// (name in an h3/h4/strong inside div.faculty-member).
	AdapterCards AdapterKind = "cards"
	// AdapterListing matches view-row style listings (div.views-row or
	// div.person-teaser with h2/h3/strong names).
	AdapterListing AdapterKind = "listing"
	// AdapterPeople matches person/faculty-staff-item entries.
	AdapterPeople AdapterKind = "people"
	// AdapterGeneric falls back to scanning all anchors, filtered by
	// faculty-title keywords.
	AdapterGeneric AdapterKind = "generic"
)

// Valid reports whether the kind is one of the registered adapter kinds.
func (k AdapterKind) Valid() bool {
	switch k {
	case AdapterCards, AdapterListing, AdapterPeople, AdapterGeneric:
		return true
	}
	return false
}

// SourceSpec describes one configured university directory. Specs are
// immutable once loaded; the pipeline never mutates them.
type SourceSpec struct {
	InstitutionName string      `json:"institution_name" validate:"required"`
	DirectoryURL    string      `json:"directory_url" validate:"required,url"`
	AdapterKind     AdapterKind `json:"adapter_kind" validate:"required"`
}

// Key returns a stable identifier for the source, used in logs.
func (s SourceSpec) Key() string {
	return strings.TrimSpace(s.InstitutionName)
}
