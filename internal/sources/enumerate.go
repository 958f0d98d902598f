package sources

import (
	"context"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/fetch"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// EnumerateOptions configures directory enumeration.
type EnumerateOptions struct {
	// UseBrowser renders the directory page in a headless browser before
	// parsing, for listings populated by JavaScript.
	UseBrowser bool
}

// Enumerate fetches one source's directory page and runs its adapter,
// returning the discovered stubs in page order. All failure paths return
// a *SourceFetchError; callers record it and move on.
func Enumerate(ctx context.Context, client *fetch.Client, spec types.SourceSpec, opts EnumerateOptions) ([]types.FacultyStub, error) {
	adapter, err := Lookup(spec.AdapterKind)
	if err != nil {
		return nil, &SourceFetchError{Institution: spec.InstitutionName, Message: "unknown adapter kind", Cause: err}
	}

	var html string
	if opts.UseBrowser {
		html, err = fetch.WithBrowser(ctx, spec.DirectoryURL, 0)
		if err != nil {
			return nil, &SourceFetchError{Institution: spec.InstitutionName, Message: "directory render failed", Cause: err}
		}
	} else {
		result, err := client.Get(ctx, spec.DirectoryURL)
		if err != nil {
			return nil, &SourceFetchError{Institution: spec.InstitutionName, Message: "directory fetch failed", Cause: err}
		}
		html = result.HTML
	}

	return adapter.ListFaculty(spec, html)
}
