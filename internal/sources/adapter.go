// Package sources turns university directory pages into uniform faculty
// stubs. Each directory layout is handled by an adapter variant registered
// under an AdapterKind; adding support for a new university means
// registering a new variant, nothing else changes.
package sources

import (
	"fmt"
	"sort"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// Adapter extracts faculty stubs from one directory page layout.
// ListFaculty must be idempotent against the same page snapshot: same
// HTML in, same stubs out, in page order.
type Adapter interface {
	// Kind returns the adapter kind this variant is registered under.
	Kind() types.AdapterKind
	// ListFaculty parses directory page HTML into stubs. Entries with an
	// empty name or an unresolvable profile reference are skipped, never
	// surfaced as errors; only an unparseable page fails.
	ListFaculty(spec types.SourceSpec, html string) ([]types.FacultyStub, error)
}

var registry = map[types.AdapterKind]Adapter{}

// Register adds an adapter variant to the registry. Registering the same
// kind twice panics; variants are wired once at init time.
func Register(a Adapter) {
	if _, exists := registry[a.Kind()]; exists {
		panic(fmt.Sprintf("sources: adapter %q registered twice", a.Kind()))
	}
	registry[a.Kind()] = a
}

// Lookup returns the adapter for a kind.
func Lookup(kind types.AdapterKind) (Adapter, error) {
	a, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("sources: no adapter registered for kind %q", kind)
	}
	return a, nil
}

// Kinds returns the registered adapter kinds, sorted for stable output.
func Kinds() []types.AdapterKind {
	kinds := make([]types.AdapterKind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func init() {
	Register(&cardsAdapter{})
	Register(&listingAdapter{})
	Register(&peopleAdapter{})
	Register(&genericAdapter{})
}
