// Package profile resolves faculty stubs into raw profile text. Fetch
// failure is absorbed here: after bounded retries a profile comes back
// with empty text, which downstream stages treat as "unavailable", never
// as a missing record.
package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/fetch"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// MaxProfileTextLen caps the text handed to summarization so generation
// inputs stay bounded.
const MaxProfileTextLen = 5000

// Fetcher retrieves faculty profile pages through the shared fetch client.
type Fetcher struct {
	client *fetch.Client
	log    *zap.Logger
}

// NewFetcher builds a profile fetcher. log may be nil.
func NewFetcher(client *fetch.Client, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, log: log}
}

// Fetch performs one content retrieval for a stub. Retries and backoff
// live in the fetch client; on exhaustion the returned profile has empty
// RawText rather than an error.
func (f *Fetcher) Fetch(ctx context.Context, stub types.FacultyStub) types.FacultyProfile {
	result, err := f.client.Get(ctx, stub.ProfileRef)
	if err != nil {
		f.log.Warn("profile fetch failed",
			zap.String("institution", stub.InstitutionName),
			zap.String("faculty", stub.Name),
			zap.Error(&FetchError{Ref: stub.ProfileRef, Cause: err}),
		)
		return types.FacultyProfile{Stub: stub}
	}

	text := ExtractResearchText(result.HTML)
	if runes := []rune(text); len(runes) > MaxProfileTextLen {
		text = string(runes[:MaxProfileTextLen])
	}

	return types.FacultyProfile{Stub: stub, RawText: text}
}
