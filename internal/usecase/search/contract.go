package search

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// Backend answers a search spec. The index and the catalog both implement it
// with the same set semantics; only the catalog lacks relevance scores.
type Backend interface {
	Search(ctx context.Context, spec *query.Spec) (result.SearchResult, error)
}

// Index is the full-text backend, which also serves autocomplete and status.
type Index interface {
	Backend
	SuggestHits(ctx context.Context, partial string, n int) ([]result.Hit, error)
	Count(ctx context.Context) (int, error)
}

// Gate reports index readiness, initializing the connection on first use.
type Gate interface {
	Ready(ctx context.Context) bool
	Reason() string
}
