package indexing

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Index writes movie projections to the search index.
type Index interface {
	Upsert(ctx context.Context, m *movie.Movie) error
	UpsertMany(ctx context.Context, movies []movie.Movie) error
	Remove(ctx context.Context, id string) error
}

// Gate reports whether the search index is ready, initializing it if needed.
type Gate interface {
	Ready(ctx context.Context) bool
}

// CatalogPager walks the catalog in id order.
type CatalogPager interface {
	ListAfter(ctx context.Context, afterID string, n int) ([]movie.Movie, error)
}
