package movie

import (
	"context"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Repository defines the catalog storage contract.
type Repository interface {
	Save(ctx context.Context, m *dommovie.Movie) error
	Get(ctx context.Context, id string) (*dommovie.Movie, error)
	GetBySlug(ctx context.Context, slug string) (*dommovie.Movie, error)
	Delete(ctx context.Context, id string) error
}

// Sync mirrors catalog writes into the search index. It never fails a write.
type Sync interface {
	Upsert(ctx context.Context, m *dommovie.Movie)
	Remove(ctx context.Context, id string)
}
