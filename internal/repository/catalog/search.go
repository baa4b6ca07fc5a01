package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// Search runs spec as a relational filter. Hits carry no score; the
// result has the same shape as an index search.
func (r *Repo) Search(ctx context.Context, spec *query.Spec) (result.SearchResult, error) {
	where, args, err := BuildWhere(spec)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("build filter: %w", err)
	}

	var total int
	countQ := r.dialect.rebind("SELECT COUNT(*) FROM movies WHERE " + where)
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return result.SearchResult{}, fmt.Errorf("counting matches: %w", err)
	}
	if total == 0 || spec.Offset >= total {
		return result.New(nil, total, result.BackendCatalog), nil
	}

	selectQ := r.dialect.rebind("SELECT " + selectColumns + " FROM movies WHERE " + where +
		" ORDER BY " + orderBy(spec) + " LIMIT ? OFFSET ?")
	pageArgs := append(append(make([]any, 0, len(args)+2), args...), spec.Limit, spec.Offset)

	rows, err := r.db.QueryContext(ctx, selectQ, pageArgs...)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("selecting matches: %w", err)
	}
	movies, err := collect(rows)
	if err != nil {
		return result.SearchResult{}, err
	}

	hits := make([]result.Hit, len(movies))
	for i := range movies {
		hits[i] = result.Hit{Movie: movies[i]}
	}
	return result.New(hits, total, result.BackendCatalog), nil
}
