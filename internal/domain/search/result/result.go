package result

import "github.com/kailas-cloud/cinedex/internal/domain/movie"

// Backend names which store answered a search.
type Backend string

// Backends.
const (
	BackendIndex   Backend = "index"
	BackendCatalog Backend = "catalog"
)

// Hit is a single ranked search hit.
type Hit struct {
	Movie     movie.Movie
	Score     float64
	Highlight map[string]string
}

// SearchResult has the same shape whichever backend produced it.
// Estimated marks a Total extrapolated from a post-filtered page.
type SearchResult struct {
	Hits      []Hit
	Total     int
	MaxScore  float64
	Backend   Backend
	Estimated bool
}

// New creates a result and derives MaxScore from the hits.
func New(hits []Hit, total int, backend Backend) SearchResult {
	r := SearchResult{Hits: hits, Total: total, Backend: backend}
	for i := range hits {
		if hits[i].Score > r.MaxScore {
			r.MaxScore = hits[i].Score
		}
	}
	return r
}
