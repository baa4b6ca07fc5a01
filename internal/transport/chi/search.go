package chi

import (
	"net/http"

	"go.uber.org/zap"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
)

// hitResponse is one ranked hit: the movie fields plus its score.
type hitResponse struct {
	dommovie.Movie
	Score     float64           `json:"score"`
	Highlight map[string]string `json:"highlight,omitempty"`
}

type searchResponse struct {
	Success   bool          `json:"success"`
	Hits      []hitResponse `json:"hits"`
	Total     int           `json:"total"`
	MaxScore  float64       `json:"maxScore"`
	Backend   string        `json:"backend"`
	Estimated bool          `json:"estimated,omitempty"`
}

type suggestResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	req, err := params.request()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResultToResponse(res))
}

// Suggestions handles GET /search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	params, err := bindSuggestParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	suggestions := s.search.Suggest(r.Context(), deref(params.Q), deref(params.Limit))
	writeJSON(w, http.StatusOK, suggestResponse{Success: true, Suggestions: suggestions})
}

func searchResultToResponse(res result.SearchResult) searchResponse {
	hits := make([]hitResponse, len(res.Hits))
	for i, h := range res.Hits {
		hits[i] = hitResponse{Movie: h.Movie, Score: h.Score, Highlight: h.Highlight}
	}
	return searchResponse{
		Success:   true,
		Hits:      hits,
		Total:     res.Total,
		MaxScore:  res.MaxScore,
		Backend:   string(res.Backend),
		Estimated: res.Estimated,
	}
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}
