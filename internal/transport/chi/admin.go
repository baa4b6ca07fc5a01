package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dommovie "github.com/kailas-cloud/cinedex/internal/domain/movie"
)

type statusResponse struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	DocumentCount *int   `json:"documentCount,omitempty"`
}

type reindexResponse struct {
	Success    bool  `json:"success"`
	Scanned    int   `json:"scanned"`
	Indexed    int   `json:"indexed"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"durationMs"`
}

type movieResponse struct {
	Success bool            `json:"success"`
	Movie   *dommovie.Movie `json:"movie"`
}

// AdminSearchMovies handles GET /admin/search/movies.
func (s *Server) AdminSearchMovies(w http.ResponseWriter, r *http.Request) {
	params, err := bindAdminSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	req, err := params.request()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.SearchAdmin(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// AdminSearchStatus handles GET /admin/search/status.
func (s *Server) AdminSearchStatus(w http.ResponseWriter, r *http.Request) {
	st := s.search.Status(r.Context())
	writeJSON(w, http.StatusOK, statusResponse{
		Success:       true,
		Status:        st.State,
		Message:       st.Message,
		DocumentCount: st.DocumentCount,
	})
}

// AdminReindex handles POST /admin/search/reindex.
func (s *Server) AdminReindex(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reindexer.Reindex(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.requestLogger(r).Info("Reindex finished",
		zap.Int("scanned", rep.Scanned),
		zap.Int("indexed", rep.Indexed),
		zap.Int("failed", rep.Failed),
	)
	writeJSON(w, http.StatusOK, reindexResponse{
		Success:    true,
		Scanned:    rep.Scanned,
		Indexed:    rep.Indexed,
		Failed:     rep.Failed,
		DurationMs: rep.Duration.Milliseconds(),
	})
}

// CreateMovie handles POST /admin/movies.
func (s *Server) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var m dommovie.Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := s.movies.Create(r.Context(), &m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/admin/movies/"+created.ID)
	writeJSON(w, http.StatusCreated, movieResponse{Success: true, Movie: created})
}

// GetMovie handles GET /admin/movies/{id}.
func (s *Server) GetMovie(w http.ResponseWriter, r *http.Request) {
	m, err := s.movies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movieResponse{Success: true, Movie: m})
}

// UpdateMovie handles PUT /admin/movies/{id}.
func (s *Server) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var m dommovie.Movie
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := s.movies.Update(r.Context(), chi.URLParam(r, "id"), &m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movieResponse{Success: true, Movie: updated})
}

// DeleteMovie handles DELETE /admin/movies/{id}.
func (s *Server) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := s.movies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
