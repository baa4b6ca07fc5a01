package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/cinedex/internal/metrics"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Router mounts every route with the shared middleware stack. Admin
// routes sit behind auth.
func (s *Server) Router(auth AuthConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
	})

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/search", s.Search)
	r.Get("/search/suggestions", s.Suggestions)

	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuthMiddleware(auth))

		r.Get("/search/movies", s.AdminSearchMovies)
		r.Get("/search/status", s.AdminSearchStatus)
		r.Post("/search/reindex", s.AdminReindex)

		r.Post("/movies", s.CreateMovie)
		r.Get("/movies/{id}", s.GetMovie)
		r.Put("/movies/{id}", s.UpdateMovie)
		r.Delete("/movies/{id}", s.DeleteMovie)
	})

	return r
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}
