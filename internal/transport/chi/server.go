package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/usecase/indexing"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Reindexer rebuilds the search index from the catalog.
type Reindexer interface {
	Reindex(ctx context.Context) (indexing.Report, error)
}

// Server holds the HTTP handlers of the search API.
type Server struct {
	search        *searchuc.Service
	movies        *movieuc.Service
	reindexer     Reindexer
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	movies *movieuc.Service,
	reindexer Reindexer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		movies:    movies,
		reindexer: reindexer,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidParamHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidMovie, http.StatusBadRequest),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict),
		sentinelHandler(domain.ErrBusy, http.StatusConflict),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable),
	}
	return s
}

// errorResponse is the uniform failure envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, errorResponse{Message: message, Error: detail})
}

// invalidParamHandler reports the offending parameter of a malformed request.
func invalidParamHandler(w http.ResponseWriter, err error) bool {
	var ipe *domain.InvalidParamError
	if !errors.As(err, &ipe) {
		return false
	}
	writeError(w, http.StatusBadRequest, domain.ErrInvalidQuery.Error(), ipe.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Only the sentinel text reaches the client.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		var detail string
		if status == http.StatusBadRequest {
			detail = err.Error()
		}
		writeError(w, status, sentinel.Error(), detail)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error", "")
}
