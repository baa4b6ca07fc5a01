package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/search/duration"
	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/query"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/logger"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// DefaultDurationMinutes is assumed for hits with no parseable runtime.
const DefaultDurationMinutes = 45

// Fallback reasons, as metric labels.
const (
	fallbackUnavailable = "unavailable"
	fallbackError       = "error"
)

// Index status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusError    = "error"
)

// Service executes searches against the index, degrading to the catalog.
type Service struct {
	index           Index
	catalog         Backend
	gate            Gate
	extractor       *intent.Extractor
	defaultDuration int
}

// New creates a search service. A nil extractor takes the stock pipeline;
// a non-positive defaultDuration takes DefaultDurationMinutes.
func New(index Index, catalog Backend, gate Gate, ex *intent.Extractor, defaultDuration int) *Service {
	if ex == nil {
		ex = intent.Default()
	}
	if defaultDuration <= 0 {
		defaultDuration = DefaultDurationMinutes
	}
	return &Service{
		index:           index,
		catalog:         catalog,
		gate:            gate,
		extractor:       ex,
		defaultDuration: defaultDuration,
	}
}

// Search answers req. Index failures fall back to the catalog for this
// request only; an error is returned only when the catalog fails too or
// the request itself is malformed.
func (s *Service) Search(ctx context.Context, req *Request) (result.SearchResult, error) {
	spec, _, err := buildSpec(req, s.extractor)
	if err != nil {
		return result.SearchResult{}, err
	}

	res, err := s.execute(ctx, spec)
	if err != nil {
		return result.SearchResult{}, err
	}

	if !req.Duration.IsZero() {
		res = filterDuration(res, req.Duration, s.defaultDuration)
	}
	return res, nil
}

// execute runs spec on the index when it is ready, otherwise on the catalog.
func (s *Service) execute(ctx context.Context, spec *query.Spec) (result.SearchResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	if s.gate.Ready(ctx) {
		res, err := s.index.Search(ctx, spec)
		if err == nil {
			observe(res.Backend, start)
			return res, nil
		}
		log.Warn("Index search failed, falling back to catalog", zap.Error(err))
		metrics.SearchFallbackTotal.WithLabelValues(fallbackError).Inc()
	} else {
		metrics.SearchFallbackTotal.WithLabelValues(fallbackUnavailable).Inc()
	}

	res, err := s.catalog.Search(ctx, spec)
	if err != nil {
		log.Error("Catalog search failed", zap.Error(err))
		return result.SearchResult{}, fmt.Errorf("catalog search: %w", err)
	}
	observe(res.Backend, start)
	return res, nil
}

func observe(b result.Backend, start time.Time) {
	metrics.SearchRequestsTotal.WithLabelValues(string(b)).Inc()
	metrics.SearchDuration.WithLabelValues(string(b)).Observe(time.Since(start).Seconds())
}

// filterDuration keeps hits whose derived runtime falls in b. The page was
// cut before filtering, so Total becomes an estimate scaled by the keep ratio.
func filterDuration(res result.SearchResult, b duration.Bucket, fallback int) result.SearchResult {
	fetched := len(res.Hits)
	kept := res.Hits[:0]
	for _, h := range res.Hits {
		if b.Contains(duration.Minutes(&h.Movie, fallback)) {
			kept = append(kept, h)
		}
	}

	out := result.New(kept, scaleTotal(res.Total, len(kept), fetched), res.Backend)
	out.Estimated = true
	return out
}

// scaleTotal extrapolates total by kept/fetched. With nothing fetched
// there is no ratio to apply and total is returned unchanged.
func scaleTotal(total, kept, fetched int) int {
	if fetched == 0 {
		return total
	}
	return int(math.Round(float64(total) * float64(kept) / float64(fetched)))
}

// Status describes the index for operators.
type Status struct {
	State         string
	Message       string
	DocumentCount *int
}

// Status reports whether the index is reachable and how many documents it holds.
func (s *Service) Status(ctx context.Context) Status {
	if !s.gate.Ready(ctx) {
		msg := s.gate.Reason()
		if msg == "" {
			msg = domain.ErrIndexUnavailable.Error()
		}
		return Status{State: StatusInactive, Message: msg}
	}

	n, err := s.index.Count(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("Index count failed", zap.Error(err))
		if errors.Is(err, domain.ErrIndexUnavailable) {
			return Status{State: StatusInactive, Message: err.Error()}
		}
		return Status{State: StatusError, Message: err.Error()}
	}
	return Status{State: StatusActive, Message: "search index is reachable", DocumentCount: &n}
}
