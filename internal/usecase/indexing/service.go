package indexing

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// Resync defaults.
const (
	DefaultWorkers  = 4
	DefaultPageSize = 200
)

// Sync operations and outcomes, as metric labels.
const (
	opUpsert = "upsert"
	opRemove = "remove"

	resultOK      = "ok"
	resultError   = "error"
	resultSkipped = "skipped"
)

// Report summarizes a full resync.
type Report struct {
	Scanned  int           `json:"scanned"`
	Indexed  int           `json:"indexed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"-"`
}

// Service mirrors catalog writes into the search index. Single-record
// sync is best-effort: failures are logged and counted, never returned.
type Service struct {
	index    Index
	gate     Gate
	catalog  CatalogPager
	logger   *zap.Logger
	workers  int
	pageSize int
}

// New creates the sync service. Non-positive workers or pageSize take defaults.
func New(index Index, gate Gate, catalog CatalogPager, logger *zap.Logger, workers, pageSize int) *Service {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		index:    index,
		gate:     gate,
		catalog:  catalog,
		logger:   logger,
		workers:  workers,
		pageSize: pageSize,
	}
}

// Upsert writes the current state of m. Repeated calls converge on one document.
func (s *Service) Upsert(ctx context.Context, m *movie.Movie) {
	if !s.gate.Ready(ctx) {
		metrics.IndexSyncTotal.WithLabelValues(opUpsert, resultSkipped).Inc()
		s.logger.Debug("Index not ready, upsert skipped", zap.String("movie_id", m.ID))
		return
	}
	if err := s.index.Upsert(ctx, m); err != nil {
		metrics.IndexSyncTotal.WithLabelValues(opUpsert, resultError).Inc()
		s.logger.Warn("Index upsert failed, index is behind the catalog",
			zap.String("movie_id", m.ID), zap.Error(err))
		return
	}
	metrics.IndexSyncTotal.WithLabelValues(opUpsert, resultOK).Inc()
}

// Remove deletes the document for id. A missing document counts as removed.
func (s *Service) Remove(ctx context.Context, id string) {
	if !s.gate.Ready(ctx) {
		metrics.IndexSyncTotal.WithLabelValues(opRemove, resultSkipped).Inc()
		s.logger.Debug("Index not ready, remove skipped", zap.String("movie_id", id))
		return
	}
	if err := s.index.Remove(ctx, id); err != nil {
		metrics.IndexSyncTotal.WithLabelValues(opRemove, resultError).Inc()
		s.logger.Warn("Index remove failed, index is behind the catalog",
			zap.String("movie_id", id), zap.Error(err))
		return
	}
	metrics.IndexSyncTotal.WithLabelValues(opRemove, resultOK).Inc()
}

// Reindex walks the whole catalog and upserts every record, hidden ones
// included, repairing drift left by failed single-record syncs. Pages are
// written by a bounded pool of workers; a failed batch is retried record
// by record so Failed counts records, not batches.
func (s *Service) Reindex(ctx context.Context) (Report, error) {
	if !s.gate.Ready(ctx) {
		return Report{}, domain.ErrIndexUnavailable
	}

	start := time.Now()
	var scanned, indexed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	after := ""
	var listErr error
	for {
		page, err := s.catalog.ListAfter(gctx, after, s.pageSize)
		if err != nil {
			listErr = fmt.Errorf("list catalog after %q: %w", after, err)
			break
		}
		if len(page) == 0 {
			break
		}
		scanned.Add(int64(len(page)))
		after = page[len(page)-1].ID

		g.Go(func() error {
			ok, bad := s.writePage(gctx, page)
			indexed.Add(int64(ok))
			failed.Add(int64(bad))
			return gctx.Err()
		})

		if len(page) < s.pageSize {
			break
		}
	}

	waitErr := g.Wait()

	report := Report{
		Scanned:  int(scanned.Load()),
		Indexed:  int(indexed.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}

	if listErr == nil {
		listErr = waitErr
	}
	if listErr != nil {
		s.logger.Warn("Reindex aborted", zap.Error(listErr),
			zap.Int("scanned", report.Scanned), zap.Int("indexed", report.Indexed))
		return report, listErr
	}

	s.logger.Info("Reindex finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("indexed", report.Indexed),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration))
	return report, nil
}

func (s *Service) writePage(ctx context.Context, page []movie.Movie) (ok, bad int) {
	if err := s.index.UpsertMany(ctx, page); err == nil {
		metrics.IndexSyncTotal.WithLabelValues(opUpsert, resultOK).Add(float64(len(page)))
		return len(page), 0
	}

	for i := range page {
		if err := s.index.Upsert(ctx, &page[i]); err != nil {
			metrics.IndexSyncTotal.WithLabelValues(opUpsert, resultError).Inc()
			s.logger.Warn("Reindex upsert failed", zap.String("movie_id", page[i].ID), zap.Error(err))
			bad++
			continue
		}
		metrics.IndexSyncTotal.WithLabelValues(opUpsert, resultOK).Inc()
		ok++
	}
	return ok, bad
}
