// Package scheduler runs the periodic catalog-to-index resync.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/usecase/indexing"
)

// Reindexer runs one full resync.
type Reindexer interface {
	Reindex(ctx context.Context) (indexing.Report, error)
}

// Scheduler owns the cron instance driving resyncs.
type Scheduler struct {
	cron    *cron.Cron
	job     *resyncJob
	logger  *zap.Logger
	entries int
}

// New creates a scheduler. A non-positive timeout leaves runs unbounded.
func New(r Reindexer, timeout time.Duration, logger *zap.Logger) *Scheduler {
	cl := cronLogger{l: logger.Sugar()}
	c := cron.New(cron.WithChain(
		cron.Recover(cl),
		cron.SkipIfStillRunning(cl),
	))
	return &Scheduler{
		cron:   c,
		job:    &resyncJob{reindexer: r, timeout: timeout, logger: logger},
		logger: logger,
	}
}

// Register schedules the resync on a standard five-field cron spec.
// An empty spec leaves the schedule off.
func (s *Scheduler) Register(spec string) error {
	if spec == "" {
		s.logger.Info("Periodic resync disabled")
		return nil
	}
	if _, err := s.cron.AddJob(spec, s.job); err != nil {
		return fmt.Errorf("schedule resync %q: %w", spec, err)
	}
	s.entries++
	s.logger.Info("Periodic resync scheduled", zap.String("schedule", spec))
	return nil
}

// Start runs the cron loop in the background. It is a no-op with nothing registered.
func (s *Scheduler) Start() {
	if s.entries == 0 {
		return
	}
	s.cron.Start()
}

// Stop halts scheduling and waits for a running resync, or until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Resync still running at shutdown")
	}
}

// RunNow runs one resync immediately unless one is already in flight.
func (s *Scheduler) RunNow(ctx context.Context) (indexing.Report, bool, error) {
	return s.job.run(ctx)
}

// Reindex runs one resync now and returns domain.ErrBusy if one is in flight.
func (s *Scheduler) Reindex(ctx context.Context) (indexing.Report, error) {
	rep, ran, err := s.job.run(ctx)
	if !ran {
		return rep, domain.ErrBusy
	}
	return rep, err
}

type resyncJob struct {
	reindexer Reindexer
	timeout   time.Duration
	logger    *zap.Logger
	running   atomic.Bool
}

// Run implements cron.Job.
func (j *resyncJob) Run() {
	_, _, _ = j.run(context.Background())
}

func (j *resyncJob) run(ctx context.Context) (indexing.Report, bool, error) {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Info("Resync already running, skipped")
		return indexing.Report{}, false, nil
	}
	defer j.running.Store(false)

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	rep, err := j.reindexer.Reindex(ctx)
	if err != nil {
		j.logger.Warn("Resync failed", zap.Error(err))
		return rep, true, err
	}
	j.logger.Info("Resync finished",
		zap.Int("scanned", rep.Scanned),
		zap.Int("indexed", rep.Indexed),
		zap.Int("failed", rep.Failed),
		zap.Duration("duration", rep.Duration),
	)
	return rep, true, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
