package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/config"
	dbRedis "github.com/kailas-cloud/cinedex/internal/db/redis"
	"github.com/kailas-cloud/cinedex/internal/repository/catalog"
	"github.com/kailas-cloud/cinedex/internal/repository/movieindex"
	"github.com/kailas-cloud/cinedex/internal/scheduler"
	chiTransport "github.com/kailas-cloud/cinedex/internal/transport/chi"
	"github.com/kailas-cloud/cinedex/internal/usecase/backend"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	"github.com/kailas-cloud/cinedex/internal/usecase/indexing"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
)

// app is the composition root shared by every command that touches storage.
type app struct {
	catalog   *catalog.Repo
	handle    *backend.Handle
	sync      *indexing.Service
	scheduler *scheduler.Scheduler
	server    *chiTransport.Server
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	cat, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.AutoMigrate {
		n, err := cat.Migrate(ctx)
		if err != nil {
			_ = cat.Close()
			return nil, fmt.Errorf("migrate catalog: %w", err)
		}
		logger.Info("Catalog migrated", zap.Int("applied", n))
	}

	// The index is dialed lazily on first use; repositories hold the handle.
	names := movieindex.NewNames(cfg.SearchIndex.KeyPrefix)
	handle := backend.New(indexConnector(cfg.SearchIndex), movieindex.Schema(names), logger)
	index := movieindex.New(handle, names)

	syncSvc := indexing.New(index, handle, cat, logger, cfg.Sync.Workers, cfg.Sync.PageSize)
	sched := scheduler.New(syncSvc, time.Duration(cfg.Sync.TimeoutSec)*time.Second, logger)

	searchSvc := searchuc.New(index, cat, handle, nil, cfg.Search.DefaultDurationMinutes)
	movieSvc := movieuc.New(cat, syncSvc)
	healthSvc := healthuc.New(cat, handle)

	return &app{
		catalog:   cat,
		handle:    handle,
		sync:      syncSvc,
		scheduler: sched,
		server:    chiTransport.NewServer(searchSvc, movieSvc, sched, healthSvc, logger),
	}, nil
}

func (a *app) Close() {
	a.handle.Close()
	_ = a.catalog.Close()
}

func openCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Repo, error) {
	cat, err := catalog.Open(ctx, catalog.Options{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeSec) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return cat, nil
}

// indexConnector dials Redis and waits for it to answer. No addresses
// means catalog-only mode.
func indexConnector(cfg config.SearchIndexConfig) backend.Connector {
	return func(ctx context.Context) (backend.Store, error) {
		if len(cfg.Addrs) == 0 {
			return nil, nil
		}
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:       cfg.Addrs,
			Username:    cfg.Username,
			Password:    cfg.Password,
			DialTimeout: cfg.ReadinessTimeoutDuration(),
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, cfg.ReadinessTimeoutDuration()); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		return store, nil
	}
}

func authConfig(cfg config.AuthConfig) chiTransport.AuthConfig {
	return chiTransport.AuthConfig{
		Secret:    []byte(cfg.JWTSecret),
		AdminRole: cfg.AdminRole,
		Disabled:  cfg.Disabled,
	}
}
