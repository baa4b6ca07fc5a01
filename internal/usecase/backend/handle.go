package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
)

// State is the lifecycle state of the index connection.
type State string

// Lifecycle states.
const (
	// StatePending means EnsureReady has not run yet.
	StatePending State = "pending"
	// StateReady means the connection is live and the index exists.
	StateReady State = "ready"
	// StateDisabled means initialization failed or was not configured; it is permanent.
	StateDisabled State = "disabled"
)

// Handle owns the search index connection for the process lifetime.
// Initialization is attempted once; a failure disables the index until
// restart and every caller falls back to the catalog.
type Handle struct {
	connect Connector
	schema  *db.IndexDefinition
	logger  *zap.Logger

	once   sync.Once
	state  atomic.Value // State
	store  Store
	reason string
}

// New creates a handle. Nothing is dialed until EnsureReady.
func New(connect Connector, schema *db.IndexDefinition, logger *zap.Logger) *Handle {
	h := &Handle{connect: connect, schema: schema, logger: logger}
	h.state.Store(StatePending)
	return h
}

// EnsureReady initializes the connection on first call and returns the
// memoized store. ok is false when the index is disabled.
func (h *Handle) EnsureReady(ctx context.Context) (Store, bool) {
	h.once.Do(func() { h.init(ctx) })
	if h.State() != StateReady {
		return nil, false
	}
	return h.store, true
}

// Ready reports whether the index can serve requests, initializing it if needed.
func (h *Handle) Ready(ctx context.Context) bool {
	_, ok := h.EnsureReady(ctx)
	return ok
}

// IsDisabled reports whether initialization has failed or was skipped.
func (h *Handle) IsDisabled() bool { return h.State() == StateDisabled }

// State returns the current lifecycle state.
func (h *Handle) State() State {
	s, _ := h.state.Load().(State)
	return s
}

// Reason explains why the index is disabled. Empty otherwise.
func (h *Handle) Reason() string {
	if !h.IsDisabled() {
		return ""
	}
	return h.reason
}

// IndexName returns the managed index name.
func (h *Handle) IndexName() string { return h.schema.Name }

// Close releases the connection if one was established.
func (h *Handle) Close() {
	if h.State() == StateReady && h.store != nil {
		h.store.Close()
	}
}

func (h *Handle) init(ctx context.Context) {
	store, err := h.connect(ctx)
	switch {
	case err != nil:
		h.disable(fmt.Sprintf("connect: %v", err), zap.Error(err))
		return
	case store == nil:
		h.reason = "search index not configured"
		h.logger.Info("Search index not configured, serving searches from the catalog")
		h.state.Store(StateDisabled)
		return
	}

	if err := store.Ping(ctx); err != nil {
		store.Close()
		h.disable(fmt.Sprintf("ping: %v", err), zap.Error(err))
		return
	}

	if !store.SupportsTextSearch(ctx) {
		store.Close()
		h.disable("backend has no full-text search module")
		return
	}

	if err := h.ensureIndex(ctx, store); err != nil {
		store.Close()
		h.disable(fmt.Sprintf("ensure index: %v", err), zap.Error(err))
		return
	}

	h.store = store
	h.state.Store(StateReady)
	h.logger.Info("Search index ready", zap.String("index", h.schema.Name))
}

// ensureIndex creates the index when absent. A concurrent creator winning
// the race is not an error.
func (h *Handle) ensureIndex(ctx context.Context, store Store) error {
	exists, err := store.IndexExists(ctx, h.schema.Name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := store.CreateIndex(ctx, h.schema); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return err
	}
	h.logger.Info("Search index created", zap.String("index", h.schema.Name))
	return nil
}

// Recreate drops and rebuilds the index definition so a changed schema
// takes effect. Documents are kept and rescanned by the server.
func (h *Handle) Recreate(ctx context.Context) error {
	store, ok := h.EnsureReady(ctx)
	if !ok {
		return domain.ErrIndexUnavailable
	}
	if err := store.DropIndex(ctx, h.schema.Name); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", h.schema.Name, err)
	}
	if err := store.CreateIndex(ctx, h.schema); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", h.schema.Name, err)
	}
	h.logger.Info("Search index recreated", zap.String("index", h.schema.Name))
	return nil
}

func (h *Handle) disable(reason string, fields ...zap.Field) {
	h.reason = reason
	h.state.Store(StateDisabled)
	h.logger.Warn("Search index disabled until restart, serving searches from the catalog",
		append(fields, zap.String("reason", reason))...)
}

// The methods below let repositories hold the handle before it is ready.
// Each returns domain.ErrIndexUnavailable while the index is disabled.

// JSONSet delegates to the ready store.
func (h *Handle) JSONSet(ctx context.Context, key, path string, data []byte) error {
	s, ok := h.EnsureReady(ctx)
	if !ok {
		return domain.ErrIndexUnavailable
	}
	return s.JSONSet(ctx, key, path, data) //nolint:wrapcheck // transparent delegate
}

// JSONSetMulti delegates to the ready store.
func (h *Handle) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	s, ok := h.EnsureReady(ctx)
	if !ok {
		return domain.ErrIndexUnavailable
	}
	return s.JSONSetMulti(ctx, items) //nolint:wrapcheck // transparent delegate
}

// Del delegates to the ready store.
func (h *Handle) Del(ctx context.Context, key string) error {
	s, ok := h.EnsureReady(ctx)
	if !ok {
		return domain.ErrIndexUnavailable
	}
	return s.Del(ctx, key) //nolint:wrapcheck // transparent delegate
}

// Search delegates to the ready store.
func (h *Handle) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	s, ok := h.EnsureReady(ctx)
	if !ok {
		return nil, domain.ErrIndexUnavailable
	}
	return s.Search(ctx, q) //nolint:wrapcheck // transparent delegate
}

// SearchCount delegates to the ready store.
func (h *Handle) SearchCount(ctx context.Context, index, query string) (int, error) {
	s, ok := h.EnsureReady(ctx)
	if !ok {
		return 0, domain.ErrIndexUnavailable
	}
	return s.SearchCount(ctx, index, query) //nolint:wrapcheck // transparent delegate
}
