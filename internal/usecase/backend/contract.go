package backend

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// Store is the index connection the handle manages.
type Store interface {
	db.Pinger
	db.IndexManager
	db.Searcher
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	Del(ctx context.Context, key string) error
	Close()
}

// Connector dials the index. It returns (nil, nil) when no index is configured.
type Connector func(ctx context.Context) (Store, error)
