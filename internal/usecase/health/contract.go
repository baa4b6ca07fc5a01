package health

import "context"

// DBPinger checks catalog availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexGate reports whether the search index is usable.
type IndexGate interface {
	Ready(ctx context.Context) bool
}
