package port

import "context"

// PoolObserver is notified about the lifecycle of the shared database pool.
type PoolObserver interface {
	PoolCreated(driver string)
	PoolDiscarded(driver string, reason error)
}

// Pinger reports whether the database behind a pool is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
