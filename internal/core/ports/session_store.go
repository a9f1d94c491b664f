package ports

import (
	"context"
	"time"
)

// KVStore is the durable string store behind session state.
type KVStore interface {
	// Get returns found=false with a nil error for a missing key.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set overwrites any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for a missing key.
	Remove(ctx context.Context, key string) error
}

// SubmitGuard suppresses a second identical submission while the first one is
// still being handled.
type SubmitGuard interface {
	// Acquire reports false when key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// WriteJob is one pending persistence write for a session.
type WriteJob struct {
	SessionID string
	Key       string
	Value     string
	// Remove deletes Key instead of writing Value.
	Remove bool
	// OnError is called from the writer goroutine when the store fails.
	OnError func(error)
}

// WriteQueue applies writes asynchronously, in order per session.
type WriteQueue interface {
	// Enqueue reports false once the queue is closed; the caller then writes
	// synchronously.
	Enqueue(job WriteJob) bool
}
