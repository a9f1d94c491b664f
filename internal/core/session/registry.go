package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/metrics"
	"github.com/pirates/party-console/internal/core/ports"
)

const hydrateTimeout = 3 * time.Second

type entry struct {
	container *Container
	lastSeen  time.Time
}

// Registry owns the in-memory containers, one per session id.
type Registry struct {
	store ports.KVStore
	queue ports.WriteQueue
	codec *Codec
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithWriteQueue makes containers persist through q instead of writing to
// the store inline.
func WithWriteQueue(q ports.WriteQueue) Option {
	return func(r *Registry) { r.queue = q }
}

// WithCodec replaces the default plain JSON codec.
func WithCodec(c *Codec) Option {
	return func(r *Registry) { r.codec = c }
}

func NewRegistry(store ports.KVStore, log zerolog.Logger, opts ...Option) *Registry {
	r := &Registry{
		store:   store,
		codec:   NewCodec(""),
		log:     log,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the container for sid, creating it on first use. The container
// is hydrated before Get returns, so no caller ever reads pre-hydration state.
func (r *Registry) Get(ctx context.Context, sid string) *Container {
	r.mu.Lock()
	e, ok := r.entries[sid]
	if !ok {
		e = &entry{container: NewContainer(sid, r.store, r.queue, r.codec, r.log)}
		r.entries[sid] = e
		metrics.ActiveSessions.Set(float64(len(r.entries)))
	}
	e.lastSeen = r.now()
	r.mu.Unlock()

	// A client disconnect must not leave the session degraded.
	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hydrateTimeout)
	defer cancel()
	e.container.Hydrate(hctx)
	return e.container
}

// Forget drops the in-memory container for sid. Persisted state is untouched.
func (r *Registry) Forget(sid string) {
	r.mu.Lock()
	delete(r.entries, sid)
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	r.mu.Unlock()
}

// Prune drops containers not used for longer than idle and returns how many
// were dropped. They are rehydrated from the store on the next request.
func (r *Registry) Prune(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for sid, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, sid)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.entries)))
	if n > 0 {
		r.log.Debug().Int("pruned", n).Msg("idle sessions pruned")
	}
	return n
}

// Len returns the number of containers held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// RunPruner calls Prune every interval until ctx is done.
func (r *Registry) RunPruner(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prune(idle)
		}
	}
}
