// Package session holds the per-browser session state: who is signed in and
// which accommodation an owner or manager is working on. Each record lives in
// memory and is mirrored to a ports.KVStore so it survives a restart.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/metrics"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

const keyPrefix = "pirates:session:"

// PrincipalKey is the store key holding the principal of session sid.
func PrincipalKey(sid string) string {
	return keyPrefix + sid + ":principal"
}

// AccommodationKey is the store key holding the accommodation of session sid.
func AccommodationKey(sid string) string {
	return keyPrefix + sid + ":accommodation"
}

// Snapshot is a consistent copy of a container's state.
type Snapshot struct {
	Principal     domain.Principal
	Accommodation domain.AccommodationContext
	// Degraded is true once the store has failed for this session; state is
	// then kept in memory only.
	Degraded bool
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Container is the state of one session. All methods are safe for concurrent
// use. Readers always observe a whole record: mutations swap it under lock.
type Container struct {
	id    string
	store ports.KVStore
	queue ports.WriteQueue
	codec *Codec
	log   zerolog.Logger

	hydrate sync.Once
	// writeMu serialises mutation plus persistence so the store sees writes in
	// the same order as memory.
	writeMu sync.Mutex

	mu            sync.RWMutex
	principal     domain.Principal
	accommodation domain.AccommodationContext
	degraded      bool
	subs          []subscriber
	nextSub       int
}

// NewContainer returns an empty, not yet hydrated container. queue may be nil,
// in which case every write goes to the store synchronously.
func NewContainer(id string, store ports.KVStore, queue ports.WriteQueue, codec *Codec, log zerolog.Logger) *Container {
	if codec == nil {
		codec = NewCodec("")
	}
	return &Container{
		id:    id,
		store: store,
		queue: queue,
		codec: codec,
		log:   log.With().Str("session_id", id).Logger(),
	}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Principal() domain.Principal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.principal
}

func (c *Container) Accommodation() domain.AccommodationContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accommodation
}

func (c *Container) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}

func (c *Container) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Container) snapshotLocked() Snapshot {
	return Snapshot{
		Principal:     c.principal,
		Accommodation: c.accommodation,
		Degraded:      c.degraded,
	}
}

// Hydrate loads the persisted records. Only the first call does any work.
// Malformed blobs are discarded and their removal persisted; a failing store
// degrades the session. Hydrate never fails.
func (c *Container) Hydrate(ctx context.Context) {
	c.hydrate.Do(func() {
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		c.hydrateLocked(ctx)
	})
}

func (c *Container) hydrateLocked(ctx context.Context) {
	result := "empty"

	principalOutcome, ok := c.load(ctx, PrincipalKey(c.id), func(s string) error {
		p, err := c.codec.DecodePrincipal(s)
		if err == nil {
			c.setState(func() { c.principal = p })
		}
		return err
	})
	switch {
	case !ok:
		result = "unavailable"
	case principalOutcome == loadMalformed:
		result = "malformed"
	case principalOutcome == loadRestored:
		result = "restored"
	}

	accommodationOutcome, ok := c.load(ctx, AccommodationKey(c.id), func(s string) error {
		a, err := c.codec.DecodeAccommodation(s)
		if err == nil {
			c.setState(func() { c.accommodation = a })
		}
		return err
	})
	if !ok {
		result = "unavailable"
	} else if accommodationOutcome == loadMalformed && result != "unavailable" {
		result = "malformed"
	}

	// An accommodation left behind by a role that carries none is stale.
	if accommodationOutcome == loadRestored && !c.Principal().Role.HasAccommodation() {
		c.setState(func() { c.accommodation = domain.AccommodationContext{} })
		c.persist(ctx, AccommodationKey(c.id), "", true)
	}

	metrics.SessionHydrationsTotal.WithLabelValues(result).Inc()
	c.log.Debug().Str("result", result).Msg("session hydrated")
	c.notify()
}

type loadOutcome int

const (
	loadMissing loadOutcome = iota
	loadRestored
	loadMalformed
)

// load reads key and hands the blob to apply. ok is false when the store
// failed and the container is now degraded.
func (c *Container) load(ctx context.Context, key string, apply func(string) error) (loadOutcome, bool) {
	if c.Degraded() {
		return loadMissing, false
	}
	blob, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.degrade("get", err)
		return loadMissing, false
	}
	if !found {
		return loadMissing, true
	}
	if err := apply(blob); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("discarding malformed session record")
		c.persist(ctx, key, "", true)
		return loadMalformed, true
	}
	return loadRestored, true
}

// SetPrincipal replaces the principal as a whole. A partial principal is
// rejected and the current one kept. Switching to a role without
// accommodations drops the accommodation context.
func (c *Container) SetPrincipal(ctx context.Context, p domain.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsAnonymous() {
		c.ClearPrincipal(ctx)
		return nil
	}
	blob, err := c.codec.EncodePrincipal(p)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	var dropAccommodation bool
	c.setState(func() {
		c.principal = p
		if !p.Role.HasAccommodation() && !c.accommodation.IsZero() {
			c.accommodation = domain.AccommodationContext{}
			dropAccommodation = true
		}
	})
	c.persist(ctx, PrincipalKey(c.id), blob, false)
	if dropAccommodation {
		c.persist(ctx, AccommodationKey(c.id), "", true)
	}
	c.writeMu.Unlock()

	c.notify()
	return nil
}

// ClearPrincipal resets the session to anonymous. The accommodation context
// goes with it.
func (c *Container) ClearPrincipal(ctx context.Context) {
	c.writeMu.Lock()
	c.setState(func() {
		c.principal = domain.Principal{}
		c.accommodation = domain.AccommodationContext{}
	})
	c.persist(ctx, PrincipalKey(c.id), "", true)
	c.persist(ctx, AccommodationKey(c.id), "", true)
	c.writeMu.Unlock()

	c.notify()
}

// SetAccommodation records the accommodation an owner or manager works on.
// A zero context clears it.
func (c *Container) SetAccommodation(ctx context.Context, a domain.AccommodationContext) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.IsZero() {
		c.ClearAccommodation(ctx)
		return nil
	}
	blob, err := c.codec.EncodeAccommodation(a)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	var role domain.Role
	c.setState(func() {
		role = c.principal.Role
		if role.HasAccommodation() {
			c.accommodation = a
		}
	})
	if !role.HasAccommodation() {
		c.writeMu.Unlock()
		return fmt.Errorf("%w: role %q", domain.ErrAccommodationNotApplicable, role)
	}
	c.persist(ctx, AccommodationKey(c.id), blob, false)
	c.writeMu.Unlock()

	c.notify()
	return nil
}

func (c *Container) ClearAccommodation(ctx context.Context) {
	c.writeMu.Lock()
	c.setState(func() { c.accommodation = domain.AccommodationContext{} })
	c.persist(ctx, AccommodationKey(c.id), "", true)
	c.writeMu.Unlock()

	c.notify()
}

// Subscribe registers fn to receive a snapshot after every mutation. The
// returned func removes it and may be called more than once.
func (c *Container) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Container) setState(mutate func()) {
	c.mu.Lock()
	mutate()
	c.mu.Unlock()
}

func (c *Container) notify() {
	c.mu.RLock()
	snap := c.snapshotLocked()
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()

	for _, s := range subs {
		s.fn(snap)
	}
}

// persist mirrors one write to the store. Once degraded, nothing reaches the
// store for the rest of the container's life.
func (c *Container) persist(ctx context.Context, key, value string, remove bool) {
	if c.Degraded() {
		return
	}
	op := "set"
	if remove {
		op = "remove"
	}

	if c.queue != nil {
		queued := c.queue.Enqueue(ports.WriteJob{
			SessionID: c.id,
			Key:       key,
			Value:     value,
			Remove:    remove,
			OnError:   func(err error) { c.degradeAndNotify(op, err) },
		})
		if queued {
			return
		}
	}

	var err error
	if remove {
		err = c.store.Remove(ctx, key)
	} else {
		err = c.store.Set(ctx, key, value)
	}
	if err != nil {
		c.degrade(op, err)
	}
}

// degrade reports whether this call switched the container to degraded.
func (c *Container) degrade(op string, err error) bool {
	c.mu.Lock()
	already := c.degraded
	c.degraded = true
	c.mu.Unlock()

	metrics.SessionStoreErrorsTotal.WithLabelValues(op).Inc()
	if already {
		return false
	}
	ev := c.log.Warn()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		ev = c.log.Info()
	}
	ev.Err(err).Str("op", op).Msg("session store unavailable, continuing in memory")
	return true
}

func (c *Container) degradeAndNotify(op string, err error) {
	if c.degrade(op, err) {
		c.notify()
	}
}
