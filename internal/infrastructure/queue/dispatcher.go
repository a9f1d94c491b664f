package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/metrics"
	"github.com/pirates/party-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
	enqueueWait    = time.Second
)

// Dispatcher routes session writes to a fixed set of workers using consistent
// hashing on the session id, guaranteeing per-session write ordering.
type Dispatcher struct {
	workers []chan ports.WriteJob
	store   ports.KVStore
	log     zerolog.Logger

	// wait bounds how long Enqueue blocks on a full worker channel.
	wait time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.KVStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.WriteJob, numWorkers),
		store:   store,
		log:     log,
		wait:    enqueueWait,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.WriteJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx only carries values into the
// writes: workers run until Close has drained their channel, so shutdown
// cancellation never drops a queued write.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a write to the worker responsible for its session. It
// returns false after Close, or when the worker channel stayed full for the
// wait bound; the caller then writes synchronously.
func (d *Dispatcher) Enqueue(job ports.WriteJob) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	idx := d.shardIndex(job.SessionID)
	ch := d.workers[idx]
	select {
	case ch <- job:
	default:
		timer := time.NewTimer(d.wait)
		defer timer.Stop()
		select {
		case ch <- job:
		case <-timer.C:
			d.log.Warn().Int("worker_id", idx).Msg("session write queue full, writing synchronously")
			return false
		}
	}
	metrics.WriteQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
	return true
}

// Close stops accepting writes and waits until every queued write is applied.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.WriteJob) {
	defer d.wg.Done()
	for job := range ch {
		metrics.WriteQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		d.apply(ctx, id, job)
	}
}

func (d *Dispatcher) apply(ctx context.Context, id int, job ports.WriteJob) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	var err error
	if job.Remove {
		err = d.store.Remove(ctx, job.Key)
	} else {
		err = d.store.Set(ctx, job.Key, job.Value)
	}
	if err == nil {
		return
	}

	d.log.Error().Err(err).
		Str("key", job.Key).
		Int("worker_id", id).
		Msg("session write failed")
	if job.OnError != nil {
		job.OnError(err)
	}
}
