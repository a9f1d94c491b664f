package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 5 * time.Second
	// opTimeout bounds one session read or write, so a stalled server marks the
	// session degraded instead of hanging the request.
	opTimeout = time.Second
)

// Config locates the Redis instance holding session state.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// TTL is the lifetime of a session key, renewed on every write.
	TTL time.Duration
}

// Backend is the Redis half of the session layer: the value store behind the
// containers and the duplicate-submit guard, sharing one client.
type Backend struct {
	client *redis.Client
	KV     *KVStore
	Guard  *SubmitGuard
}

// Open dials Redis and refuses to start the console until it answers.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}

	return &Backend{
		client: client,
		KV:     NewKVStore(client, cfg.TTL),
		Guard:  NewSubmitGuard(client),
	}, nil
}

// Check backs the readiness route.
func (b *Backend) Check(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Backend) Close() error {
	return b.client.Close()
}
