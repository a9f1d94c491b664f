package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	appName     = "pirates-console"
	dialTimeout = 10 * time.Second
	opTimeout   = 2 * time.Second
)

// Config selects the database holding the session collection.
type Config struct {
	URI         string
	Database    string
	MaxPoolSize uint64
	// TTL is the lifetime of a session document, renewed on every write.
	TTL time.Duration
}

// Backend is the MongoDB session store with its client.
type Backend struct {
	client *mongo.Client
	db     *mongo.Database
	KV     *KVStore
}

// Open connects, waits for the primary and makes sure the expiry index on the
// session collection exists.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetTimeout(opTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	kv := NewKVStore(db, cfg.TTL)
	if err := kv.EnsureIndexes(dialCtx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return &Backend{client: client, db: db, KV: kv}, nil
}

// Check backs the readiness route.
func (b *Backend) Check(ctx context.Context) error {
	return b.client.Ping(ctx, readpref.Primary())
}

func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
