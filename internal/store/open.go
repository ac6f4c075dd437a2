package store

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver      string
	Dir         string
	RedisURL    string
	RedisPrefix string
	Postgres    PostgresConfig
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured driver. The returned closer releases any
// connection the driver holds.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	switch opts.Driver {
	case "", DriverFile:
		s, err := NewLocalStore(opts.Dir)
		return s, nopCloser{}, err
	case DriverMemory:
		return NewMemoryStore(nil), nopCloser{}, nil
	case DriverRedis:
		redisOpts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(redisOpts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return NewRedisStore(client, opts.RedisPrefix), client, nil
	case DriverPostgres:
		db, err := NewPostgresDB(opts.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return NewPostgresStore(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
