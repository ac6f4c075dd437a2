package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/clinic-admin/pkg/circuitbreaker"
)

const DefaultRedisPrefix = "clinic:store:"

type redisStore struct {
	client *redis.Client
	prefix string
	cb     *circuitbreaker.CircuitBreaker
}

// NewRedisStore keeps each collection as a single string value under
// prefix+name. Calls fail fast while the breaker is open.
func NewRedisStore(client *redis.Client, prefix string) Store {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &redisStore{
		client: client,
		prefix: prefix,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-store",
			MaxFailures: 5,
			Timeout:     5 * time.Second,
			IsFailure:   func(err error) bool { return !errors.Is(err, ErrNoObject) },
		}),
	}
}

func (s *redisStore) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.cb.Execute(func() error {
		b, err := s.client.Get(ctx, s.prefix+name).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNoObject
		}
		data = b
		return err
	})
	return data, err
}

func (s *redisStore) Put(ctx context.Context, name string, data []byte) error {
	return s.cb.Execute(func() error {
		return s.client.Set(ctx, s.prefix+name, data, 0).Err()
	})
}
