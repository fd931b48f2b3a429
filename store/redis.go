package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces interpose keys inside a shared Redis database.
const DefaultPrefix = "interpose:store"

// RedisStore implements the Store interface on top of a Redis database,
// letting concurrent server instances share sessions and tokens. Entry
// expiration is delegated to Redis TTLs.
type RedisStore struct {
	Prefix  string
	MaxAge  time.Duration
	options *redis.Options
	rdb     *redis.Client
}

// NewRedisStore creates a RedisStore connecting with the given options.
func NewRedisStore(options *redis.Options) *RedisStore {
	return &RedisStore{
		Prefix:  DefaultPrefix,
		MaxAge:  DefaultMaxAge,
		options: options,
	}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.Prefix, id)
}

// Start initializes the connection to Redis.
func (s *RedisStore) Start(ctx context.Context) error {
	rdb := redis.NewClient(s.options)
	// TODO: think about ways to backoff from redis connection errors
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}
	s.rdb = rdb
	return nil
}

// Stop closes the Redis connection.
func (s *RedisStore) Stop(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// Delete removes any entry for the given id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

// Exists returns true if the id is present in Redis.
func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get retrieves the value for the given id. Returns ErrNotFound if absent.
func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

// GetString retrieves the string value for the given id.
func (s *RedisStore) GetString(ctx context.Context, id string) (string, error) {
	val, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// Set saves or updates a value for the given id with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, id string, val []byte) error {
	return s.rdb.Set(ctx, s.key(id), val, s.MaxAge).Err()
}

// SetString stores a string value as bytes.
func (s *RedisStore) SetString(ctx context.Context, id string, val string) error {
	return s.Set(ctx, id, []byte(val))
}

// Touch renews the entry's TTL for sliding expiration.
func (s *RedisStore) Touch(ctx context.Context, id string) error {
	ok, err := s.rdb.Expire(ctx, s.key(id), s.MaxAge).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Purge is a no-op: Redis expires keys natively.
func (s *RedisStore) Purge(ctx context.Context) error {
	return nil
}
