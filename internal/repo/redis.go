package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisBlobRepo stores each key as a plain Redis string under prefix+key.
type redisBlobRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisBlobRepo constructs a BlobRepo on top of client. prefix namespaces
// the keys, e.g. "tripplanner:".
func NewRedisBlobRepo(client *redis.Client, prefix string) BlobRepo {
	return &redisBlobRepo{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (r *redisBlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("repo.RedisBlobRepo.Get: %w", err)
	}
	return v, nil
}

// Put stores value under key with no expiry.
func (r *redisBlobRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisBlobRepo.Put: %w", err)
	}
	return nil
}
