// Package repo contains all persistence logic for the trip planner.
// The whole trip collection lives under a single key in a key-value blob
// backend; each backend has its own file implementing BlobRepo.
// No business logic lives here, only storage and encoding.
package repo

import (
	"context"
	"errors"
	"sync"
)

// ErrBlobNotFound is returned by BlobRepo.Get when the key has never been
// written. It is distinct from domain.ErrNotFound: a missing blob simply
// means an empty collection.
var ErrBlobNotFound = errors.New("blob not found")

// BlobRepo stores opaque values by key. Every write replaces the whole value;
// there are no partial updates and no versioning, so the last writer wins.
type BlobRepo interface {
	// Get returns the value stored under key, or ErrBlobNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// memoryBlobRepo keeps values in process memory. Used by tests and by the
// "memory" storage driver.
type memoryBlobRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobRepo constructs an empty in-memory BlobRepo.
func NewMemoryBlobRepo() BlobRepo {
	return &memoryBlobRepo{blobs: make(map[string][]byte)}
}

func (r *memoryBlobRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *memoryBlobRepo) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), value...)
	return nil
}
