package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripsKey is the single key holding the whole JSON-encoded trip collection.
const TripsKey = "trips"

// TripRepo loads and saves the entire trip collection at once.
// The service layer depends on this interface, not on a particular backend,
// which allows the store to be unit-tested with a mock.
type TripRepo interface {
	// Load returns every persisted trip in storage order. A collection that
	// was never saved yields an empty slice and no error.
	Load(ctx context.Context) ([]domain.Trip, error)

	// Save replaces the persisted collection with trips.
	Save(ctx context.Context, trips []domain.Trip) error
}

// blobTripRepo encodes the collection as a JSON array under TripsKey.
type blobTripRepo struct {
	blobs BlobRepo
}

// NewTripRepo constructs a TripRepo on top of any BlobRepo backend.
func NewTripRepo(blobs BlobRepo) TripRepo {
	return &blobTripRepo{blobs: blobs}
}

// Load decodes the collection. Corrupt (non-JSON) content is reported as an
// error so the caller can decide to start empty.
func (r *blobTripRepo) Load(ctx context.Context) ([]domain.Trip, error) {
	data, err := r.blobs.Get(ctx, TripsKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return []domain.Trip{}, nil
		}
		return nil, fmt.Errorf("repo.TripRepo.Load: %w", err)
	}

	var trips []domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Load: decode: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Save encodes the collection and writes it in one Put.
func (r *blobTripRepo) Save(ctx context.Context, trips []domain.Trip) error {
	if trips == nil {
		trips = []domain.Trip{}
	}
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Save: encode: %w", err)
	}
	if err := r.blobs.Put(ctx, TripsKey, data); err != nil {
		return fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return nil
}
