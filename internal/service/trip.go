// Package service contains the business logic for the trip planner.
// TripService is the sole authority over the persisted trip collection: every
// read and write goes through it, and callers never touch the stored blob.
// No storage encoding lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/slug"
)

// TripService implements the trip store.
//
// The whole collection is held in memory and written back in full after each
// mutation. Write failures are logged and counted but never returned: the
// caller still receives the in-memory result, which is then lost on restart.
// Not-found is the only error any operation returns.
//
// A mutex serialises operations within the process. Separate processes
// sharing one backend are not coordinated; the last write wins.
type TripService struct {
	repo    repo.TripRepo
	log     *slog.Logger
	metrics *metrics.Instruments
	now     func() time.Time
	newID   func() uuid.UUID
	seed    func(today time.Time) []domain.NewTrip

	mu    sync.RWMutex
	trips []domain.Trip
}

// Option customises a TripService.
type Option func(*TripService)

// WithLogger sets the logger used for persistence failures and startup.
func WithLogger(l *slog.Logger) Option {
	return func(s *TripService) { s.log = l }
}

// WithMetrics sets the instruments the store records into.
func WithMetrics(m *metrics.Instruments) Option {
	return func(s *TripService) { s.metrics = m }
}

// WithClock overrides time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *TripService) { s.now = now }
}

// WithIDGenerator overrides uuid.New.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *TripService) { s.newID = gen }
}

// WithSeed makes Init populate an empty collection with the trips returned by
// seed.
func WithSeed(seed func(today time.Time) []domain.NewTrip) Option {
	return func(s *TripService) { s.seed = seed }
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// Call Init before serving any request.
func NewTripService(r repo.TripRepo, opts ...Option) *TripService {
	s := &TripService{
		repo:    r,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: metrics.Noop(),
		now:     time.Now,
		newID:   uuid.New,
		trips:   []domain.Trip{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitReport describes what Init found and changed.
type InitReport struct {
	Loaded     int  // trips read from the backend
	Backfilled int  // trips that needed missing fields filled in
	Seeded     int  // sample trips added to an empty collection
	LoadFailed bool // the backend could not be read; the store started empty
}

// Init loads the collection, backfills fields missing from older data,
// optionally seeds an empty collection, and persists the result if anything
// changed. A read failure is logged and the store starts empty.
func (s *TripService) Init(ctx context.Context) InitReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report InitReport
	trips, err := s.repo.Load(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "load trips failed; starting with an empty collection", "error", err)
		trips = []domain.Trip{}
		report.LoadFailed = true
	}
	report.Loaded = len(trips)
	s.trips = trips

	report.Backfilled = s.migrateTrips()

	if len(s.trips) == 0 && s.seed != nil && !report.LoadFailed {
		for _, in := range s.seed(s.now()) {
			s.trips = append(s.trips, s.buildTrip(in))
			report.Seeded++
		}
	}

	if report.Backfilled > 0 || report.Seeded > 0 {
		s.persist(ctx, "init")
	}
	s.log.InfoContext(ctx, "trip store ready",
		"loaded", report.Loaded,
		"backfilled", report.Backfilled,
		"seeded", report.Seeded,
	)
	return report
}

// List returns every trip matching filter, in storage order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(_ context.Context, filter domain.TripFilter) []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Trip{}
	for _, t := range s.trips {
		if filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns the trip whose ID or slug equals ref.
// Returns domain.ErrNotFound if neither matches.
func (s *TripService) Get(_ context.Context, ref string) (domain.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(ref)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: trip %q: %w", ref, domain.ErrNotFound)
	}
	return s.trips[i].Clone(), nil
}

// Create assigns an ID and a unique slug, applies defaults, persists and
// returns the full record. The input is not validated.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.buildTrip(in)
	s.trips = append(s.trips, t)
	s.persist(ctx, "create")
	s.metrics.RecordMutation(ctx, "create")
	return t.Clone()
}

// Update shallow-merges patch onto the trip found by ref. The slug is
// re-derived only when the destination actually changes.
// Returns domain.ErrNotFound if no trip matches.
func (s *TripService) Update(ctx context.Context, ref string, patch domain.TripPatch) (domain.Trip, error) {
	return s.UpdateChecked(ctx, ref, patch, nil)
}

// UpdateChecked is Update with check run against the merged record while
// the store is locked, so no concurrent write can slip between the check
// and the swap. If check returns an error nothing changes and the error is
// returned wrapped. A nil check accepts every record.
func (s *TripService) UpdateChecked(ctx context.Context, ref string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, error) {
	return s.mutateTrip(ctx, "update", ref, func(t *domain.Trip) error {
		oldDestination := t.Destination
		patch.Apply(t)
		if t.Destination != oldDestination {
			t.Slug = slug.GenerateUnique(slug.Slugify(t.Destination), s.slugsExcept(t.ID))
		}
		s.ensureChildIDs(t)
		if check != nil {
			return check(t.Clone())
		}
		return nil
	})
}

// Delete removes the trip found by ref together with all of its children.
// Reports whether a trip was removed.
func (s *TripService) Delete(ctx context.Context, ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(ref)
	if i < 0 {
		return false
	}
	s.trips = append(s.trips[:i], s.trips[i+1:]...)
	s.persist(ctx, "delete")
	s.metrics.RecordMutation(ctx, "delete")
	return true
}

// buildTrip turns caller input into a complete record. Caller must hold mu.
func (s *TripService) buildTrip(in domain.NewTrip) domain.Trip {
	t := domain.Trip{
		ID:                 s.uniqueTripID(),
		Destination:        in.Destination,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		Status:             in.Status,
		TripBudget:         in.TripBudget,
		SpentSoFar:         in.SpentSoFar,
		Activities:         in.Activities,
		KeyEvents:          in.KeyEvents,
		Deadlines:          in.Deadlines,
		Checklists:         in.Checklists,
		NumberOfTravelers:  in.NumberOfTravelers,
		TravelMode:         in.TravelMode,
		HolidayPreferences: in.HolidayPreferences,
		FlexibleDates:      in.FlexibleDates,
		RelocationPlan:     in.RelocationPlan,
		Notes:              in.Notes,
	}
	t = t.Clone()
	if t.Status == "" {
		t.Status = domain.StatusDraft
	}
	if t.SpentSoFar == nil {
		zero := 0.0
		t.SpentSoFar = &zero
	}
	fillEmptyLists(&t)
	s.ensureChildIDs(&t)
	t.Slug = slug.GenerateUnique(slug.Slugify(t.Destination), s.slugsExcept(uuid.Nil))
	t.LastUpdated = s.stamp(time.Time{})
	return t
}

// mutateTrip applies fn to a copy of the trip found by ref, stamps
// LastUpdated, swaps the copy in and persists. If fn fails nothing changes.
func (s *TripService) mutateTrip(ctx context.Context, op, ref string, fn func(t *domain.Trip) error) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(ref)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: trip %q: %w", op, ref, domain.ErrNotFound)
	}

	working := s.trips[i].Clone()
	if err := fn(&working); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	fillEmptyLists(&working)
	working.LastUpdated = s.stamp(working.LastUpdated)
	s.trips[i] = working

	s.persist(ctx, op)
	s.metrics.RecordMutation(ctx, op)
	return working.Clone(), nil
}

// persistTimeout bounds a single write of the collection.
const persistTimeout = 10 * time.Second

// persist writes the whole collection. Failures are logged and swallowed.
// The write is detached from ctx's cancellation: a mutation already applied
// in memory is written even if the caller has gone away.
// Caller must hold mu.
func (s *TripService) persist(ctx context.Context, op string) {
	snapshot := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		snapshot[i] = t.Clone()
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	start := time.Now()
	err := s.repo.Save(saveCtx, snapshot)
	s.metrics.RecordPersist(ctx, op, time.Since(start), err)
	if err != nil {
		s.log.ErrorContext(ctx, "persist trips failed; change kept in memory only",
			"op", op,
			"trips", len(snapshot),
			"error", err,
		)
	}
}

// indexOf finds a trip by ID first, then by slug. Caller must hold mu.
func (s *TripService) indexOf(ref string) int {
	if id, err := uuid.Parse(ref); err == nil {
		for i, t := range s.trips {
			if t.ID == id {
				return i
			}
		}
	}
	for i, t := range s.trips {
		if t.Slug == ref {
			return i
		}
	}
	return -1
}

// slugsExcept lists the slugs of every trip other than id. Caller must hold mu.
func (s *TripService) slugsExcept(id uuid.UUID) []string {
	out := make([]string, 0, len(s.trips))
	for _, t := range s.trips {
		if id != uuid.Nil && t.ID == id {
			continue
		}
		out = append(out, t.Slug)
	}
	return out
}

// stamp returns the current time, nudged forward so it is strictly after prev
// even when the clock has not advanced.
func (s *TripService) stamp(prev time.Time) time.Time {
	now := s.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// uniqueTripID draws IDs until one is unused. Caller must hold mu.
func (s *TripService) uniqueTripID() uuid.UUID {
	for {
		id := s.newID()
		if id != uuid.Nil && s.indexOf(id.String()) < 0 {
			return id
		}
	}
}

func fillEmptyLists(t *domain.Trip) {
	if t.Activities == nil {
		t.Activities = []domain.Activity{}
	}
	if t.KeyEvents == nil {
		t.KeyEvents = []domain.KeyEvent{}
	}
	if t.Deadlines == nil {
		t.Deadlines = []domain.Deadline{}
	}
	if t.Checklists == nil {
		t.Checklists = []domain.Checklist{}
	}
	for i := range t.Checklists {
		if t.Checklists[i].Items == nil {
			t.Checklists[i].Items = []domain.ChecklistItem{}
		}
	}
	if t.HolidayPreferences == nil {
		t.HolidayPreferences = []string{}
	}
}
