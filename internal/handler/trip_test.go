package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs. The nested entity methods come
// from the nil embedded interface and panic if called; they are exercised
// against a real in-memory store in children_test.go.
type mockTripServicer struct {
	handler.TripServicer

	list   func(ctx context.Context, filter domain.TripFilter) []domain.Trip
	get    func(ctx context.Context, ref string) (domain.Trip, error)
	create func(ctx context.Context, in domain.NewTrip) domain.Trip
	update func(ctx context.Context, ref string, patch domain.TripPatch, check func(domain.Trip) error) (domain.Trip, error)
	delete func(ctx context.Context, ref string) bool
}

func (m *mockTripServicer) List(ctx context.Context, f domain.TripFilter) []domain.Trip {
	return m.list(ctx, f)
}
func (m *mockTripServicer) Get(ctx context.Context, ref string) (domain.Trip, error) {
	return m.get(ctx, ref)
}
func (m *mockTripServicer) Create(ctx context.Context, in domain.NewTrip) domain.Trip {
	return m.create(ctx, in)
}
func (m *mockTripServicer) UpdateChecked(ctx context.Context, ref string, p domain.TripPatch, check func(domain.Trip) error) (domain.Trip, error) {
	return m.update(ctx, ref, p, check)
}
func (m *mockTripServicer) Delete(ctx context.Context, ref string) bool {
	return m.delete(ctx, ref)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

// newHTTPHandler wires a Server with the given store into its chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.TripServicer, opts ...handler.Option) http.Handler {
	opts = append([]handler.Option{handler.WithClock(func() time.Time { return fixedNow })}, opts...)
	return handler.NewServer(svc, service.NewExportService(svc), opts...).Routes()
}

// newStore returns a real, initialised in-memory store.
func newStore(t *testing.T) *service.TripService {
	t.Helper()
	svc := service.NewTripService(repo.NewTripRepo(repo.NewMemoryBlobRepo()),
		service.WithClock(func() time.Time { return fixedNow }))
	svc.Init(context.Background())
	return svc
}

func tripFixture() domain.Trip {
	spent := 0.0
	return domain.Trip{
		ID:                 uuid.New(),
		Slug:               "lisbon",
		Destination:        "Lisbon",
		StartDate:          domain.NewDate(2025, 6, 1),
		EndDate:            domain.NewDate(2025, 6, 15),
		Status:             domain.StatusPlanning,
		TripBudget:         2000,
		SpentSoFar:         &spent,
		Activities:         []domain.Activity{},
		KeyEvents:          []domain.KeyEvent{},
		Deadlines:          []domain.Deadline{},
		Checklists:         []domain.Checklist{},
		HolidayPreferences: []string{"food"},
		LastUpdated:        fixedNow,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.NewTrip
	svc := &mockTripServicer{
		create: func(_ context.Context, in domain.NewTrip) domain.Trip {
			got = in
			return fixture
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPost, "/trips", map[string]any{
		"destination": "Lisbon",
		"startDate":   "2025-06-01",
		"endDate":     "2025-06-15",
		"tripBudget":  2000,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Lisbon", got.Destination)
	assert.Equal(t, "2025-06-01", got.StartDate.String())

	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, "lisbon", resp.Slug)
}

func TestCreateTrip_422_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{
			name:    "missing destination",
			body:    map[string]any{"startDate": "2025-06-01", "endDate": "2025-06-02", "tripBudget": 1},
			message: "destination is required",
		},
		{
			name:    "end before start",
			body:    map[string]any{"destination": "X", "startDate": "2025-06-02", "endDate": "2025-06-01", "tripBudget": 1},
			message: "endDate must not be before startDate",
		},
		{
			name:    "unknown status",
			body:    map[string]any{"destination": "X", "startDate": "2025-06-01", "endDate": "2025-06-02", "status": "dreaming"},
			message: `status "dreaming" is not valid`,
		},
		{
			name:    "negative budget",
			body:    map[string]any{"destination": "X", "startDate": "2025-06-01", "endDate": "2025-06-02", "tripBudget": -5},
			message: "tripBudget must not be negative",
		},
		{
			name: "invalid nested activity",
			body: map[string]any{"destination": "X", "startDate": "2025-06-01", "endDate": "2025-06-02",
				"activities": []map[string]any{{"activityName": "A", "type": "karaoke"}}},
			message: `activity type "karaoke" is not valid`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// create must never be reached; a nil func would panic.
			rec := do(t, newHTTPHandler(&mockTripServicer{}), http.MethodPost, "/trips", tc.body)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, "validation_error", detail.Code)
			assert.Equal(t, tc.message, detail.Message)
		})
	}
}

func TestCreateTrip_422_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString(`{"destination":`))
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTripServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "malformed request body")
}

func TestCreateTrip_422_MissingBody(t *testing.T) {
	rec := do(t, newHTTPHandler(&mockTripServicer{}), http.MethodPost, "/trips", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "request body is required", decodeError(t, rec).Message)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200_BindsFilters(t *testing.T) {
	var got domain.TripFilter
	svc := &mockTripServicer{
		list: func(_ context.Context, f domain.TripFilter) []domain.Trip {
			got = f
			return []domain.Trip{tripFixture()}
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet,
		"/trips?status=booked&minBudget=1000&maxBudget=2500.5&startDate=2025-01-01&destination=lis&holidayPreferences=food,beach", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Status)
	assert.Equal(t, domain.StatusBooked, *got.Status)
	require.NotNil(t, got.MinBudget)
	assert.Equal(t, 1000.0, *got.MinBudget)
	assert.Equal(t, 2500.5, *got.MaxBudget)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-01-01", got.StartDate.String())
	assert.Nil(t, got.EndDate)
	assert.Equal(t, "lis", got.Destination)
	assert.Equal(t, []string{"food", "beach"}, got.HolidayPreferences)

	var trips []domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trips))
	assert.Len(t, trips, 1)
}

func TestListTrips_200_NoFilters(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, f domain.TripFilter) []domain.Trip {
			assert.True(t, f.IsZero())
			return []domain.Trip{}
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTrips_422_BadFilter(t *testing.T) {
	for _, q := range []string{"status=dreaming", "minBudget=lots", "startDate=yesterday"} {
		rec := do(t, newHTTPHandler(&mockTripServicer{}), http.MethodGet, "/trips?"+q, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, q)
	}
}

// ---- GET /trips/{ref} ------------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		get: func(_ context.Context, ref string) (domain.Trip, error) {
			assert.Equal(t, "lisbon", ref)
			return fixture, nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/trips/lisbon", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		get: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/trips/nowhere", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "not_found", detail.Code)
	assert.Equal(t, "trip not found", detail.Message)
}

func TestGetTrip_500_UnexpectedError(t *testing.T) {
	svc := &mockTripServicer{
		get: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, errors.New("boom")
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/trips/x", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Code)
}

// ---- PATCH /trips/{ref} ----------------------------------------------------

func TestUpdateTrip_200(t *testing.T) {
	fixture := tripFixture()
	var got domain.TripPatch
	svc := &mockTripServicer{
		update: func(_ context.Context, ref string, p domain.TripPatch, check func(domain.Trip) error) (domain.Trip, error) {
			got = p
			out := fixture
			p.Apply(&out)
			return out, check(out)
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPatch, "/trips/lisbon", map[string]any{"status": "booked"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Status)
	assert.Equal(t, domain.StatusBooked, *got.Status)
	assert.Nil(t, got.Destination, "absent fields stay nil in the patch")

	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.StatusBooked, resp.Status)
}

func TestUpdateTrip_422_ValidatedAgainstStoredTrip(t *testing.T) {
	fixture := tripFixture() // starts 2025-06-01
	svc := &mockTripServicer{
		update: func(_ context.Context, _ string, p domain.TripPatch, check func(domain.Trip) error) (domain.Trip, error) {
			merged := fixture
			p.Apply(&merged)
			if err := check(merged); err != nil {
				return domain.Trip{}, fmt.Errorf("service.TripService.update: %w", err)
			}
			return merged, nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPatch, "/trips/lisbon", map[string]any{"endDate": "2025-05-01"})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "endDate must not be before startDate", decodeError(t, rec).Message)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ string, _ domain.TripPatch, _ func(domain.Trip) error) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPatch, "/trips/ghost", map[string]any{"notes": "x"})

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestUpdateTrip_ConcurrentPatchesKeepRecordValid sends one PATCH that moves
// the start later and one that moves the end earlier. Each is valid on its
// own against the original record; together they would invert the dates.
// Whichever lands second must be checked against the first one's result.
func TestUpdateTrip_ConcurrentPatchesKeepRecordValid(t *testing.T) {
	store := newStore(t)
	h := newHTTPHandler(store)
	createTrip(t, h, "Kyoto") // 2025-06-01 .. 2025-06-10

	var wg sync.WaitGroup
	codes := make([]int, 2)
	bodies := []map[string]any{{"startDate": "2025-06-08"}, {"endDate": "2025-06-04"}}
	for i, body := range bodies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = do(t, h, http.MethodPatch, "/trips/kyoto", body).Code
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusUnprocessableEntity}, codes)
	got, err := store.Get(context.Background(), "kyoto")
	require.NoError(t, err)
	assert.False(t, got.EndDate.Before(got.StartDate.Time), "stored record has end before start")
}

// ---- DELETE /trips/{ref} ---------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{delete: func(_ context.Context, _ string) bool { return true }}

	rec := do(t, newHTTPHandler(svc), http.MethodDelete, "/trips/lisbon", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{delete: func(_ context.Context, _ string) bool { return false }}

	rec := do(t, newHTTPHandler(svc), http.MethodDelete, "/trips/lisbon", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- end to end against the in-memory store --------------------------------

func TestTrips_CreateThenFetchBySlug(t *testing.T) {
	h := newHTTPHandler(newStore(t))

	rec := do(t, h, http.MethodPost, "/trips", map[string]any{
		"destination": "São Paulo", "startDate": "2025-07-01", "endDate": "2025-07-05", "tripBudget": 800,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "sao-paulo", created.Slug)
	assert.Equal(t, domain.StatusDraft, created.Status)

	rec = do(t, h, http.MethodGet, "/trips/sao-paulo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)

	rec = do(t, h, http.MethodDelete, "/trips/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/trips/sao-paulo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
