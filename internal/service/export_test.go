package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockTripLister is a hand-written test double for service.TripLister.
type mockTripLister struct {
	list func(ctx context.Context, filter domain.TripFilter) []domain.Trip
}

func (m *mockTripLister) List(ctx context.Context, filter domain.TripFilter) []domain.Trip {
	return m.list(ctx, filter)
}

var _ service.TripLister = (*mockTripLister)(nil)

func TestExportService_Export_Empty(t *testing.T) {
	svc := service.NewExportService(&mockTripLister{
		list: func(_ context.Context, _ domain.TripFilter) []domain.Trip { return []domain.Trip{} },
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_OneRowPerActivity(t *testing.T) {
	ts, _ := newTestService(t)
	ctx := context.Background()
	in := newTrip("Kyoto")
	in.Activities = []domain.Activity{
		{ActivityName: "Temple", Date: domain.NewDate(2025, 6, 2), Location: "Higashiyama", ActivityCost: 10, Type: domain.ActivitySightseeing, Category: "Culture"},
		{ActivityName: "Ramen", Date: domain.NewDate(2025, 6, 3), ActivityCost: 12, Type: domain.ActivityFood},
	}
	kyoto := ts.Create(ctx, in)
	oslo := ts.Create(ctx, newTrip("Oslo"))

	rows, err := service.NewExportService(ts).Export(ctx)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, domain.ExportRow{
		TripID:        kyoto.ID.String(),
		TripSlug:      "kyoto",
		Destination:   "Kyoto",
		TripStartDate: "2025-06-01",
		TripEndDate:   "2025-06-15",
		Status:        "draft",
		TripBudget:    1500,
		ActivityName:  "Temple",
		ActivityDate:  "2025-06-02",
		Location:      "Higashiyama",
		ActivityType:  "sightseeing",
		Category:      "Culture",
		ActivityCost:  10,
	}, rows[0])
	assert.Equal(t, "Ramen", rows[1].ActivityName)
	assert.Equal(t, kyoto.ID.String(), rows[1].TripID)

	// Trip with no activities still appears once, activity fields empty.
	assert.Equal(t, oslo.ID.String(), rows[2].TripID)
	assert.Empty(t, rows[2].ActivityName)
	assert.Empty(t, rows[2].ActivityDate)
	assert.Zero(t, rows[2].ActivityCost)
}
