package insights_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/insights"
)

func spent(v float64) *float64 { return &v }

func TestBudget(t *testing.T) {
	trip := domain.Trip{
		TripBudget: 1000,
		SpentSoFar: spent(250),
		Activities: []domain.Activity{{ActivityCost: 100}, {ActivityCost: 40}},
	}

	got := insights.Budget(trip)

	assert.Equal(t, insights.BudgetSummary{
		Budget:        1000,
		SpentSoFar:    250,
		ActivityTotal: 140,
		Remaining:     750,
		Utilization:   25,
		OverBudget:    false,
	}, got)
}

func TestBudget_ZeroBudgetAndMissingSpend(t *testing.T) {
	got := insights.Budget(domain.Trip{})

	assert.Zero(t, got.Utilization)
	assert.Zero(t, got.SpentSoFar)
	assert.False(t, got.OverBudget)
}

func TestBudget_OverBudget(t *testing.T) {
	got := insights.Budget(domain.Trip{TripBudget: 100, SpentSoFar: spent(120)})

	assert.True(t, got.OverBudget)
	assert.Equal(t, -20.0, got.Remaining)
}

func TestSummarize_CarriesTripIdentity(t *testing.T) {
	trip := domain.Trip{ID: uuid.New(), LastUpdated: today, TripBudget: 10}

	got := insights.Summarize(trip, today)

	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, today, got.LastUpdated)
	assert.Len(t, got.CumulativeSpending, 1)
	assert.NotNil(t, got.CategorySpend)
}

func TestOverview(t *testing.T) {
	trips := []domain.Trip{
		{Slug: "later", Destination: "Later", Status: domain.StatusBooked, TripBudget: 1000, SpentSoFar: spent(100),
			StartDate: domain.NewDate(2024, 4, 1),
			Deadlines: []domain.Deadline{{Completed: false}, {Completed: true}}},
		{Slug: "soon", Destination: "Soon", Status: domain.StatusPlanning, TripBudget: 500,
			StartDate: domain.NewDate(2024, 3, 15)},
		{Slug: "past", Destination: "Past", Status: domain.StatusCompleted, TripBudget: 200, SpentSoFar: spent(200),
			StartDate: domain.NewDate(2024, 1, 1)},
		{Slug: "off", Destination: "Off", Status: domain.StatusCancelled, TripBudget: 9000, SpentSoFar: spent(50),
			StartDate: domain.NewDate(2024, 5, 1),
			Deadlines: []domain.Deadline{{Completed: false}}},
	}

	got := insights.Overview(trips, today)

	assert.Equal(t, 4, got.TotalTrips)
	assert.Equal(t, 1700.0, got.ActiveBudget, "cancelled trips are excluded")
	assert.Equal(t, 300.0, got.TotalSpent)
	assert.Equal(t, 1, got.OpenDeadlines)
	assert.Equal(t, []insights.StatusCount{
		{Status: domain.StatusPlanning, Count: 1},
		{Status: domain.StatusBooked, Count: 1},
		{Status: domain.StatusCompleted, Count: 1},
		{Status: domain.StatusCancelled, Count: 1},
	}, got.ByStatus)

	require.Len(t, got.Upcoming, 2)
	assert.Equal(t, "soon", got.Upcoming[0].Slug)
	assert.Equal(t, 0, got.Upcoming[0].DaysUntil)
	assert.Equal(t, "later", got.Upcoming[1].Slug)
	assert.Equal(t, 17, got.Upcoming[1].DaysUntil)
}

func TestOverview_Empty(t *testing.T) {
	got := insights.Overview(nil, today)

	assert.Zero(t, got.TotalTrips)
	assert.NotNil(t, got.ByStatus)
	assert.NotNil(t, got.Upcoming)
}
