package insights

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// BudgetSummary sets the manually tracked spend beside the sum of activity
// costs. The two are never reconciled; both are shown.
type BudgetSummary struct {
	Budget        float64 `json:"budget"`
	SpentSoFar    float64 `json:"spentSoFar"`
	ActivityTotal float64 `json:"activityTotal"`
	Remaining     float64 `json:"remaining"`
	Utilization   float64 `json:"utilization"` // SpentSoFar as a percentage of Budget
	OverBudget    bool    `json:"overBudget"`
}

// Budget summarises a trip's budget. A missing SpentSoFar counts as 0.
func Budget(t domain.Trip) BudgetSummary {
	var spent float64
	if t.SpentSoFar != nil {
		spent = *t.SpentSoFar
	}
	return BudgetSummary{
		Budget:        t.TripBudget,
		SpentSoFar:    spent,
		ActivityTotal: t.TotalActivityCost(),
		Remaining:     t.TripBudget - spent,
		Utilization:   percent(spent, t.TripBudget),
		OverBudget:    spent > t.TripBudget,
	}
}

// TripInsights bundles every per-trip view for a single response.
type TripInsights struct {
	TripID             uuid.UUID       `json:"tripId"`
	LastUpdated        time.Time       `json:"lastUpdated"`
	Budget             BudgetSummary   `json:"budget"`
	CategorySpend      []NamedValue    `json:"categorySpend"`
	CumulativeSpending []SpendingPoint `json:"cumulativeSpending"`
	ActivityTypes      []TypeShare     `json:"activityTypes"`
	LocationFlow       []FlowEdge      `json:"locationFlow"`
	ChecklistProgress  ChecklistStats  `json:"checklistProgress"`
}

// Summarize computes every per-trip view.
func Summarize(t domain.Trip, today time.Time) TripInsights {
	return TripInsights{
		TripID:             t.ID,
		LastUpdated:        t.LastUpdated,
		Budget:             Budget(t),
		CategorySpend:      CategorySpend(t),
		CumulativeSpending: CumulativeSpending(t, today),
		ActivityTypes:      ActivityTypes(t),
		LocationFlow:       LocationFlow(t),
		ChecklistProgress:  ChecklistProgress(t),
	}
}

// StatusCount is the number of trips in one status.
type StatusCount struct {
	Status domain.Status `json:"status"`
	Count  int           `json:"count"`
}

// UpcomingTrip is a trip that has not started yet.
type UpcomingTrip struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Destination string        `json:"destination"`
	StartDate   domain.Date   `json:"startDate"`
	Status      domain.Status `json:"status"`
	DaysUntil   int           `json:"daysUntil"`
}

// PortfolioOverview summarises the whole collection for the dashboard.
type PortfolioOverview struct {
	TotalTrips    int            `json:"totalTrips"`
	ByStatus      []StatusCount  `json:"byStatus"`
	Upcoming      []UpcomingTrip `json:"upcoming"`
	ActiveBudget  float64        `json:"activeBudget"` // sum of budgets of trips that are not cancelled
	TotalSpent    float64        `json:"totalSpent"`
	OpenDeadlines int            `json:"openDeadlines"`
}

// Overview summarises trips as of today. Cancelled trips are counted by
// status but excluded from the budget totals and from Upcoming. Upcoming is
// ordered by start date, then destination.
func Overview(trips []domain.Trip, today time.Time) PortfolioOverview {
	day := domain.DateOf(today).Time
	ov := PortfolioOverview{
		TotalTrips: len(trips),
		ByStatus:   []StatusCount{},
		Upcoming:   []UpcomingTrip{},
	}

	counts := map[domain.Status]int{}
	for _, t := range trips {
		counts[t.Status]++
		if t.Status == domain.StatusCancelled {
			continue
		}
		ov.ActiveBudget += t.TripBudget
		if t.SpentSoFar != nil {
			ov.TotalSpent += *t.SpentSoFar
		}
		for _, d := range t.Deadlines {
			if !d.Completed {
				ov.OpenDeadlines++
			}
		}
		start := domain.DateOf(t.StartDate.Time).Time
		if start.Before(day) || t.Status == domain.StatusCompleted {
			continue
		}
		ov.Upcoming = append(ov.Upcoming, UpcomingTrip{
			ID:          t.ID,
			Slug:        t.Slug,
			Destination: t.Destination,
			StartDate:   t.StartDate,
			Status:      t.Status,
			DaysUntil:   int(start.Sub(day).Hours() / 24),
		})
	}

	for _, s := range domain.Statuses {
		if counts[s] > 0 {
			ov.ByStatus = append(ov.ByStatus, StatusCount{Status: s, Count: counts[s]})
		}
	}
	sort.SliceStable(ov.Upcoming, func(i, j int) bool {
		a, b := ov.Upcoming[i], ov.Upcoming[j]
		if !a.StartDate.Equal(b.StartDate.Time) {
			return a.StartDate.Before(b.StartDate.Time)
		}
		return a.Destination < b.Destination
	})
	return ov
}
