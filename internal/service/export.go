package service

import (
	"context"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripLister is the read side of TripService that ExportService needs.
type TripLister interface {
	List(ctx context.Context, filter domain.TripFilter) []domain.Trip
}

// ExportService assembles a flat export of all trips and their activities.
type ExportService struct {
	trips TripLister
}

// NewExportService constructs an ExportService reading from trips.
func NewExportService(trips TripLister) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per activity across all trips, in storage
// order. Trips with no activities contribute one row with empty activity
// fields. Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	for _, t := range s.trips.List(ctx, domain.TripFilter{}) {
		base := domain.ExportRow{
			TripID:        t.ID.String(),
			TripSlug:      t.Slug,
			Destination:   t.Destination,
			TripStartDate: t.StartDate.String(),
			TripEndDate:   t.EndDate.String(),
			Status:        string(t.Status),
			TripBudget:    t.TripBudget,
		}
		if len(t.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range t.Activities {
			row := base
			row.ActivityName = a.ActivityName
			row.ActivityDate = a.Date.String()
			row.Location = a.Location
			row.ActivityType = string(a.Type)
			row.Category = a.Category
			row.ActivityCost = a.ActivityCost
			rows = append(rows, row)
		}
	}
	return rows, nil
}
