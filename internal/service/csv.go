package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkordes/trip-planner/internal/domain"
)

// CSVHeaders defines the column names written as the first row of any CSV export.
var CSVHeaders = []string{
	"trip_id", "trip_slug", "destination", "trip_start_date", "trip_end_date",
	"status", "trip_budget", "activity_name", "activity_date", "location",
	"activity_type", "category", "activity_cost",
}

// WriteCSV encodes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeaders); err != nil {
		return fmt.Errorf("service.WriteCSV: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(csvRecord(r)); err != nil {
			return fmt.Errorf("service.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("service.WriteCSV: %w", err)
	}
	return nil
}

// csvRecord flattens one row. The activity cost is left blank for trips
// without activities.
func csvRecord(r domain.ExportRow) []string {
	cost := ""
	if r.ActivityName != "" || r.ActivityDate != "" {
		cost = formatAmount(r.ActivityCost)
	}
	return []string{
		r.TripID,
		r.TripSlug,
		r.Destination,
		r.TripStartDate,
		r.TripEndDate,
		r.Status,
		formatAmount(r.TripBudget),
		r.ActivityName,
		r.ActivityDate,
		r.Location,
		r.ActivityType,
		r.Category,
		cost,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
