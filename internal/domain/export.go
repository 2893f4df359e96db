package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated for every activity on that trip. Trips with no activities yield one
// row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields, repeated for every activity on the trip.
	TripID        string
	TripSlug      string
	Destination   string
	TripStartDate string // "2006-01-02"
	TripEndDate   string // "2006-01-02"
	Status        string
	TripBudget    float64

	// Activity fields, zero values when the trip has no activities.
	ActivityName string
	ActivityDate string // empty when there is no activity
	Location     string
	ActivityType string
	Category     string
	ActivityCost float64
}
