// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (repo, service, insights,
// timeline, handler) and holds no I/O.
package domain

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Date is a calendar date that travels as "2006-01-02" on the wire and in the
// persisted blob.
type Date = openapi_types.Date

// DateFormat is the layout used for every Date field.
const DateFormat = openapi_types.DateFormat

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Status is the lifecycle state of a trip.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPlanning   Status = "planning"
	StatusBooked     Status = "booked"
	StatusRelocating Status = "relocating"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusDraft, StatusPlanning, StatusBooked, StatusRelocating,
	StatusInProgress, StatusCompleted, StatusCancelled,
}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Trip is the root aggregate. Activities, key events, deadlines and checklists
// exist only inside their trip and are mutated through trip-scoped operations.
type Trip struct {
	ID                 uuid.UUID   `json:"id"`
	Slug               string      `json:"slug"`
	Destination        string      `json:"destination"`
	StartDate          Date        `json:"startDate"`
	EndDate            Date        `json:"endDate"`
	Status             Status      `json:"status"`
	TripBudget         float64     `json:"tripBudget"`
	SpentSoFar         *float64    `json:"spentSoFar,omitempty"`
	Activities         []Activity  `json:"activities"`
	KeyEvents          []KeyEvent  `json:"keyEvents"`
	Deadlines          []Deadline  `json:"deadlines"`
	Checklists         []Checklist `json:"checklists"`
	NumberOfTravelers  int         `json:"numberOfTravelers"`
	TravelMode         string      `json:"travelMode,omitempty"`
	HolidayPreferences []string    `json:"holidayPreferences"`
	FlexibleDates      bool        `json:"flexibleDates"`
	RelocationPlan     bool        `json:"relocationPlan"`
	Notes              string      `json:"notes,omitempty"`
	LastUpdated        time.Time   `json:"lastUpdated"`
}

// NewTrip is the caller-supplied part of a trip. The store assigns ID, Slug
// and LastUpdated, and defaults Status, SpentSoFar and the child lists.
type NewTrip struct {
	Destination        string      `json:"destination"`
	StartDate          Date        `json:"startDate"`
	EndDate            Date        `json:"endDate"`
	Status             Status      `json:"status,omitempty"`
	TripBudget         float64     `json:"tripBudget"`
	SpentSoFar         *float64    `json:"spentSoFar,omitempty"`
	Activities         []Activity  `json:"activities,omitempty"`
	KeyEvents          []KeyEvent  `json:"keyEvents,omitempty"`
	Deadlines          []Deadline  `json:"deadlines,omitempty"`
	Checklists         []Checklist `json:"checklists,omitempty"`
	NumberOfTravelers  int         `json:"numberOfTravelers"`
	TravelMode         string      `json:"travelMode,omitempty"`
	HolidayPreferences []string    `json:"holidayPreferences,omitempty"`
	FlexibleDates      bool        `json:"flexibleDates"`
	RelocationPlan     bool        `json:"relocationPlan"`
	Notes              string      `json:"notes,omitempty"`
}

// TripPatch is a shallow partial update. Nil fields are left untouched; a
// non-nil slice replaces the whole list, it is never merged element-wise.
type TripPatch struct {
	Destination        *string      `json:"destination,omitempty"`
	StartDate          *Date        `json:"startDate,omitempty"`
	EndDate            *Date        `json:"endDate,omitempty"`
	Status             *Status      `json:"status,omitempty"`
	TripBudget         *float64     `json:"tripBudget,omitempty"`
	SpentSoFar         *float64     `json:"spentSoFar,omitempty"`
	Activities         *[]Activity  `json:"activities,omitempty"`
	KeyEvents          *[]KeyEvent  `json:"keyEvents,omitempty"`
	Deadlines          *[]Deadline  `json:"deadlines,omitempty"`
	Checklists         *[]Checklist `json:"checklists,omitempty"`
	NumberOfTravelers  *int         `json:"numberOfTravelers,omitempty"`
	TravelMode         *string      `json:"travelMode,omitempty"`
	HolidayPreferences *[]string    `json:"holidayPreferences,omitempty"`
	FlexibleDates      *bool        `json:"flexibleDates,omitempty"`
	RelocationPlan     *bool        `json:"relocationPlan,omitempty"`
	Notes              *string      `json:"notes,omitempty"`
}

// Apply copies every non-nil field of p onto t. Slug and LastUpdated are the
// store's responsibility and are not touched here.
func (p TripPatch) Apply(t *Trip) {
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.TripBudget != nil {
		t.TripBudget = *p.TripBudget
	}
	if p.SpentSoFar != nil {
		v := *p.SpentSoFar
		t.SpentSoFar = &v
	}
	if p.Activities != nil {
		t.Activities = append([]Activity{}, *p.Activities...)
	}
	if p.KeyEvents != nil {
		t.KeyEvents = append([]KeyEvent{}, *p.KeyEvents...)
	}
	if p.Deadlines != nil {
		t.Deadlines = append([]Deadline{}, *p.Deadlines...)
	}
	if p.Checklists != nil {
		t.Checklists = cloneChecklists(*p.Checklists)
	}
	if p.NumberOfTravelers != nil {
		t.NumberOfTravelers = *p.NumberOfTravelers
	}
	if p.TravelMode != nil {
		t.TravelMode = *p.TravelMode
	}
	if p.HolidayPreferences != nil {
		t.HolidayPreferences = append([]string{}, *p.HolidayPreferences...)
	}
	if p.FlexibleDates != nil {
		t.FlexibleDates = *p.FlexibleDates
	}
	if p.RelocationPlan != nil {
		t.RelocationPlan = *p.RelocationPlan
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}

// Clone returns a deep copy of t so callers can never alias store state.
func (t Trip) Clone() Trip {
	c := t
	if t.SpentSoFar != nil {
		v := *t.SpentSoFar
		c.SpentSoFar = &v
	}
	c.Activities = cloneSlice(t.Activities)
	c.KeyEvents = cloneSlice(t.KeyEvents)
	c.Deadlines = cloneSlice(t.Deadlines)
	c.Checklists = cloneChecklists(t.Checklists)
	c.HolidayPreferences = cloneSlice(t.HolidayPreferences)
	return c
}

// TotalActivityCost sums ActivityCost over every activity.
func (t Trip) TotalActivityCost() float64 {
	var total float64
	for _, a := range t.Activities {
		total += a.ActivityCost
	}
	return total
}

// cloneSlice copies s, keeping nil as nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneChecklists(in []Checklist) []Checklist {
	if in == nil {
		return nil
	}
	out := make([]Checklist, len(in))
	for i, c := range in {
		out[i] = c
		out[i].Items = cloneSlice(c.Items)
		if c.DueDate != nil {
			d := *c.DueDate
			out[i].DueDate = &d
		}
	}
	return out
}
