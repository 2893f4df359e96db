package domain

import "strings"

// TripFilter narrows a trip listing. A nil or empty field places no
// constraint on that dimension; present fields are combined with AND.
type TripFilter struct {
	Status             *Status
	StartDate          *Date // trip.StartDate must be on or after this day
	EndDate            *Date // trip.EndDate must be on or before this day
	Destination        string
	MinBudget          *float64
	MaxBudget          *float64
	HolidayPreferences []string // any overlap qualifies
}

// IsZero reports whether f places no constraint at all.
func (f TripFilter) IsZero() bool {
	return f.Status == nil && f.StartDate == nil && f.EndDate == nil &&
		f.Destination == "" && f.MinBudget == nil && f.MaxBudget == nil &&
		len(f.HolidayPreferences) == 0
}

// Matches reports whether t satisfies every constraint in f.
func (f TripFilter) Matches(t Trip) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.StartDate != nil && t.StartDate.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && t.EndDate.After(f.EndDate.Time) {
		return false
	}
	if f.Destination != "" &&
		!strings.Contains(strings.ToLower(t.Destination), strings.ToLower(f.Destination)) {
		return false
	}
	if f.MinBudget != nil && t.TripBudget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && t.TripBudget > *f.MaxBudget {
		return false
	}
	if len(f.HolidayPreferences) > 0 && !sharesAny(t.HolidayPreferences, f.HolidayPreferences) {
		return false
	}
	return true
}

func sharesAny(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}
