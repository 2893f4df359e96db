package handler

import (
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// The store accepts whatever it is given, so every write is checked here
// before it reaches it. Each validator returns an error wrapping
// domain.ErrValidation that names the first offending field.

func validateTrip(t domain.Trip) error {
	if strings.TrimSpace(t.Destination) == "" {
		return invalid("destination is required")
	}
	if t.StartDate.IsZero() {
		return invalid("startDate is required")
	}
	if t.EndDate.IsZero() {
		return invalid("endDate is required")
	}
	if t.EndDate.Before(t.StartDate.Time) {
		return invalid("endDate must not be before startDate")
	}
	if !t.Status.Valid() {
		return invalid("status %q is not valid", t.Status)
	}
	if t.TripBudget < 0 {
		return invalid("tripBudget must not be negative")
	}
	if t.SpentSoFar != nil && *t.SpentSoFar < 0 {
		return invalid("spentSoFar must not be negative")
	}
	if t.NumberOfTravelers < 0 {
		return invalid("numberOfTravelers must not be negative")
	}
	for _, a := range t.Activities {
		if err := validateActivity(a); err != nil {
			return err
		}
	}
	for _, e := range t.KeyEvents {
		if err := validateKeyEvent(e); err != nil {
			return err
		}
	}
	for _, d := range t.Deadlines {
		if err := validateDeadline(d); err != nil {
			return err
		}
	}
	for _, c := range t.Checklists {
		if err := validateChecklist(c); err != nil {
			return err
		}
	}
	return nil
}

// validateNewTrip checks create input as the record it would become.
func validateNewTrip(in domain.NewTrip) error {
	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	return validateTrip(domain.Trip{
		Destination:       in.Destination,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Status:            status,
		TripBudget:        in.TripBudget,
		SpentSoFar:        in.SpentSoFar,
		Activities:        in.Activities,
		KeyEvents:         in.KeyEvents,
		Deadlines:         in.Deadlines,
		Checklists:        in.Checklists,
		NumberOfTravelers: in.NumberOfTravelers,
	})
}

func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.ActivityName) == "" {
		return invalid("activityName is required")
	}
	if a.Type != "" && !a.Type.Valid() {
		return invalid("activity type %q is not valid", a.Type)
	}
	if !a.BookingStatus.Valid() {
		return invalid("bookingStatus %q is not valid", a.BookingStatus)
	}
	if a.ActivityCost < 0 {
		return invalid("activityCost must not be negative")
	}
	if a.Duration < 0 {
		return invalid("duration must not be negative")
	}
	return nil
}

func validateKeyEvent(e domain.KeyEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("title is required")
	}
	if !e.PriorityLevel.Valid() {
		return invalid("priorityLevel %q is not valid", e.PriorityLevel)
	}
	return nil
}

func validateDeadline(d domain.Deadline) error {
	if strings.TrimSpace(d.Description) == "" {
		return invalid("description is required")
	}
	return nil
}

func validateChecklist(c domain.Checklist) error {
	if strings.TrimSpace(c.Title) == "" {
		return invalid("title is required")
	}
	for _, it := range c.Items {
		if err := validateChecklistItem(it); err != nil {
			return err
		}
	}
	return nil
}

func validateChecklistItem(it domain.ChecklistItem) error {
	if strings.TrimSpace(it.Title) == "" {
		return invalid("item title is required")
	}
	if !it.Priority.Valid() {
		return invalid("priority %q is not valid", it.Priority)
	}
	return nil
}

// Patch validators only check the fields that are present.

func validateActivityPatch(p domain.ActivityPatch) error {
	if p.ActivityName != nil && strings.TrimSpace(*p.ActivityName) == "" {
		return invalid("activityName must not be empty")
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalid("activity type %q is not valid", *p.Type)
	}
	if p.BookingStatus != nil && !p.BookingStatus.Valid() {
		return invalid("bookingStatus %q is not valid", *p.BookingStatus)
	}
	if p.ActivityCost != nil && *p.ActivityCost < 0 {
		return invalid("activityCost must not be negative")
	}
	if p.Duration != nil && *p.Duration < 0 {
		return invalid("duration must not be negative")
	}
	return nil
}

func validateKeyEventPatch(p domain.KeyEventPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title must not be empty")
	}
	if p.PriorityLevel != nil && !p.PriorityLevel.Valid() {
		return invalid("priorityLevel %q is not valid", *p.PriorityLevel)
	}
	return nil
}

func validateDeadlinePatch(p domain.DeadlinePatch) error {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return invalid("description must not be empty")
	}
	return nil
}

func validateChecklistPatch(p domain.ChecklistPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title must not be empty")
	}
	if p.Items != nil {
		for _, it := range *p.Items {
			if err := validateChecklistItem(it); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateChecklistItemPatch(p domain.ChecklistItemPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("item title must not be empty")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return invalid("priority %q is not valid", *p.Priority)
	}
	return nil
}
