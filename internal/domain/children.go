package domain

import "github.com/google/uuid"

// ActivityType classifies an activity for the distribution chart.
type ActivityType string

const (
	ActivitySightseeing ActivityType = "sightseeing"
	ActivityFood        ActivityType = "food"
	ActivityAdventure   ActivityType = "adventure"
	ActivityRelaxation  ActivityType = "relaxation"
	ActivityOther       ActivityType = "other"
)

// ActivityTypes lists the declared activity types in display order.
var ActivityTypes = []ActivityType{
	ActivitySightseeing, ActivityFood, ActivityAdventure, ActivityRelaxation, ActivityOther,
}

// Valid reports whether t is a declared activity type.
func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// BookingStatus is optional on an activity; the zero value means "unset".
type BookingStatus string

const (
	BookingPlanned   BookingStatus = "planned"
	BookingBooked    BookingStatus = "booked"
	BookingCompleted BookingStatus = "completed"
)

// Valid reports whether b is empty or a declared booking status.
func (b BookingStatus) Valid() bool {
	switch b {
	case "", BookingPlanned, BookingBooked, BookingCompleted:
		return true
	}
	return false
}

// Priority is shared by key events and checklist items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is empty or a declared priority.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Activity is a single planned thing to do on a given day.
// Duration is in minutes.
type Activity struct {
	ID            uuid.UUID     `json:"id"`
	ActivityName  string        `json:"activityName"`
	Date          Date          `json:"date"`
	Location      string        `json:"location"`
	Duration      int           `json:"duration"`
	ActivityCost  float64       `json:"activityCost"`
	Type          ActivityType  `json:"type"`
	BookingStatus BookingStatus `json:"bookingStatus,omitempty"`
	Category      string        `json:"category,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// ActivityPatch is a partial update for an Activity.
type ActivityPatch struct {
	ActivityName  *string        `json:"activityName,omitempty"`
	Date          *Date          `json:"date,omitempty"`
	Location      *string        `json:"location,omitempty"`
	Duration      *int           `json:"duration,omitempty"`
	ActivityCost  *float64       `json:"activityCost,omitempty"`
	Type          *ActivityType  `json:"type,omitempty"`
	BookingStatus *BookingStatus `json:"bookingStatus,omitempty"`
	Category      *string        `json:"category,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

// Apply copies every non-nil field of p onto a.
func (p ActivityPatch) Apply(a *Activity) {
	setIf(&a.ActivityName, p.ActivityName)
	setIf(&a.Date, p.Date)
	setIf(&a.Location, p.Location)
	setIf(&a.Duration, p.Duration)
	setIf(&a.ActivityCost, p.ActivityCost)
	setIf(&a.Type, p.Type)
	setIf(&a.BookingStatus, p.BookingStatus)
	setIf(&a.Category, p.Category)
	setIf(&a.Notes, p.Notes)
}

// KeyEvent is a dated milestone shown on the trip timeline.
type KeyEvent struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Date          Date      `json:"date"`
	Description   string    `json:"description,omitempty"`
	PriorityLevel Priority  `json:"priorityLevel"`
}

// KeyEventPatch is a partial update for a KeyEvent.
type KeyEventPatch struct {
	Title         *string   `json:"title,omitempty"`
	Date          *Date     `json:"date,omitempty"`
	Description   *string   `json:"description,omitempty"`
	PriorityLevel *Priority `json:"priorityLevel,omitempty"`
}

// Apply copies every non-nil field of p onto e.
func (p KeyEventPatch) Apply(e *KeyEvent) {
	setIf(&e.Title, p.Title)
	setIf(&e.Date, p.Date)
	setIf(&e.Description, p.Description)
	setIf(&e.PriorityLevel, p.PriorityLevel)
}

// Deadline is a dated to-do with a completion flag.
type Deadline struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	DueDate     Date      `json:"dueDate"`
	Completed   bool      `json:"completed"`
}

// DeadlinePatch is a partial update for a Deadline.
type DeadlinePatch struct {
	Description *string `json:"description,omitempty"`
	DueDate     *Date   `json:"dueDate,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Apply copies every non-nil field of p onto d.
func (p DeadlinePatch) Apply(d *Deadline) {
	setIf(&d.Description, p.Description)
	setIf(&d.DueDate, p.DueDate)
	setIf(&d.Completed, p.Completed)
}

// Checklist groups ChecklistItems under a title and optional category.
type Checklist struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	DueDate  *Date           `json:"dueDate,omitempty"`
	Items    []ChecklistItem `json:"items"`
}

// ChecklistPatch is a partial update for a Checklist's own fields.
// Items has whole-list replace semantics; per-item edits go through the
// checklist item operations.
type ChecklistPatch struct {
	Title    *string          `json:"title,omitempty"`
	Category *string          `json:"category,omitempty"`
	DueDate  *Date            `json:"dueDate,omitempty"`
	Items    *[]ChecklistItem `json:"items,omitempty"`
}

// Apply copies every non-nil field of p onto c.
func (p ChecklistPatch) Apply(c *Checklist) {
	setIf(&c.Title, p.Title)
	setIf(&c.Category, p.Category)
	if p.DueDate != nil {
		d := *p.DueDate
		c.DueDate = &d
	}
	if p.Items != nil {
		c.Items = append([]ChecklistItem{}, *p.Items...)
	}
}

// ChecklistItem is one tickable entry of a Checklist.
type ChecklistItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	DueDate   *Date     `json:"dueDate,omitempty"`
	Priority  Priority  `json:"priority,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// ChecklistItemPatch is a partial update for a ChecklistItem.
type ChecklistItemPatch struct {
	Title     *string   `json:"title,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
	DueDate   *Date     `json:"dueDate,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// Apply copies every non-nil field of p onto it.
func (p ChecklistItemPatch) Apply(it *ChecklistItem) {
	setIf(&it.Title, p.Title)
	setIf(&it.Completed, p.Completed)
	if p.DueDate != nil {
		d := *p.DueDate
		it.DueDate = &d
	}
	setIf(&it.Priority, p.Priority)
	setIf(&it.Notes, p.Notes)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
