// Package timeline holds the view state for a trip's calendar heatmap and
// the per-day buckets it renders.
package timeline

import (
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Zoom bounds: the number of consecutive months shown at once.
const (
	MinZoom = 1
	MaxZoom = 4
)

// ColorScale maps a day's level to a heatmap colour. Index 0 is the empty
// colour; the last entry is used for five or more events.
var ColorScale = [...]string{
	"#ebedf0",
	"#c6e48b",
	"#7bc96f",
	"#49af5d",
	"#2e8840",
	"#196127",
}

// Controls is the navigable view state. Month is zero-based (0 = January).
// SetMonth and SetYear accept any value; only the navigation helpers keep
// Month within 0..11.
type Controls struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Zoom  int `json:"zoom"`
}

// New starts the view on the month of the trip's start date at minimum zoom.
func New(t domain.Trip) Controls {
	return Controls{
		Month: int(t.StartDate.Month()) - 1,
		Year:  t.StartDate.Year(),
		Zoom:  MinZoom,
	}
}

func (c *Controls) SetMonth(m int) { c.Month = m }
func (c *Controls) SetYear(y int)  { c.Year = y }

// NextMonth advances one month, rolling December over into January.
func (c *Controls) NextMonth() {
	if c.Month >= 11 {
		c.Month = 0
		c.Year++
		return
	}
	c.Month++
}

// PrevMonth goes back one month, rolling January back into December.
func (c *Controls) PrevMonth() {
	if c.Month <= 0 {
		c.Month = 11
		c.Year--
		return
	}
	c.Month--
}

// ZoomIn shows one month fewer. It does nothing at MinZoom.
func (c *Controls) ZoomIn() {
	if c.Zoom > MinZoom {
		c.Zoom--
	}
}

// ZoomOut shows one month more. It does nothing at MaxZoom.
func (c *Controls) ZoomOut() {
	if c.Zoom < MaxZoom {
		c.Zoom++
	}
}

// Window returns the first and last day shown: Zoom whole months starting
// at the current month.
func (c Controls) Window() (from, to domain.Date) {
	zoom := min(max(c.Zoom, MinZoom), MaxZoom)
	start := time.Date(c.Year, time.Month(c.Month+1), 1, 0, 0, 0, 0, time.UTC)
	return domain.Date{Time: start}, domain.Date{Time: start.AddDate(0, zoom, -1)}
}

// DayBucket aggregates one calendar day of a trip.
type DayBucket struct {
	Date       domain.Date `json:"date"`
	Activities int         `json:"activities"`
	KeyEvents  int         `json:"keyEvents"`
	Count      int         `json:"count"`
	Level      int         `json:"level"`
	Color      string      `json:"color"`
}

// Buckets returns one bucket per day from the trip's start date to its end
// date inclusive. A trip that ends before it starts has no buckets.
func Buckets(t domain.Trip) []DayBucket {
	return BucketsBetween(t, t.StartDate, t.EndDate)
}

// BucketsBetween returns the buckets for the days of the trip that fall
// within from..to inclusive. Only those days are built, so the cost follows
// the window rather than the length of the trip.
func BucketsBetween(t domain.Trip, from, to domain.Date) []DayBucket {
	first := domain.DateOf(t.StartDate.Time).Time
	if f := domain.DateOf(from.Time).Time; f.After(first) {
		first = f
	}
	last := domain.DateOf(t.EndDate.Time).Time
	if l := domain.DateOf(to.Time).Time; l.Before(last) {
		last = l
	}

	out := []DayBucket{}
	if first.After(last) {
		return out
	}

	activities := map[time.Time]int{}
	for _, a := range t.Activities {
		activities[domain.DateOf(a.Date.Time).Time]++
	}
	events := map[time.Time]int{}
	for _, e := range t.KeyEvents {
		events[domain.DateOf(e.Date.Time).Time]++
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		b := DayBucket{
			Date:       domain.Date{Time: day},
			Activities: activities[day],
			KeyEvents:  events[day],
		}
		b.Count = b.Activities + b.KeyEvents
		b.Level = Level(b.Count)
		b.Color = ColorScale[b.Level]
		out = append(out, b)
	}
	return out
}

// VisibleBuckets builds the buckets for the current Window of t.
func (c Controls) VisibleBuckets(t domain.Trip) []DayBucket {
	from, to := c.Window()
	return BucketsBetween(t, from, to)
}

// Level maps an event count onto an index into ColorScale.
func Level(count int) int {
	return min(max(count, 0), len(ColorScale)-1)
}
