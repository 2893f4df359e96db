// Package insights derives chart-ready views from a trip's nested
// collections. Every function here is pure: it reads the trip it is given,
// never mutates it, and treats absent collections as empty.
package insights

import (
	"sort"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Bucket names used when an activity or checklist carries no category.
const (
	OtherCategory          = "Other"
	UncategorizedChecklist = "Uncategorized"
)

// MaxSeriesDays bounds the gap-filled spending series. Activities spread
// over a longer span get one point per spending day instead.
const MaxSeriesDays = 3660

// NamedValue is one leaf of the category spend treemap.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SpendingPoint is one day of the cumulative spending series.
type SpendingPoint struct {
	Date            domain.Date `json:"date"`
	CumulativeValue float64     `json:"cumulativeValue"`
}

// TypeShare is one slice of the activity type distribution.
type TypeShare struct {
	Type       domain.ActivityType `json:"type"`
	Count      int                 `json:"count"`
	Percentage float64             `json:"percentage"`
}

// FlowEdge is a directed move between two consecutive activity locations.
type FlowEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// CategoryProgress counts checklist items for one checklist category.
type CategoryProgress struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// ChecklistStats is checklist completion overall and per category.
type ChecklistStats struct {
	Total      int                `json:"total"`
	Completed  int                `json:"completed"`
	Percentage float64            `json:"percentage"`
	Categories []CategoryProgress `json:"categories"`
}

// CategorySpend sums activity cost per category, in the order categories
// first appear. Activities without a category fall into OtherCategory.
func CategorySpend(t domain.Trip) []NamedValue {
	out := []NamedValue{}
	index := map[string]int{}
	for _, a := range t.Activities {
		name := a.Category
		if name == "" {
			name = OtherCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, NamedValue{Name: name})
		}
		out[i].Value += a.ActivityCost
	}
	return out
}

// CumulativeSpending returns one point per calendar day from the earliest to
// the latest dated activity, carrying the running total across days with no
// spend. Activities without a date are ignored. With nothing to plot it
// returns a single zero point at today. When the span exceeds MaxSeriesDays
// the gaps are not filled and only days with activities are returned.
func CumulativeSpending(t domain.Trip, today time.Time) []SpendingPoint {
	perDay := map[time.Time]float64{}
	var first, last time.Time
	for _, a := range t.Activities {
		if a.Date.IsZero() {
			continue
		}
		day := domain.DateOf(a.Date.Time).Time
		perDay[day] += a.ActivityCost
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}
	if len(perDay) == 0 {
		return []SpendingPoint{{Date: domain.DateOf(today)}}
	}

	var (
		out   []SpendingPoint
		total float64
	)
	if last.After(first.AddDate(0, 0, MaxSeriesDays)) {
		days := make([]time.Time, 0, len(perDay))
		for day := range perDay {
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		for _, day := range days {
			total += perDay[day]
			out = append(out, SpendingPoint{Date: domain.Date{Time: day}, CumulativeValue: total})
		}
		return out
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		total += perDay[day]
		out = append(out, SpendingPoint{Date: domain.Date{Time: day}, CumulativeValue: total})
	}
	return out
}

// ActivityTypes counts activities per type. Declared types come first in
// their declared order, followed by any unrecognised types alphabetically.
// Types with no activities are omitted. Activities with no type count as
// domain.ActivityOther.
func ActivityTypes(t domain.Trip) []TypeShare {
	out := []TypeShare{}
	if len(t.Activities) == 0 {
		return out
	}

	counts := map[domain.ActivityType]int{}
	for _, a := range t.Activities {
		typ := a.Type
		if typ == "" {
			typ = domain.ActivityOther
		}
		counts[typ]++
	}

	order := make([]domain.ActivityType, 0, len(counts))
	for _, typ := range domain.ActivityTypes {
		if counts[typ] > 0 {
			order = append(order, typ)
		}
	}
	var unknown []domain.ActivityType
	for typ := range counts {
		if !typ.Valid() {
			unknown = append(unknown, typ)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	order = append(order, unknown...)

	total := float64(len(t.Activities))
	for _, typ := range order {
		out = append(out, TypeShare{
			Type:       typ,
			Count:      counts[typ],
			Percentage: float64(counts[typ]) / total * 100,
		})
	}
	return out
}

// LocationFlow walks activities in list order and records an edge for every
// adjacent pair, weighting repeats. Consecutive activities at the same
// location produce a self-loop edge. Edges are returned in first-seen order.
func LocationFlow(t domain.Trip) []FlowEdge {
	out := []FlowEdge{}
	index := map[[2]string]int{}
	for i := 1; i < len(t.Activities); i++ {
		key := [2]string{t.Activities[i-1].Location, t.Activities[i].Location}
		j, ok := index[key]
		if !ok {
			j = len(out)
			index[key] = j
			out = append(out, FlowEdge{Source: key[0], Target: key[1]})
		}
		out[j].Weight++
	}
	return out
}

// ChecklistProgress counts items and completed items across all checklists
// and per checklist category, in the order categories first appear.
func ChecklistProgress(t domain.Trip) ChecklistStats {
	stats := ChecklistStats{Categories: []CategoryProgress{}}
	index := map[string]int{}
	for _, c := range t.Checklists {
		name := c.Category
		if name == "" {
			name = UncategorizedChecklist
		}
		i, ok := index[name]
		if !ok {
			i = len(stats.Categories)
			index[name] = i
			stats.Categories = append(stats.Categories, CategoryProgress{Category: name})
		}
		for _, it := range c.Items {
			stats.Total++
			stats.Categories[i].Total++
			if it.Completed {
				stats.Completed++
				stats.Categories[i].Completed++
			}
		}
	}
	stats.Percentage = percent(float64(stats.Completed), float64(stats.Total))
	return stats
}

// percent returns part/whole*100, or 0 when whole is 0.
func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
