package service

import (
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// SampleTrips returns a small demo collection anchored around today, used to
// populate an empty store when seeding is enabled. Child IDs are assigned by
// the store.
func SampleTrips(today time.Time) []domain.NewTrip {
	base := domain.DateOf(today)
	day := func(offset int) domain.Date { return domain.Date{Time: base.AddDate(0, 0, offset)} }
	spent := func(v float64) *float64 { return &v }

	return []domain.NewTrip{
		{
			Destination:        "Lisbon, Portugal",
			StartDate:          day(30),
			EndDate:            day(36),
			Status:             domain.StatusBooked,
			TripBudget:         2400,
			SpentSoFar:         spent(860),
			NumberOfTravelers:  2,
			TravelMode:         "flight",
			HolidayPreferences: []string{"city", "food", "culture"},
			Activities: []domain.Activity{
				{ActivityName: "Tram 28 loop", Date: day(31), Location: "Alfama", Duration: 90, ActivityCost: 6, Type: domain.ActivitySightseeing, BookingStatus: domain.BookingPlanned, Category: "Transport"},
				{ActivityName: "Pastéis de Belém", Date: day(31), Location: "Belém", Duration: 45, ActivityCost: 14, Type: domain.ActivityFood, Category: "Dining"},
				{ActivityName: "Sintra day trip", Date: day(33), Location: "Sintra", Duration: 480, ActivityCost: 95, Type: domain.ActivityAdventure, BookingStatus: domain.BookingBooked, Category: "Tours"},
				{ActivityName: "Fado dinner", Date: day(34), Location: "Alfama", Duration: 150, ActivityCost: 120, Type: domain.ActivityFood, BookingStatus: domain.BookingBooked, Category: "Dining"},
				{ActivityName: "Cascais beach", Date: day(35), Location: "Cascais", Duration: 240, ActivityCost: 20, Type: domain.ActivityRelaxation},
			},
			KeyEvents: []domain.KeyEvent{
				{Title: "Flight out", Date: day(30), PriorityLevel: domain.PriorityHigh},
				{Title: "Hotel check-in", Date: day(30), PriorityLevel: domain.PriorityMedium},
			},
			Deadlines: []domain.Deadline{
				{Description: "Book Sintra palace tickets", DueDate: day(20)},
				{Description: "Pay hotel balance", DueDate: day(7), Completed: true},
			},
			Checklists: []domain.Checklist{
				{Title: "Documents", Category: "Essentials", Items: []domain.ChecklistItem{
					{Title: "Passports", Completed: true, Priority: domain.PriorityHigh},
					{Title: "Travel insurance"},
				}},
				{Title: "Packing", Category: "Luggage", Items: []domain.ChecklistItem{
					{Title: "Walking shoes"},
					{Title: "Sunscreen"},
					{Title: "Adapter plug", Completed: true},
				}},
			},
		},
		{
			Destination:        "Banff National Park",
			StartDate:          day(90),
			EndDate:            day(97),
			Status:             domain.StatusPlanning,
			TripBudget:         3200,
			NumberOfTravelers:  4,
			TravelMode:         "car",
			HolidayPreferences: []string{"nature", "adventure"},
			FlexibleDates:      true,
			Activities: []domain.Activity{
				{ActivityName: "Lake Louise canoe", Date: day(91), Location: "Lake Louise", Duration: 120, ActivityCost: 160, Type: domain.ActivityAdventure, Category: "Outdoors"},
				{ActivityName: "Johnston Canyon hike", Date: day(92), Location: "Johnston Canyon", Duration: 240, Type: domain.ActivityAdventure, Category: "Outdoors"},
				{ActivityName: "Hot springs", Date: day(94), Location: "Banff", Duration: 120, ActivityCost: 64, Type: domain.ActivityRelaxation},
			},
			Checklists: []domain.Checklist{
				{Title: "Gear", Items: []domain.ChecklistItem{{Title: "Bear spray"}, {Title: "Rain jackets"}}},
			},
		},
		{
			Destination:        "Kyoto",
			StartDate:          day(-60),
			EndDate:            day(-50),
			Status:             domain.StatusCompleted,
			TripBudget:         4100,
			SpentSoFar:         spent(3950),
			NumberOfTravelers:  1,
			TravelMode:         "train",
			HolidayPreferences: []string{"culture", "food"},
		},
	}
}
