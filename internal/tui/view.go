package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/timeline"
)

const (
	cellGlyph    = "■"
	outsideGlyph = "·"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		"",
		m.viewGrid(),
		"",
		viewLegend(),
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	from, to := m.controls.Window()
	title := titleStyle.Render(m.trip.Destination)
	sub := subtitleStyle.Render(fmt.Sprintf("%s → %s  ·  showing %s – %s  ·  zoom %d",
		m.trip.StartDate.Format(domain.DateFormat),
		m.trip.EndDate.Format(domain.DateFormat),
		from.Format("Jan 2006"),
		to.Format("Jan 2006"),
		m.controls.Zoom,
	))
	return lipgloss.JoinVertical(lipgloss.Left, title, sub)
}

// viewGrid renders one row per visible month, one cell per day. Days outside
// the trip are drawn as a dim dot so the trip's extent stays readable.
func (m Model) viewGrid() string {
	byDay := make(map[time.Time]timeline.DayBucket)
	for _, b := range m.controls.VisibleBuckets(m.trip) {
		byDay[b.Date.Time] = b
	}

	from, to := m.controls.Window()
	var rows []string
	for month := from.Time; !month.After(to.Time); month = month.AddDate(0, 1, 0) {
		var sb strings.Builder
		sb.WriteString(monthLabelStyle.Render(month.Format("Jan 2006")))
		last := month.AddDate(0, 1, -1)
		for day := month; !day.After(last); day = day.AddDate(0, 0, 1) {
			if b, ok := byDay[day]; ok {
				sb.WriteString(cellStyle(b.Color).Render(cellGlyph))
			} else {
				sb.WriteString(outsideTripStyle.Render(outsideGlyph))
			}
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

func viewLegend() string {
	var sb strings.Builder
	sb.WriteString(subtitleStyle.Render("less "))
	for _, hex := range timeline.ColorScale {
		sb.WriteString(cellStyle(hex).Render(cellGlyph))
	}
	sb.WriteString(subtitleStyle.Render(" more"))
	return sb.String()
}
