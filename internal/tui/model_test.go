package tui_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/timeline"
	"github.com/pkordes/trip-planner/internal/tui"
)

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Slug:        "lisbon",
		Destination: "Lisbon",
		StartDate:   domain.NewDate(2025, time.June, 20),
		EndDate:     domain.NewDate(2025, time.July, 5),
		Status:      domain.StatusPlanning,
		Activities: []domain.Activity{
			{ActivityName: "Tram 28", Date: domain.NewDate(2025, time.June, 21), Type: domain.ActivitySightseeing},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds each message to the model in order and returns the result.
func press(t *testing.T, m tui.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(tui.Model)
		require.True(t, ok)
	}
	return m
}

func TestNewModel_startsOnTripMonth(t *testing.T) {
	m := tui.NewModel(tripFixture())

	assert.Equal(t, timeline.Controls{Month: 5, Year: 2025, Zoom: timeline.MinZoom}, m.Controls())
}

func TestUpdate_navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want timeline.Controls
	}{
		{"right arrow", []tea.Msg{tea.KeyMsg{Type: tea.KeyRight}}, timeline.Controls{Month: 6, Year: 2025, Zoom: 1}},
		{"l", []tea.Msg{runes("l")}, timeline.Controls{Month: 6, Year: 2025, Zoom: 1}},
		{"left twice", []tea.Msg{tea.KeyMsg{Type: tea.KeyLeft}, runes("h")}, timeline.Controls{Month: 3, Year: 2025, Zoom: 1}},
		{"zoom in at minimum", []tea.Msg{runes("+")}, timeline.Controls{Month: 5, Year: 2025, Zoom: 1}},
		{"zoom out", []tea.Msg{runes("-")}, timeline.Controls{Month: 5, Year: 2025, Zoom: 2}},
		{
			"zoom out past maximum",
			[]tea.Msg{runes("-"), runes("-"), runes("-"), runes("-"), runes("-")},
			timeline.Controls{Month: 5, Year: 2025, Zoom: timeline.MaxZoom},
		},
		{
			"rolls into next year",
			[]tea.Msg{runes("l"), runes("l"), runes("l"), runes("l"), runes("l"), runes("l"), runes("l")},
			timeline.Controls{Month: 0, Year: 2026, Zoom: 1},
		},
		{
			"reset keeps zoom",
			[]tea.Msg{runes("l"), runes("l"), runes("-"), runes("t")},
			timeline.Controls{Month: 5, Year: 2025, Zoom: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := press(t, tui.NewModel(tripFixture()), tc.keys...)
			assert.Equal(t, tc.want, m.Controls())
		})
	}
}

func TestUpdate_quit(t *testing.T) {
	m := tui.NewModel(tripFixture())

	next, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestView_rendersWindow(t *testing.T) {
	m := press(t, tui.NewModel(tripFixture()), runes("-"))

	out := m.View()

	assert.Contains(t, out, "Lisbon")
	assert.Contains(t, out, "Jun 2025")
	assert.Contains(t, out, "Jul 2025")
	assert.Contains(t, out, "zoom 2")
	assert.NotContains(t, out, "Aug 2025")
}
