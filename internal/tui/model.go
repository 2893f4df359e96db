// Package tui is the interactive terminal view of a trip's calendar heatmap.
// Navigation drives timeline.Controls; rendering reads timeline.DayBucket.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/timeline"
)

type Model struct {
	trip     domain.Trip
	controls timeline.Controls
	keys     KeyMap
	help     help.Model
	width    int
	quitting bool
}

// NewModel opens the heatmap on the month the trip starts in.
func NewModel(trip domain.Trip) Model {
	return Model{
		trip:     trip,
		controls: timeline.New(trip),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// Controls returns the current view state.
func (m Model) Controls() timeline.Controls { return m.controls }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevMonth):
			m.controls.PrevMonth()
		case key.Matches(msg, m.keys.NextMonth):
			m.controls.NextMonth()
		case key.Matches(msg, m.keys.ZoomIn):
			m.controls.ZoomIn()
		case key.Matches(msg, m.keys.ZoomOut):
			m.controls.ZoomOut()
		case key.Matches(msg, m.keys.Reset):
			zoom := m.controls.Zoom
			m.controls = timeline.New(m.trip)
			m.controls.Zoom = zoom
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}
