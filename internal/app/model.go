package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model adapts *State to the tea.Model interface bubbletea's Program
// drives. State carries all the mutable fields; Model only exists to give
// tea.Model value semantics over the pointer Update/View close over.
type Model struct {
	state *State
}

// NewModel wraps an already-constructed State for bubbletea.
func NewModel(s *State) Model {
	return Model{state: s}
}

// Init registers the keymap, kicks off the first workspace refresh, and
// primes the tick scheduler (spec.md §4.1).
func (m Model) Init() tea.Cmd {
	m.state.AppStartTS = time.Now()
	m.state.Ready = true
	m.state.RegisterKeymap()
	return tea.Batch(
		m.state.refreshCmd(),
		m.state.ScheduleTick(time.Now(), 0),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.state.Update(msg)
	m.state = next
	return m, cmd
}

func (m Model) View() string {
	return m.state.View()
}
