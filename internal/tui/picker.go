// Package tui provides the interactive session picker.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sundial-labs/ccs/internal/runtime"
)

// Action is what the user chose to do with the selected session.
type Action int

const (
	ActionNone Action = iota
	ActionAttach
	ActionLogs
	ActionStop
)

// Choice is the picker result.
type Choice struct {
	Session runtime.Session
	Action  Action
}

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type sessionItem struct {
	session runtime.Session
}

func (i sessionItem) Title() string       { return i.session.Name }
func (i sessionItem) Description() string { return i.session.Status + " · " + i.session.Image }
func (i sessionItem) FilterValue() string { return i.session.Name }

type model struct {
	list   list.Model
	choice *Choice
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m.choose(ActionAttach)
		case "l":
			return m.choose(ActionLogs)
		case "s":
			return m.choose(ActionStop)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) choose(action Action) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		return m, nil
	}
	m.choice = &Choice{Session: item.session, Action: action}
	return m, tea.Quit
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

// PickSession shows the picker for the given sessions and returns the
// user's choice, or nil when they quit without choosing.
func PickSession(sessions []runtime.Session) (*Choice, error) {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{session: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "sandbox sessions"
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "attach")),
			key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logs")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		}
	}

	p := tea.NewProgram(model{list: l}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("session picker failed: %w", err)
	}
	return final.(model).choice, nil
}
