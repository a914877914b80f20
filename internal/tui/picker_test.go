package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sundial-labs/ccs/internal/runtime"
)

func testModel(sessions ...runtime.Session) model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{session: s}
	}
	return model{list: list.New(items, list.NewDefaultDelegate(), 40, 20)}
}

func TestPickerChoosesAction(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"enter", ActionAttach},
		{"l", ActionLogs},
		{"s", ActionStop},
	}

	for _, tt := range tests {
		m := testModel(runtime.Session{Name: "ccs-myrepo-1", Status: "Up", Image: "ccs:latest"})

		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
		if tt.key == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		}
		next, _ := m.Update(msg)

		got := next.(model).choice
		if got == nil {
			t.Fatalf("key %q produced no choice", tt.key)
		}
		if got.Action != tt.want || got.Session.Name != "ccs-myrepo-1" {
			t.Errorf("key %q choice = %+v", tt.key, got)
		}
	}
}

func TestPickerQuitWithoutChoice(t *testing.T) {
	m := testModel(runtime.Session{Name: "ccs-myrepo-1"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if next.(model).choice != nil {
		t.Errorf("quit should leave no choice, got %+v", next.(model).choice)
	}
}
