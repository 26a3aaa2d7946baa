package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/penguindash/widgets"
)

type jumpPaneTab struct {
	jumped string
}

type stubJumpScreen struct{}

func (s *stubJumpScreen) Title() string        { return "Jump Picker" }
func (s *stubJumpScreen) Scope() string        { return "screen:jump-picker" }
func (s *stubJumpScreen) View(int, int) string { return "jump" }
func (s *stubJumpScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "h" {
		return s, func() tea.Msg { return JumpTargetSelectedMsg{Key: "h"} }, true
	}
	return s, nil, false
}

func (t *jumpPaneTab) ID() string                           { return "jump-tab" }
func (t *jumpPaneTab) Title() string                        { return "JumpTab" }
func (t *jumpPaneTab) Scope() string                        { return "pane:jump:one" }
func (t *jumpPaneTab) Update(m *Model, msg tea.Msg) tea.Cmd { return nil }
func (t *jumpPaneTab) Build(m *Model) widgets.Widget        { return widgets.Text("body") }
func (t *jumpPaneTab) JumpTargets() []JumpTarget {
	return []JumpTarget{
		{Key: "c", Label: "Controls"},
		{Key: "h", Label: "Histogram"},
	}
}
func (t *jumpPaneTab) JumpToTarget(m *Model, key string) (bool, tea.Cmd) {
	t.jumped = key
	return true, StatusCmd("Focused pane: " + key)
}

func TestJumpModeOpensPickerAndSelectsTarget(t *testing.T) {
	keys := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"v"}, Action: "jump", Scopes: []string{"*"}},
	})
	tab := &jumpPaneTab{}
	m := NewModel("test", []Tab{tab}, keys, NewCommandRegistry(nil))
	var offered []JumpTarget
	m.OpenJumpPickerModal = func(_ *Model, targets []JumpTarget) Screen {
		offered = targets
		return &stubJumpScreen{}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	updated := next.(Model)
	if updated.screens.Len() != 1 {
		t.Fatalf("expected jump picker to open")
	}
	if len(offered) != 2 {
		t.Fatalf("picker offered %d targets, want 2", len(offered))
	}

	next2, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	updated2 := next2.(Model)
	if updated2.screens.Len() != 0 {
		t.Fatalf("expected jump picker to close after selecting target")
	}
	if cmd == nil {
		t.Fatalf("expected jump selection command")
	}
	next3, _ := updated2.Update(cmd())
	_ = next3.(Model)
	if tab.jumped != "h" {
		t.Fatalf("jump target mismatch: %s", tab.jumped)
	}
}

func TestJumpWithoutPickerReportsStatus(t *testing.T) {
	keys := NewKeyRegistry([]KeyBinding{{Keys: []string{"v"}, Action: "jump", Scopes: []string{"*"}}})
	m := NewModel("test", []Tab{&jumpPaneTab{}}, keys, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	updated := next.(Model)
	if updated.screens.Len() != 0 {
		t.Fatalf("no screen expected without a picker factory")
	}
	if text, _ := updated.Status(); text != "Jump picker unavailable" {
		t.Fatalf("status = %q", text)
	}
}
