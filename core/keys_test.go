package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"tab:a"}},
		{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}},
	})
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:a") {
		t.Fatalf("expected ctrl+k in tab:a")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:b") {
		t.Fatalf("did not expect ctrl+k in tab:b")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "quit", "tab:b") {
		t.Fatalf("expected q to match wildcard scope")
	}
}

func TestControlsKeysAreScoped(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	plus := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}
	if !reg.IsAction(plus, "bins-up", ScopeControls) {
		t.Fatalf("+ should raise bins in the controls pane")
	}
	if reg.IsAction(plus, "bins-up", ScopeTable) {
		t.Fatalf("+ should not be live in the table pane")
	}
}

func TestCommandForResolvesCommandBindings(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	id, ok := reg.CommandFor(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, ScopeTable)
	if !ok || id != "reset" {
		t.Fatalf("r -> %q %v, want reset", id, ok)
	}
	if _, ok := reg.CommandFor(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, ScopeTable); ok {
		t.Fatalf("z should not resolve to a command")
	}
}

func TestApplyActionKeybindingsOverridesKeys(t *testing.T) {
	bindings := ApplyActionKeybindings(DefaultKeyBindings(), map[string][]string{"quit": {"ctrl+q"}})
	byAction := DefaultKeybindingsByAction(bindings)
	if got := byAction["quit"]; len(got) != 1 || got[0] != "ctrl+q" {
		t.Fatalf("quit keys = %v", got)
	}
	if got := byAction["jump"]; len(got) != 1 || got[0] != "v" {
		t.Fatalf("jump keys changed: %v", got)
	}
}
