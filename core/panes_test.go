package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/penguindash/widgets"
)

type paneNavTab struct {
	handled []string
}

func (t *paneNavTab) ID() string                           { return "p" }
func (t *paneNavTab) Title() string                        { return "PaneTab" }
func (t *paneNavTab) Scope() string                        { return "pane:test" }
func (t *paneNavTab) Update(m *Model, msg tea.Msg) tea.Cmd { return nil }
func (t *paneNavTab) Build(m *Model) widgets.Widget        { return widgets.Pane{Title: "P"} }
func (t *paneNavTab) ActivePaneTitle() string              { return "Pane" }
func (t *paneNavTab) HandlePaneKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	t.handled = append(t.handled, msg.String())
	if msg.String() == "right" || msg.String() == "left" || msg.String() == "enter" {
		return true, StatusCmd("pane key")
	}
	return false, nil
}

func TestPaneNavigationKeysRouteToActiveTab(t *testing.T) {
	tab := &paneNavTab{}
	keys := NewKeyRegistry([]KeyBinding{{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}}})
	m := NewModel("test", []Tab{tab}, keys, NewCommandRegistry(nil))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	updated := next.(Model)
	if len(tab.handled) == 0 || tab.handled[0] != "right" {
		t.Fatalf("expected pane handler to receive right key")
	}
	if cmd == nil {
		t.Fatalf("expected pane handler command")
	}
	if msg, ok := cmd().(StatusMsg); !ok || msg.Text == "" {
		t.Fatalf("expected status msg from pane handler")
	}
	if updated.statusErr {
		t.Fatalf("unexpected status error")
	}
}

func TestViewShowsTitleAndActivePane(t *testing.T) {
	m := NewModel("Palmer Penguins", []Tab{&paneNavTab{}}, defaultRegistry(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	view := next.(Model).View()
	for _, want := range []string{"Palmer Penguins › Pane", "1:PaneTab", "quit"} {
		if !containsPlain(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if got := len(splitPlainLines(view)); got != 12 {
		t.Fatalf("view height = %d, want 12", got)
	}
}
