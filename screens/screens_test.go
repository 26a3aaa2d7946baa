package screens

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/penguins"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCommandPaletteSearchesAndExecutes(t *testing.T) {
	reg := core.NewCommandRegistry([]core.Command{
		{ID: "reset", Name: "Reset controls", Description: "restore configured defaults"},
		{ID: "all", Name: "Select everything"},
		{ID: "save", Name: "Save defaults", Disabled: func(*core.Model) (bool, string) { return true, "no config path" }},
	})
	m := core.NewModel("test", nil, core.NewKeyRegistry(nil), reg)
	s := NewCommandPalette(&m, "pane:dashboard:controls")
	if got := len(s.Items()); got != 3 {
		t.Fatalf("initial items = %d, want 3", got)
	}

	var screen core.Screen = s
	for _, r := range "reset" {
		screen, _, _ = screen.Update(runes(string(r)))
	}
	items := s.Items()
	if len(items) != 1 || items[0].ID != "reset" {
		t.Fatalf("filtered items = %+v", items)
	}
	_, cmd, pop := screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("enter should close the palette with a command")
	}
	if msg, ok := cmd().(core.CommandExecuteMsg); !ok || msg.CommandID != "reset" {
		t.Fatalf("unexpected message %#v", cmd())
	}
}

func TestCommandPaletteDisabledReportsReason(t *testing.T) {
	s := NewCommandScreen("x", func(string) []CommandOption {
		return []CommandOption{{ID: "save", Name: "Save", Disabled: true, Reason: "no config path"}}
	}, nil)
	_, cmd, pop := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("expected close with status")
	}
	if msg := cmd().(core.StatusMsg); msg.Text != "no config path" {
		t.Fatalf("status = %q", msg.Text)
	}
	if !strings.Contains(CommandOption{Name: "Save", Disabled: true, Reason: "why"}.Title(), "(why)") {
		t.Fatalf("disabled title should include reason")
	}
}

func TestJumpPickerJumpsByKey(t *testing.T) {
	s := NewJumpPickerScreen([]core.JumpTarget{
		{Key: "H", Label: "Histogram"},
		{Key: "c", Label: "Controls"},
		{Key: "??", Label: "ignored"},
	})
	view := s.View(40, 10)
	if !strings.Contains(view, "[h] Histogram") || strings.Contains(view, "ignored") {
		t.Fatalf("view:\n%s", view)
	}
	_, cmd, pop := s.Update(runes("c"))
	if !pop || cmd == nil {
		t.Fatalf("pane key should jump")
	}
	if msg := cmd().(core.JumpTargetSelectedMsg); msg.Key != "c" {
		t.Fatalf("jumped to %q", msg.Key)
	}
	if _, _, pop := s.Update(tea.KeyMsg{Type: tea.KeyEsc}); !pop {
		t.Fatalf("esc should close")
	}
}

func TestAttributePickerSelects(t *testing.T) {
	var chosen penguins.Attribute
	s := NewAttributePicker(penguins.BillLength, func(a penguins.Attribute) tea.Msg {
		chosen = a
		return nil
	})
	if !strings.Contains(s.View(60, 12), "Bill Length Mm •") {
		t.Fatalf("current attribute not marked:\n%s", s.View(60, 12))
	}
	var screen core.Screen = s
	for _, r := range "body" {
		screen, _, _ = screen.Update(runes(string(r)))
	}
	_, cmd, pop := screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("enter should select")
	}
	cmd()
	if chosen != penguins.BodyMass {
		t.Fatalf("chosen = %q", chosen)
	}
}

func TestHelpMarkdownListsBindingsOnce(t *testing.T) {
	md := HelpMarkdown(core.ScopeControls, core.NewKeyRegistry(core.DefaultKeyBindings()).BindingsForScope(core.ScopeControls), []core.CommandResult{
		{CommandID: "reset", Name: "Reset controls", Desc: "restore defaults"},
	})
	if strings.Count(md, "select pane") != 1 {
		t.Fatalf("pane-nav listed more than once:\n%s", md)
	}
	for _, want := range []string{"more bins", "`space`", "**Reset controls**"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	s := NewHelpScreenFromMarkdown(md)
	out := ansi.Strip(s.View(70, 20))
	if !strings.Contains(out, "Palmer Penguins") {
		t.Fatalf("rendered help missing heading:\n%s", out)
	}
	if _, _, pop := s.Update(runes("?")); !pop {
		t.Fatalf("? should close help")
	}
}
