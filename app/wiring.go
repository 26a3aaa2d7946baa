package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/screens"
)

// NewModel builds the whole TUI over rt: both tabs, the key bindings with
// any [keys] overrides from the config, and every command.
func NewModel(rt *Runtime) core.Model {
	bindings := core.ApplyActionKeybindings(core.DefaultKeyBindings(), rt.Config.Keys)
	m := core.NewModel(rt.title(), Tabs(rt), core.NewKeyRegistry(bindings), core.NewCommandRegistry(nil))
	ConfigureModel(&m, rt)
	return m
}

// ConfigureModel installs the modal factories and registers the commands.
func ConfigureModel(m *core.Model, rt *Runtime) {
	if m == nil {
		return
	}
	m.OpenCommandModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewCommandPalette(model, scope)
	}
	m.OpenJumpPickerModal = func(model *core.Model, targets []core.JumpTarget) core.Screen {
		return screens.NewJumpPickerScreen(targets)
	}
	m.OpenHelpModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewHelpScreen(model, scope)
	}
	RegisterCommands(m.CommandRegistry(), rt)
}

// Run starts the TUI in the alternate screen and blocks until it exits.
func Run(rt *Runtime, opts ...tea.ProgramOption) error {
	defer rt.Dashboard.Close()
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(rt), opts...).Run()
	return err
}
