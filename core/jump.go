package core

import tea "github.com/charmbracelet/bubbletea"

type JumpTarget struct {
	Key   string
	Label string
}

type JumpTargetProvider interface {
	JumpTargets() []JumpTarget
	JumpToTarget(m *Model, key string) (bool, tea.Cmd)
}

// activateJumpPicker opens the jump overlay for the active tab's panes.
func (m *Model) activateJumpPicker() tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	provider, ok := m.tabs[m.activeTab].(JumpTargetProvider)
	if !ok {
		m.SetStatus("No jump targets on " + m.tabs[m.activeTab].Title())
		return nil
	}
	targets := provider.JumpTargets()
	if len(targets) == 0 {
		m.SetStatus("No jump targets on " + m.tabs[m.activeTab].Title())
		return nil
	}
	if m.OpenJumpPickerModal == nil {
		m.SetStatus("Jump picker unavailable")
		return nil
	}
	m.screens.Push(m.OpenJumpPickerModal(m, targets))
	m.SetStatus("Jump: press a pane key")
	return nil
}
