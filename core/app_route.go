package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.screens.Pop()
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case TabSwitchMsg:
		m.SwitchTab(msg.Index)
		return m, nil
	case JumpTargetSelectedMsg:
		if len(m.tabs) == 0 {
			return m, nil
		}
		provider, ok := m.tabs[m.activeTab].(JumpTargetProvider)
		if !ok {
			return m, nil
		}
		if handled, cmd := provider.JumpToTarget(&m, msg.Key); handled {
			return m, cmd
		}
		m.SetStatus("No pane mapped to " + msg.Key)
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.screens.Top() != nil {
		return m.updateScreen(msg)
	}
	if len(m.tabs) > 0 {
		return m, m.tabs[m.activeTab].Update(&m, msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.screens.Top() != nil {
		return m.updateScreen(msg)
	}

	scope := m.ActiveScope()
	if m.keys.IsAction(msg, "quit", scope) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.keys.IsAction(msg, "jump", scope) {
		return m, m.activateJumpPicker()
	}
	if len(m.tabs) > 0 {
		if handler, ok := m.tabs[m.activeTab].(PaneKeyHandler); ok {
			if handled, cmd := handler.HandlePaneKey(&m, msg); handled {
				return m, cmd
			}
		}
	}
	if m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil {
		m.screens.Push(m.OpenCommandModal(&m, scope))
		return m, nil
	}
	if m.keys.IsAction(msg, "help", scope) && m.OpenHelpModal != nil {
		m.screens.Push(m.OpenHelpModal(&m, scope))
		return m, nil
	}
	for i := range m.tabs {
		if m.keys.IsAction(msg, fmt.Sprintf("switch-tab-%d", i+1), scope) {
			m.SwitchTab(i)
			return m, nil
		}
	}
	if id, ok := m.keys.CommandFor(msg, scope); ok {
		return m, m.commands.Execute(id, &m)
	}
	if len(m.tabs) > 0 {
		return m, m.tabs[m.activeTab].Update(&m, msg)
	}
	return m, nil
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, pop := m.screens.Top().Update(msg)
	if pop {
		m.screens.Pop()
		return m, cmd
	}
	m.screens.replaceTop(next)
	return m, cmd
}
