package core

import "strings"

// Scopes of the panes that own keys of their own.
const (
	ScopeControls = "pane:dashboard:controls"
	ScopeTable    = "pane:dashboard:table"
	ScopeGraph    = "pane:graph:nodes"
	ScopeMermaid  = "pane:graph:mermaid"
)

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"v"}, Action: "jump", Description: "jump", Scopes: []string{"*"}},
		{Keys: []string{"left", "right", "up", "down"}, Action: "pane-nav", Description: "select pane", Scopes: []string{"*"}},
		{Keys: []string{"enter"}, Action: "pane-focus", Description: "focus pane", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: "pane-blur", Description: "unfocus", Scopes: []string{ScopeControls, ScopeTable, ScopeGraph, ScopeMermaid}},
		{Keys: []string{"j", "down"}, Action: "cursor-down", Description: "down", Scopes: []string{ScopeControls, ScopeTable, ScopeGraph, ScopeMermaid}},
		{Keys: []string{"k", "up"}, Action: "cursor-up", Description: "up", Scopes: []string{ScopeControls, ScopeTable, ScopeGraph, ScopeMermaid}},
		{Keys: []string{"space", " ", "x"}, Action: "toggle", Description: "toggle", Scopes: []string{ScopeControls}},
		{Keys: []string{"+", "="}, Action: "bins-up", Description: "more bins", Scopes: []string{ScopeControls}},
		{Keys: []string{"-", "_"}, Action: "bins-down", Description: "fewer bins", Scopes: []string{ScopeControls}},
		{Keys: []string{"a"}, Action: "group-all", Description: "all in group", Scopes: []string{ScopeControls}},
		{Keys: []string{"n"}, Action: "group-none", Description: "none in group", Scopes: []string{ScopeControls}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"*"}},
		{Keys: []string{"?"}, Action: "help", Description: "help", Scopes: []string{"*"}},
		{Keys: []string{"r"}, Action: CommandActionPrefix + "reset", Description: "reset", Scopes: []string{"*"}},
		{Keys: []string{"o"}, Action: CommandActionPrefix + "choose-attribute", Description: "attribute", Scopes: []string{"*"}},
		{Keys: []string{"w"}, Action: CommandActionPrefix + "save-defaults", Description: "save", Scopes: []string{"*"}},
		{Keys: []string{"e"}, Action: CommandActionPrefix + "export-csv", Description: "export", Scopes: []string{"*"}},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "dashboard", Scopes: []string{"*"}},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "graph", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{"screen:command", "screen:help", "screen:jump-picker", "screen:picker"}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{"screen:command", "screen:jump-picker", "screen:picker"}},
	}
}

// DefaultKeybindingsByAction maps each action to the keys of its first binding.
func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings overrides binding keys per action, e.g. from the
// [keys] section of the config file.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
