package core

import (
	"cmp"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Command is a named action reachable from the palette or a "command:" key
// binding. Disabled, when set, reports whether the command can run right now.
type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Disabled  bool
	Reason    string
}

type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	r.commands[c.ID] = c
}

func (r *CommandRegistry) Lookup(id string) (Command, bool) {
	c, ok := r.commands[id]
	return c, ok
}

// Search matches query against name, description and id. Enabled commands
// sort first, then by name.
func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]CommandResult, 0, len(r.commands))
	for _, c := range r.commands {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		haystack := strings.ToLower(c.Name + " " + c.Description + " " + c.ID)
		if q != "" && !strings.Contains(haystack, q) {
			continue
		}
		res := CommandResult{CommandID: c.ID, Name: c.Name, Desc: c.Description}
		if c.Disabled != nil {
			res.Disabled, res.Reason = c.Disabled(m)
		}
		results = append(results, res)
	}
	slices.SortFunc(results, func(a, b CommandResult) int {
		return cmp.Or(
			cmp.Compare(boolRank(a.Disabled), boolRank(b.Disabled)),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return results
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.commands[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Disabled != nil {
		if disabled, reason := c.Disabled(m); disabled {
			if reason == "" {
				reason = "command is disabled"
			}
			return StatusCmd(reason)
		}
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
