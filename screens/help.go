package screens

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jask/penguindash/core"
)

// HelpScreen renders the shortcuts and commands for a scope as markdown.
type HelpScreen struct {
	markdown string
	width    int
	rendered string
	vp       viewport.Model
}

func NewHelpScreen(m *core.Model, scope string) *HelpScreen {
	return NewHelpScreenFromMarkdown(HelpMarkdown(
		scope,
		m.Keys().BindingsForScope(scope),
		m.CommandRegistry().Search("", scope, m),
	))
}

func NewHelpScreenFromMarkdown(md string) *HelpScreen {
	return &HelpScreen{markdown: md, vp: viewport.New(60, 16)}
}

// HelpMarkdown lists bindings once per action followed by the commands.
func HelpMarkdown(scope string, bindings []core.KeyBinding, commands []core.CommandResult) string {
	var b strings.Builder
	b.WriteString("# Palmer Penguins\n\n")
	b.WriteString("Filters on the **Controls** pane drive every chart and the table. ")
	b.WriteString("A row is shown when its species, island and sex are all selected; ")
	b.WriteString("penguins with no recorded sex never match.\n\n")
	fmt.Fprintf(&b, "## Keys (`%s`)\n\n| key | action |\n|---|---|\n", scope)
	seen := map[string]bool{}
	for _, kb := range bindings {
		if seen[kb.Action] || kb.Description == "" || len(kb.Keys) == 0 {
			continue
		}
		seen[kb.Action] = true
		keys := make([]string, 0, len(kb.Keys))
		for _, k := range kb.Keys {
			if strings.TrimSpace(k) == "" {
				k = "space"
			}
			if k = "`" + k + "`"; !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
		fmt.Fprintf(&b, "| %s | %s |\n", strings.Join(keys, " "), kb.Description)
	}
	if len(commands) > 0 {
		b.WriteString("\n## Commands (ctrl+k)\n\n")
		for _, c := range commands {
			line := "- **" + c.Name + "**"
			if c.Desc != "" {
				line += ": " + c.Desc
			}
			if c.Disabled && c.Reason != "" {
				line += " _(" + c.Reason + ")_"
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func (s *HelpScreen) Title() string { return "Help" }
func (s *HelpScreen) Scope() string { return "screen:help" }

func (s *HelpScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "q":
			return s, nil, true
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd, false
}

func (s *HelpScreen) View(width, height int) string {
	width = max(20, width)
	if width != s.width || s.rendered == "" {
		s.width = width
		s.rendered = renderMarkdown(s.markdown, width)
		s.vp.SetContent(s.rendered)
	}
	s.vp.Width = width
	s.vp.Height = max(4, height-1)
	return s.vp.View() + "\nj/k scroll · esc close"
}

func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(10, width-4)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
