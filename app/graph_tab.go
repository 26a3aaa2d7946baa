package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/export"
	"github.com/jask/penguindash/internal/reactive"
	"github.com/jask/penguindash/widgets"
)

var (
	nodeKindStyle = map[reactive.Kind]lipgloss.Style{
		reactive.KindInput:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")),
		reactive.KindComputed: lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")),
		reactive.KindEffect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
	}
	nodeMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

func NewGraphTab(rt *Runtime) core.Tab {
	specs := []core.PaneSpec{
		{ID: "nodes", Title: "Nodes", Scope: core.ScopeGraph, JumpKey: 'n', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewNodesPane(spec, rt)
		}},
		{ID: "mermaid", Title: "Mermaid", Scope: core.ScopeMermaid, JumpKey: 'm', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewMermaidPane(spec, rt)
		}},
	}
	layout := func(host *core.PaneHost, m *core.Model) widgets.Widget {
		return widgets.HStack{
			Widgets: []widgets.Widget{host.BuildPane("nodes"), host.BuildPane("mermaid")},
			Ratios:  []float64{0.55, 0.45},
			Gap:     1,
		}
	}
	return core.NewGeneratedTab("graph", "Graph", specs, layout)
}

// NodesPane lists the dashboard's reactive nodes with their run counts. It
// reads the graph on every render, so it always shows current counts.
type NodesPane struct {
	id      string
	title   string
	scope   string
	jump    byte
	focus   bool
	focused bool
	rt      *Runtime
	cursor  int
}

func NewNodesPane(spec core.PaneSpec, rt *Runtime) *NodesPane {
	return &NodesPane{id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable, rt: rt}
}

func (p *NodesPane) ID() string          { return p.id }
func (p *NodesPane) Title() string       { return p.title }
func (p *NodesPane) Scope() string       { return p.scope }
func (p *NodesPane) JumpKey() byte       { return p.jump }
func (p *NodesPane) Focusable() bool     { return p.focus }
func (p *NodesPane) Init() tea.Cmd       { return nil }
func (p *NodesPane) OnSelect() tea.Cmd   { return nil }
func (p *NodesPane) OnDeselect() tea.Cmd { return nil }
func (p *NodesPane) OnFocus() tea.Cmd {
	p.focused = true
	return nil
}
func (p *NodesPane) OnBlur() tea.Cmd {
	p.focused = false
	return nil
}

// Cursor is the index of the highlighted node.
func (p *NodesPane) Cursor() int { return p.cursor }

func (p *NodesPane) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return nil
	}
	n := len(p.rt.Dashboard.Graph().Nodes())
	switch {
	case m.Keys().IsAction(keyMsg, "cursor-down", p.scope):
		p.cursor = min(p.cursor+1, max(0, n-1))
	case m.Keys().IsAction(keyMsg, "cursor-up", p.scope):
		p.cursor = max(p.cursor-1, 0)
	}
	return nil
}

func (p *NodesPane) View(width, height int, selected, focused bool) string {
	nodes := p.rt.Dashboard.Graph().Nodes()
	chrome := widgets.Pane{Title: p.title, Selected: selected, Focused: focused, Badge: fmt.Sprintf("%d nodes", len(nodes))}
	innerW, innerH := chrome.Inner(width, height)

	nameW := 8
	for _, n := range nodes {
		nameW = max(nameW, len(n.Name))
	}
	nameW = min(nameW, max(8, innerW/2))

	lines := make([]string, 0, len(nodes)+3)
	cursorLine := 0
	for i, n := range nodes {
		marker := "  "
		if i == p.cursor && focused {
			marker = "› "
			cursorLine = len(lines)
		}
		stale := ""
		if n.Stale {
			stale = nodeMuted.Render(" stale")
		}
		kind := nodeKindStyle[n.Kind].Render(fmt.Sprintf("%-8s", n.Kind))
		lines = append(lines, fmt.Sprintf("%s%-*s %s %4d runs%s", marker, nameW, n.Name, kind, n.Runs, stale))
	}
	if p.cursor < len(nodes) {
		n := nodes[p.cursor]
		reads := "nothing"
		if len(n.Sources) > 0 {
			reads = strings.Join(n.Sources, ", ")
		}
		lines = append(lines, "", nodeMuted.Render(n.Name+" reads: ")+reads)
	}
	top := 0
	if cursorLine >= innerH-2 {
		top = cursorLine - (innerH - 2) + 1
	}
	chrome.Content = strings.Join(lines[min(top, len(lines)):], "\n")
	return chrome.Render(width, height)
}

// MermaidPane shows the graph as a Mermaid flowchart, ready to paste into
// any renderer.
type MermaidPane struct {
	id      string
	title   string
	scope   string
	jump    byte
	focus   bool
	focused bool
	rt      *Runtime
	vp      viewport.Model
}

func NewMermaidPane(spec core.PaneSpec, rt *Runtime) *MermaidPane {
	return &MermaidPane{
		id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable,
		rt: rt,
		vp: viewport.New(40, 10),
	}
}

func (p *MermaidPane) ID() string          { return p.id }
func (p *MermaidPane) Title() string       { return p.title }
func (p *MermaidPane) Scope() string       { return p.scope }
func (p *MermaidPane) JumpKey() byte       { return p.jump }
func (p *MermaidPane) Focusable() bool     { return p.focus }
func (p *MermaidPane) Init() tea.Cmd       { return nil }
func (p *MermaidPane) OnSelect() tea.Cmd   { return nil }
func (p *MermaidPane) OnDeselect() tea.Cmd { return nil }
func (p *MermaidPane) OnFocus() tea.Cmd {
	p.focused = true
	return nil
}
func (p *MermaidPane) OnBlur() tea.Cmd {
	p.focused = false
	return nil
}

func (p *MermaidPane) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return nil
	}
	switch {
	case m.Keys().IsAction(keyMsg, "cursor-down", p.scope):
		p.vp.LineDown(1)
	case m.Keys().IsAction(keyMsg, "cursor-up", p.scope):
		p.vp.LineUp(1)
	}
	return nil
}

func (p *MermaidPane) View(width, height int, selected, focused bool) string {
	chrome := widgets.Pane{Title: p.title, Selected: selected, Focused: focused}
	innerW, innerH := chrome.Inner(width, height)
	p.vp.Width, p.vp.Height = innerW, innerH
	offset := p.vp.YOffset
	p.vp.SetContent(export.MermaidGraph(p.rt.Dashboard.Graph().Nodes()))
	p.vp.SetYOffset(offset)
	if focused {
		chrome.Badge = fmt.Sprintf("%3.0f%%", p.vp.ScrollPercent()*100)
	}
	chrome.Content = p.vp.View()
	return chrome.Render(width, height)
}
