package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
	"github.com/jask/penguindash/widgets"
)

// Control item ids are "<field>:<value>"; field is one of the dashboard
// toggle fields, "attribute" or "bins".
const (
	fieldSpecies   = "species"
	fieldIsland    = "island"
	fieldSex       = "sex"
	fieldAttribute = "attribute"
	fieldBins      = "bins"
)

var (
	controlsSection = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Bold(true)
	controlsCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	controlsOn      = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
	controlsOff     = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
)

// ControlsPane edits the dashboard inputs. The picker's checked set mirrors
// the dashboard through an effect, so commands that change the controls
// (reset, select all) show up here too.
type ControlsPane struct {
	id      string
	title   string
	scope   string
	jump    byte
	focus   bool
	focused bool
	rt      *Runtime
	picker  *core.Picker
	bins    int
}

func NewControlsPane(spec core.PaneSpec, rt *Runtime) *ControlsPane {
	var items []core.PickerItem
	add := func(section, field string, values []string, label func(string) string) {
		for _, v := range values {
			items = append(items, core.PickerItem{ID: field + ":" + v, Label: label(v), Section: section})
		}
	}
	same := func(s string) string { return s }
	add("Species", fieldSpecies, penguins.AllSpecies, same)
	add("Island", fieldIsland, penguins.AllIslands, same)
	add("Sex", fieldSex, penguins.AllSexes, same)
	add("Attribute", fieldAttribute, penguins.AttributeNames(), func(s string) string { return penguins.Attribute(s).Label() })
	items = append(items, core.PickerItem{ID: fieldBins + ":", Label: "Bins", Section: "Bins"})

	p := &ControlsPane{
		id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable,
		rt:     rt,
		picker: core.NewPicker(spec.Title, items),
	}
	p.picker.SetMultiSelect(true)
	rt.Dashboard.Subscribe(dashboard.WidgetControls, func(d *dashboard.Dashboard) {
		p.sync(d.Controls())
	})
	return p
}

func (p *ControlsPane) sync(c dashboard.Controls) {
	checked := make([]string, 0, len(c.Species)+len(c.Islands)+len(c.Sexes)+1)
	for _, v := range c.Species {
		checked = append(checked, fieldSpecies+":"+v)
	}
	for _, v := range c.Islands {
		checked = append(checked, fieldIsland+":"+v)
	}
	for _, v := range c.Sexes {
		checked = append(checked, fieldSex+":"+v)
	}
	checked = append(checked, fieldAttribute+":"+string(c.Attribute))
	p.picker.SetChecked(checked)
	p.bins = c.Bins
}

func (p *ControlsPane) ID() string          { return p.id }
func (p *ControlsPane) Title() string       { return p.title }
func (p *ControlsPane) Scope() string       { return p.scope }
func (p *ControlsPane) JumpKey() byte       { return p.jump }
func (p *ControlsPane) Focusable() bool     { return p.focus }
func (p *ControlsPane) Init() tea.Cmd       { return nil }
func (p *ControlsPane) OnSelect() tea.Cmd   { return nil }
func (p *ControlsPane) OnDeselect() tea.Cmd { return nil }
func (p *ControlsPane) OnFocus() tea.Cmd {
	p.focused = true
	return nil
}
func (p *ControlsPane) OnBlur() tea.Cmd {
	p.focused = false
	return nil
}

// Checked returns the ids of the checked items, e.g. "species:Adelie".
func (p *ControlsPane) Checked() []string { return p.picker.CheckedIDs() }

func (p *ControlsPane) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return nil
	}
	keys := m.Keys()
	d := p.rt.Dashboard
	var err error
	switch {
	case keys.IsAction(keyMsg, "cursor-down", p.scope):
		p.picker.CursorDown()
		return nil
	case keys.IsAction(keyMsg, "cursor-up", p.scope):
		p.picker.CursorUp()
		return nil
	case keys.IsAction(keyMsg, "bins-up", p.scope):
		d.StepBins(1)
	case keys.IsAction(keyMsg, "bins-down", p.scope):
		d.StepBins(-1)
	case keys.IsAction(keyMsg, "toggle", p.scope):
		err = p.toggleCurrent()
	case keys.IsAction(keyMsg, "group-all", p.scope):
		err = p.setGroup(true)
	case keys.IsAction(keyMsg, "group-none", p.scope):
		err = p.setGroup(false)
	default:
		return nil
	}
	if err != nil {
		return core.ErrorCmd(err)
	}
	m.SetStatus(matchStatus(d))
	return nil
}

func matchStatus(d *dashboard.Dashboard) string {
	return fmt.Sprintf("%d of %d penguins match", d.Filtered().Len(), d.Table().Len())
}

func (p *ControlsPane) current() (field, value string, ok bool) {
	item, ok := p.picker.CurrentItem()
	if !ok {
		return "", "", false
	}
	field, value, _ = strings.Cut(item.ID, ":")
	return field, value, true
}

func (p *ControlsPane) toggleCurrent() error {
	field, value, ok := p.current()
	if !ok {
		return nil
	}
	d := p.rt.Dashboard
	switch field {
	case fieldSpecies, fieldIsland, fieldSex:
		return d.Toggle(field, value)
	case fieldAttribute:
		return d.SetAttribute(penguins.Attribute(value))
	}
	return nil
}

// setGroup checks or clears every value in the cursor's section.
func (p *ControlsPane) setGroup(all bool) error {
	field, _, ok := p.current()
	if !ok {
		return nil
	}
	pick := func(vocab []string) []string {
		if all {
			return vocab
		}
		return nil
	}
	d := p.rt.Dashboard
	switch field {
	case fieldSpecies:
		return d.SetSpecies(pick(penguins.AllSpecies))
	case fieldIsland:
		return d.SetIslands(pick(penguins.AllIslands))
	case fieldSex:
		return d.SetSexes(pick(penguins.AllSexes))
	}
	return nil
}

func (p *ControlsPane) View(width, height int, selected, focused bool) string {
	chrome := widgets.Pane{Title: p.title, Selected: selected, Focused: focused}
	_, innerH := chrome.Inner(width, height)
	lines, cursorLine := p.lines()
	top := 0
	if cursorLine >= innerH {
		top = cursorLine - innerH + 1
	}
	chrome.Content = strings.Join(lines[min(top, len(lines)):], "\n")
	if focused {
		chrome.Badge = "space toggle · +/- bins"
	}
	return chrome.Render(width, height)
}

// lines renders every section and returns the line index of the cursor.
func (p *ControlsPane) lines() ([]string, int) {
	items := p.picker.Items()
	cursor := p.picker.Cursor()
	out := make([]string, 0, len(items)+5)
	cursorLine := 0
	section := ""
	for i, item := range items {
		if item.Section != section {
			section = item.Section
			out = append(out, controlsSection.Render(section))
		}
		marker := "  "
		if i == cursor && p.focused {
			marker = controlsCursor.Render("› ")
			cursorLine = len(out)
		}
		out = append(out, marker+p.renderItem(item))
	}
	return out, cursorLine
}

func (p *ControlsPane) renderItem(item core.PickerItem) string {
	field, value, _ := strings.Cut(item.ID, ":")
	on := p.picker.IsChecked(item.ID)
	label := item.Label
	if field == fieldSpecies {
		label = widgets.SpeciesStyle(value).Render(label)
	}
	switch field {
	case fieldBins:
		return fmt.Sprintf("%s %s %s  %s",
			controlsOff.Render("−"), controlsOn.Render(fmt.Sprintf("%2d", p.bins)), controlsOff.Render("+"),
			controlsOff.Render(fmt.Sprintf("(%d-%d)", dashboard.MinBins, dashboard.MaxBins)))
	case fieldAttribute:
		if on {
			return controlsOn.Render("(•) ") + label
		}
		return controlsOff.Render("( ) ") + label
	default:
		if on {
			return controlsOn.Render("[x] ") + label
		}
		return controlsOff.Render("[ ] ") + label
	}
}
