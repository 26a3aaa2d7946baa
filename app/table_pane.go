package app

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
	"github.com/jask/penguindash/internal/reactive"
	"github.com/jask/penguindash/widgets"
)

type tableColumn struct {
	title string
	min   int
	cell  func(penguins.Penguin) string
}

var tableColumns = []tableColumn{
	{"species", 9, func(p penguins.Penguin) string { return p.Species }},
	{"island", 9, func(p penguins.Penguin) string { return p.Island }},
	{"bill_length_mm", 6, func(p penguins.Penguin) string { return measure(p.BillLengthMM) }},
	{"bill_depth_mm", 6, func(p penguins.Penguin) string { return measure(p.BillDepthMM) }},
	{"flipper_length_mm", 6, func(p penguins.Penguin) string { return measure(p.FlipperLengthMM) }},
	{"body_mass_g", 6, func(p penguins.Penguin) string { return measure(p.BodyMassG) }},
	{"sex", 6, func(p penguins.Penguin) string { return orNA(p.Sex) }},
	{"year", 4, func(p penguins.Penguin) string { return strconv.Itoa(p.Year) }},
}

func measure(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}

// TablePane lists the filtered penguins. Rows are captured by an effect on
// the filtered view; the cursor moves only while the pane is focused.
type TablePane struct {
	id      string
	title   string
	scope   string
	jump    byte
	focus   bool
	rows    int
	model   table.Model
	effect  *reactive.Effect
	focused bool
}

func NewTablePane(spec core.PaneSpec, rt *Runtime) *TablePane {
	cols := make([]table.Column, len(tableColumns))
	for i, c := range tableColumns {
		cols[i] = table.Column{Title: c.title, Width: c.min}
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#585b70")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1e1e2e")).
		Background(lipgloss.Color("#89b4fa"))

	p := &TablePane{
		id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable,
		model: table.New(table.WithColumns(cols), table.WithHeight(rt.tableHeight()), table.WithStyles(styles)),
	}
	p.effect = rt.Dashboard.Subscribe(dashboard.WidgetTable, func(d *dashboard.Dashboard) {
		p.setRows(d.Filtered())
	})
	return p
}

func (p *TablePane) setRows(tbl penguins.Table) {
	rows := make([]table.Row, len(tbl))
	for i, pg := range tbl {
		row := make(table.Row, len(tableColumns))
		for j, c := range tableColumns {
			row[j] = c.cell(pg)
		}
		rows[i] = row
	}
	p.rows = len(rows)
	p.model.SetRows(rows)
	if p.model.Cursor() >= len(rows) {
		p.model.SetCursor(max(0, len(rows)-1))
	}
}

func (p *TablePane) ID() string      { return p.id }
func (p *TablePane) Title() string   { return p.title }
func (p *TablePane) Scope() string   { return p.scope }
func (p *TablePane) JumpKey() byte   { return p.jump }
func (p *TablePane) Focusable() bool { return p.focus }
func (p *TablePane) Init() tea.Cmd   { return nil }
func (p *TablePane) OnSelect() tea.Cmd {
	return nil
}
func (p *TablePane) OnDeselect() tea.Cmd { return nil }
func (p *TablePane) OnFocus() tea.Cmd {
	p.focused = true
	p.model.Focus()
	return nil
}
func (p *TablePane) OnBlur() tea.Cmd {
	p.focused = false
	p.model.Blur()
	return nil
}

// Rows reports how many rows the table currently holds.
func (p *TablePane) Rows() int { return p.rows }

func (p *TablePane) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return nil
	}
	keys := m.Keys()
	switch {
	case keys.IsAction(keyMsg, "cursor-down", p.scope):
		p.model.MoveDown(1)
		return nil
	case keys.IsAction(keyMsg, "cursor-up", p.scope):
		p.model.MoveUp(1)
		return nil
	}
	var cmd tea.Cmd
	p.model, cmd = p.model.Update(msg)
	return cmd
}

func (p *TablePane) View(width, height int, selected, focused bool) string {
	chrome := widgets.Pane{Title: dashboard.TableTitle, Selected: selected, Focused: focused}
	innerW, innerH := chrome.Inner(width, height)
	p.resize(innerW, innerH)
	chrome.Badge = fmt.Sprintf("%d rows", p.rows)
	if p.rows == 0 {
		chrome.Body = widgets.Text(widgets.Empty(innerW, innerH))
	} else {
		chrome.Content = p.model.View()
	}
	return chrome.Render(width, height)
}

// resize spreads the inner width over the columns, never below their
// minimum widths.
func (p *TablePane) resize(width, height int) {
	cols := p.model.Columns()
	total := 0
	for _, c := range tableColumns {
		total += c.min + 2
	}
	extra := max(0, width-total)
	for i, c := range tableColumns {
		share := extra / len(tableColumns)
		if i < extra%len(tableColumns) {
			share++
		}
		cols[i].Width = c.min + share
	}
	p.model.SetColumns(cols)
	p.model.SetWidth(width)
	p.model.SetHeight(max(2, height-1))
}
