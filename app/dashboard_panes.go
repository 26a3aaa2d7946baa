package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/reactive"
	"github.com/jask/penguindash/widgets"
)

// chartPane shows one widget. Its effect captures the widget data whenever
// an input it depends on changes; View only lays the captured data out.
type chartPane struct {
	id      string
	title   string
	scope   string
	jump    byte
	focus   bool
	heading string
	body    widgets.Widget
	effect  *reactive.Effect
}

type chartCapture func(d *dashboard.Dashboard) (heading string, body widgets.Widget)

func newChartPane(spec core.PaneSpec, rt *Runtime, w dashboard.Widget, capture chartCapture) *chartPane {
	p := &chartPane{id: spec.ID, title: spec.Title, scope: spec.Scope, jump: spec.JumpKey, focus: spec.Focusable}
	p.effect = rt.Dashboard.Subscribe(w, func(d *dashboard.Dashboard) {
		p.heading, p.body = capture(d)
	})
	return p
}

func captureCounts(d *dashboard.Dashboard) (string, widgets.Widget) {
	return dashboard.CountsTitle, widgets.SpeciesBars{Counts: d.SpeciesCounts()}
}

func captureHistogram(d *dashboard.Dashboard) (string, widgets.Widget) {
	h := d.Histogram()
	return dashboard.HistogramTitle, widgets.HistogramChart{Histogram: h}
}

func captureDensity(d *dashboard.Dashboard) (string, widgets.Widget) {
	den := d.Density()
	return dashboard.DensityTitle(den.Attribute), widgets.DensityPlot{Density: den}
}

func captureScatter(d *dashboard.Dashboard) (string, widgets.Widget) {
	return dashboard.ScatterTitle, widgets.ScatterPlot{Scatter: d.Scatter()}
}

func (p *chartPane) ID() string                              { return p.id }
func (p *chartPane) Title() string                           { return p.title }
func (p *chartPane) Scope() string                           { return p.scope }
func (p *chartPane) JumpKey() byte                           { return p.jump }
func (p *chartPane) Focusable() bool                         { return p.focus }
func (p *chartPane) Init() tea.Cmd                           { return nil }
func (p *chartPane) Update(_ *core.Model, _ tea.Msg) tea.Cmd { return nil }
func (p *chartPane) OnSelect() tea.Cmd                       { return nil }
func (p *chartPane) OnDeselect() tea.Cmd                     { return nil }
func (p *chartPane) OnFocus() tea.Cmd                        { return nil }
func (p *chartPane) OnBlur() tea.Cmd                         { return nil }

// Renders reports how many times the pane's effect has run.
func (p *chartPane) Renders() int { return p.effect.Runs() }

func (p *chartPane) View(width, height int, selected, focused bool) string {
	return widgets.Pane{
		Title:    p.heading,
		Badge:    fmt.Sprintf("%d renders", p.effect.Runs()),
		Body:     p.body,
		Selected: selected,
		Focused:  focused,
	}.Render(width, height)
}

// header is the banner row above the panes. It is not selectable.
type header struct {
	title   string
	summary string
	rows    int
	total   int
}

func newHeader(rt *Runtime) *header {
	h := &header{title: rt.title()}
	rt.Dashboard.Subscribe(dashboard.WidgetHeader, func(d *dashboard.Dashboard) {
		h.summary = summarize(d.Controls())
		h.rows = d.Filtered().Len()
		h.total = d.Table().Len()
	})
	return h
}

func (h *header) Render(width, height int) string {
	return widgets.Banner{Title: h.title, Summary: h.summary, Rows: h.rows, Total: h.total}.Render(width, height)
}

// summarize renders the controls as one line, e.g.
// "Adelie · Biscoe · female · Bill Length Mm · 10 bins".
func summarize(c dashboard.Controls) string {
	set := func(vals []string) string {
		if len(vals) == 0 {
			return "none"
		}
		return strings.Join(vals, ", ")
	}
	return strings.Join([]string{
		set(c.Species),
		set(c.Islands),
		set(c.Sexes),
		c.Attribute.Label(),
		fmt.Sprintf("%d bins", c.Bins),
	}, " · ")
}
