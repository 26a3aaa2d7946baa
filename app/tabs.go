package app

import (
	"github.com/jask/penguindash/core"
	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/widgets"
)

func Tabs(rt *Runtime) []core.Tab {
	return []core.Tab{
		NewDashboardTab(rt),
		NewGraphTab(rt),
	}
}

// NewDashboardTab lays out the banner, the four charts, the controls and the
// table. Each pane subscribes to the dashboard when it is built.
func NewDashboardTab(rt *Runtime) core.Tab {
	chart := func(w dashboard.Widget, capture chartCapture) func(core.PaneSpec) core.Pane {
		return func(spec core.PaneSpec) core.Pane { return newChartPane(spec, rt, w, capture) }
	}
	specs := []core.PaneSpec{
		{ID: "bars", Title: "Species", Scope: "pane:dashboard:bars", JumpKey: 'b', Focusable: true, Factory: chart(dashboard.WidgetCounts, captureCounts)},
		{ID: "histogram", Title: "Histogram", Scope: "pane:dashboard:histogram", JumpKey: 'h', Focusable: true, Factory: chart(dashboard.WidgetHistogram, captureHistogram)},
		{ID: "density", Title: "Density", Scope: "pane:dashboard:density", JumpKey: 'd', Focusable: true, Factory: chart(dashboard.WidgetDensity, captureDensity)},
		{ID: "scatter", Title: "Scatter", Scope: "pane:dashboard:scatter", JumpKey: 's', Focusable: true, Factory: chart(dashboard.WidgetScatter, captureScatter)},
		{ID: "controls", Title: "Controls", Scope: core.ScopeControls, JumpKey: 'c', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewControlsPane(spec, rt)
		}},
		{ID: "table", Title: "Table", Scope: core.ScopeTable, JumpKey: 't', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewTablePane(spec, rt)
		}},
	}
	banner := newHeader(rt)
	layout := func(host *core.PaneHost, m *core.Model) widgets.Widget {
		top := widgets.HStack{
			Widgets: []widgets.Widget{host.BuildPane("bars"), host.BuildPane("histogram"), host.BuildPane("density")},
			Ratios:  []float64{0.3, 0.35, 0.35},
			Gap:     1,
		}
		middle := widgets.HStack{
			Widgets: []widgets.Widget{host.BuildPane("scatter"), host.BuildPane("controls")},
			Ratios:  []float64{0.7, 0.3},
			Gap:     1,
		}
		return widgets.VStack{
			Widgets: []widgets.Widget{banner, top, middle, host.BuildPane("table")},
			Fixed:   []int{4, 0, 0, rt.tableHeight() + 3},
			Ratios:  []float64{0, 0.5, 0.5, 0},
		}
	}
	return core.NewGeneratedTab("dashboard", "Dashboard", specs, layout)
}
