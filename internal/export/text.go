package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/widgets"
)

type textSection struct {
	title  string
	height int
	body   widgets.Widget
}

// writeText renders every widget as the dashboard would, one after another.
func writeText(w io.Writer, v dashboard.View, o options) error {
	width := max(40, o.width)
	heading := func(s string) string {
		return o.profile.String(s).Bold().Foreground(o.profile.Color("#89b4fa")).String()
	}
	clean := func(s string) string {
		if o.profile == termenv.Ascii {
			s = ansi.Strip(s)
		}
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimRight(l, " ")
		}
		return strings.Join(lines, "\n")
	}

	c := v.Controls
	var b strings.Builder
	fmt.Fprintln(&b, heading("Palmer Penguins"))
	fmt.Fprintf(&b, "species: %s  island: %s  sex: %s  attribute: %s  bins: %d\n",
		list(c.Species), list(c.Islands), list(c.Sexes), c.Attribute.Label(), c.Bins)
	fmt.Fprintf(&b, "%d penguins match\n", v.Rows.Len())

	sections := []textSection{
		{dashboard.CountsTitle, 6, widgets.SpeciesBars{Counts: v.Counts}},
		{dashboard.HistogramTitle, 14, widgets.HistogramChart{Histogram: v.Histogram}},
		{dashboard.DensityTitle(v.Density.Attribute), 14, widgets.DensityPlot{Density: v.Density}},
		{dashboard.ScatterTitle, 16, widgets.ScatterPlot{Scatter: v.Scatter}},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "\n%s\n%s\n", heading(s.title), clean(s.body.Render(width, s.height)))
	}

	fmt.Fprintf(&b, "\n%s\n", heading(dashboard.TableTitle))
	if v.Rows.Len() == 0 {
		b.WriteString("(no rows)\n")
	} else {
		rows := make([][]string, 0, v.Rows.Len())
		for _, p := range v.Rows {
			rows = append(rows, Record(p))
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(Columns...).
			Rows(rows...)
		b.WriteString(clean(t.String()) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func list(vals []string) string {
	if len(vals) == 0 {
		return "(none)"
	}
	return strings.Join(vals, ",")
}
