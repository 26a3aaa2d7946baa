package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/export"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the reactive graph as Mermaid",
	Long:  `Builds the dashboard with the configured defaults, evaluates every widget and prints the dependency graph as a Mermaid flowchart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer env.log.Sync() //nolint:errcheck

		d, err := dashboard.New(env.table, env.defaults, dashboard.WithLogger(env.log))
		if err != nil {
			return err
		}
		defer d.Close()
		for w, read := range widgetReads {
			d.Subscribe(w, read)
		}
		fmt.Fprint(cmd.OutOrStdout(), export.MermaidGraph(d.Graph().Nodes()))
		return nil
	},
}

// widgetReads mirrors what each TUI pane reads, so the printed graph has
// the same shape as the interactive one.
var widgetReads = map[dashboard.Widget]func(*dashboard.Dashboard){
	dashboard.WidgetCounts:    func(d *dashboard.Dashboard) { d.SpeciesCounts() },
	dashboard.WidgetHistogram: func(d *dashboard.Dashboard) { d.Histogram() },
	dashboard.WidgetDensity:   func(d *dashboard.Dashboard) { d.Density() },
	dashboard.WidgetScatter:   func(d *dashboard.Dashboard) { d.Scatter() },
	dashboard.WidgetTable:     func(d *dashboard.Dashboard) { d.Filtered() },
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
