package main

import (
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/export"
	"github.com/jask/penguindash/internal/penguins"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one dashboard snapshot to stdout",
	Long: `Applies the configured defaults, overridden by any control flags, and
writes the resulting view as json, yaml, csv (rows only) or text.`,
	Example: `  penguindash export --species Adelie,Gentoo --island Biscoe --sex female,male --format csv
  penguindash export --attribute body_mass_g --bins 15 --format text --width 100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer env.log.Sync() //nolint:errcheck

		flags := cmd.Flags()
		format, _ := flags.GetString("format")
		if format, err = export.ParseFormat(format); err != nil {
			return err
		}

		ctl := env.defaults
		if flags.Changed("species") {
			ctl.Species, _ = flags.GetStringSlice("species")
		}
		if flags.Changed("island") {
			ctl.Islands, _ = flags.GetStringSlice("island")
		}
		if flags.Changed("sex") {
			ctl.Sexes, _ = flags.GetStringSlice("sex")
		}
		if flags.Changed("attribute") {
			attr, _ := flags.GetString("attribute")
			ctl.Attribute = penguins.Attribute(attr)
		}
		if flags.Changed("bins") {
			ctl.Bins, _ = flags.GetInt("bins")
		}

		d, err := dashboard.New(env.table, ctl, dashboard.WithLogger(env.log))
		if err != nil {
			return err
		}
		defer d.Close()

		width, _ := flags.GetInt("width")
		profile := termenv.Ascii
		if color, _ := flags.GetBool("color"); color {
			profile = termenv.NewOutput(os.Stdout).EnvColorProfile()
		}
		return export.Write(cmd.OutOrStdout(), d.Snapshot(), format, export.WithWidth(width), export.WithProfile(profile))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	f := exportCmd.Flags()
	f.StringP("format", "f", export.FormatJSON, "json, yaml, csv or text")
	f.StringSlice("species", nil, "species to include")
	f.StringSlice("island", nil, "islands to include")
	f.StringSlice("sex", nil, "sexes to include")
	f.String("attribute", "", "histogram and density attribute")
	f.Int("bins", dashboard.DefaultBins, "histogram bins")
	f.Int("width", 80, "chart width for text output")
	f.Bool("color", false, "keep terminal colours in text output")
}
