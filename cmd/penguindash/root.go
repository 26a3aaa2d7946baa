package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/penguindash/app"
	"github.com/jask/penguindash/internal/config"
	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/logging"
	"github.com/jask/penguindash/internal/penguins"
)

var (
	configPath string
	dataPath   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "penguindash",
	Short: "Interactive dashboard over the Palmer penguins dataset",
	Long: `penguindash filters the Palmer penguins by species, island and sex and
shows species counts, a histogram, a density plot, a scatter plot and the
matching rows. Every view updates as soon as a control changes.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer env.log.Sync() //nolint:errcheck

		d, err := dashboard.New(env.table, env.defaults, dashboard.WithLogger(env.log))
		if err != nil {
			return err
		}
		rt, err := app.NewRuntime(d, env.cfg, env.configPath, env.log)
		if err != nil {
			return err
		}
		return app.Run(rt)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $PENGUINDASH_CONFIG or ~/.config/penguindash/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "CSV replacing the embedded dataset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// env is what every subcommand needs: configuration, data and a logger.
type env struct {
	cfg        config.Config
	configPath string
	table      penguins.Table
	defaults   dashboard.Controls
	log        *zap.Logger
}

func loadEnv(tui bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Verbose: verbose, File: cfg.Log.File, TUI: tui})
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.Controls()
	if err != nil {
		return nil, err
	}

	path := dataPath
	if path == "" {
		path = cfg.Data.Path
	}
	var tbl penguins.Table
	if path != "" {
		tbl, err = penguins.LoadFile(path)
	} else {
		tbl, err = penguins.Default()
	}
	if err != nil {
		return nil, err
	}
	log.Debug("dataset loaded", zap.String("path", path), zap.Int("rows", tbl.Len()))

	cp := configPath
	if cp == "" {
		cp = config.Path()
	}
	return &env{cfg: cfg, configPath: cp, table: tbl, defaults: defaults, log: log}, nil
}
