package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jask/penguindash/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Serves the dashboard as JSON, YAML, CSV and text over HTTP, plus Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer env.log.Sync() //nolint:errcheck

		addr := env.cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(env.table, env.defaults, server.WithLogger(env.log))
		return srv.Serve(ctx, server.ServeOptions{
			Addr:            addr,
			ReadTimeout:     env.cfg.Server.ReadTimeout,
			ShutdownTimeout: env.cfg.Server.ShutdownTimeout,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address (overrides server.addr)")
}
