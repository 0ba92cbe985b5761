// Package main provides the CLI entry point for plycat.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"plycat/internal/config"
	"plycat/internal/server"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "plycat",
		Short: "Plywood catalog service",
		Long: `plycat serves a plywood product catalog published as a spreadsheet.
It fetches the sheet's CSV or XLSX export, decodes it into records, and
renders a catalog page with an admin write-back API.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "plycat.yaml", "Config file path")

	rootCmd.AddCommand(serveCmd(), exportCmd(), checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log, err := newLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer log.Sync()

			srv, err := server.New(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
