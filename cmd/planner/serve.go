package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/semester-planner/internal/api"
	"github.com/Veraticus/semester-planner/internal/certs"
	"github.com/Veraticus/semester-planner/internal/cli"
	"github.com/Veraticus/semester-planner/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Long: `Serve the local catalog database as a JSON API.

Other planner installs can point api.url at this server to read the same
catalog. Routes live under /api; GET /healthcheck reports liveness.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:5001)")
	cmd.Flags().Bool("tls", false, "Serve HTTPS with a generated self-signed certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if n, err := store.CountCourses(ctx); err == nil && n == 0 {
		slog.Warn(cli.FormatWarning("The catalog is empty"), "hint", "run \"planner catalog import --default\"")
	}

	handler := cli.NewInterruptHandler(os.Stderr, "Server", "")
	ctx = handler.HandleInterrupts(ctx)
	defer handler.Stop()

	apiCfg := api.Config{
		Addr:        cfg.ServerAddr,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.ServerTLS {
		manager := certs.NewFileManager(cfg.CertDir, cfg.TLSHosts...)
		apiCfg.TLS, err = manager.TLSConfig()
		if err != nil {
			return fmt.Errorf("failed to prepare TLS certificate: %w", err)
		}
		slog.Info("Serving HTTPS; clients should set api.ca_file", "ca_file", manager.CertFile())
	}

	server := api.NewServer(store, apiCfg, slog.Default())

	slog.Info("🎓 Serving catalog", "database", store.Path())
	if err := server.Run(ctx); err != nil {
		return err
	}
	slog.Info("Catalog API stopped")
	return nil
}
