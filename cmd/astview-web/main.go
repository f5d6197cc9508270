// astview-web serves the browser viewer for MicroML syntax trees.
//
// Usage:
//
//	astview-web [flags]
//
// Flags:
//
//	--config    Config file (.toml or .yaml)
//	--listen    HTTP listen address (default: 127.0.0.1:8080)
//	--service   Parse service base URL (default: http://localhost:5000)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/astview/internal/client"
	"github.com/Mr-Dark-debug/astview/internal/config"
	"github.com/Mr-Dark-debug/astview/internal/coordinator"
	"github.com/Mr-Dark-debug/astview/internal/logging"
	"github.com/Mr-Dark-debug/astview/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		cfgFile string
		listen  string
		service string
	)

	root := &cobra.Command{
		Use:          "astview-web",
		Short:        "Serve the astview browser viewer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Web.ListenAddr = listen
			}
			if service != "" {
				cfg.Service.BaseURL = service
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml)")
	root.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config)")
	root.Flags().StringVar(&service, "service", "", "parse service base URL (overrides config)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	parser := client.New(cfg.Service)
	coord := coordinator.New(parser, logger, coordinator.WithTimeout(cfg.Service.Timeout.Duration))
	srv := web.NewServer(cfg.Web, coord, logger)

	if err := srv.Start(); err != nil {
		return err
	}

	// Print startup banner
	fmt.Println()
	fmt.Println("  ASTVIEW WEB")
	fmt.Println("  MicroML syntax tree viewer")
	fmt.Println()
	fmt.Printf("  Viewer:  http://%s/\n", srv.Addr())
	fmt.Printf("  Parser:  %s\n", parser.URL())
	fmt.Printf("  Metrics: http://%s/metrics\n", srv.Addr())
	fmt.Println()
	fmt.Println("  Press Ctrl+C to stop.")
	fmt.Println()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n  Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
		return err
	}

	st := coord.Stats()
	fmt.Printf("  Done. %d parses, %d failed.\n", st.Triggers, st.Failed)
	return nil
}
