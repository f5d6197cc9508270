// astview-tui is the interactive terminal viewer for MicroML syntax trees.
//
// Usage:
//
//	astview-tui [flags]
//
// Flags:
//
//	--config    Config file (.toml or .yaml)
//	--service   Parse service base URL (default: http://localhost:5000)
//	--log       Log file (default: ~/.astview/astview.log)
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/astview/internal/client"
	"github.com/Mr-Dark-debug/astview/internal/config"
	"github.com/Mr-Dark-debug/astview/internal/coordinator"
	"github.com/Mr-Dark-debug/astview/internal/logging"
	"github.com/Mr-Dark-debug/astview/internal/tui"
)

func main() {
	var (
		cfgFile string
		service string
		logFile string
	)

	root := &cobra.Command{
		Use:          "astview-tui",
		Short:        "Interactive MicroML syntax tree viewer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if service != "" {
				cfg.Service.BaseURL = service
			}
			// The terminal belongs to the UI, so logs always go to a file.
			if logFile != "" {
				cfg.Log.File = logFile
			}
			if cfg.Log.File == "" {
				cfg.Log.File = logging.DefaultFile()
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml)")
	root.Flags().StringVar(&service, "service", "", "parse service base URL (overrides config)")
	root.Flags().StringVar(&logFile, "log", "", "log file (default ~/.astview/astview.log)")

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

	model := tui.NewModel(coord, parser.URL())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
