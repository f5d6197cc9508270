package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/astview/internal/config"
	"github.com/Mr-Dark-debug/astview/internal/logging"
	"github.com/Mr-Dark-debug/astview/internal/render"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "astview",
		Short: "Render MicroML syntax trees",
		Long: `astview sends MicroML source to a parse service and prints the
returned syntax tree as an indented tree, an HTML fragment or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (.toml, .yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI and reports errors on stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// setup loads configuration and builds the logger for a subcommand.
func (o *globalOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// cliTheme colours the text tree. lipgloss drops colours when stdout is
// not a terminal.
var cliTheme = render.Theme{
	Kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("#bc8cff")).Bold(true),
	Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3fb950")),
	Branch: lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58")),
	Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149")),
}
