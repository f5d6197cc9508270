package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/astview/internal/client"
	"github.com/Mr-Dark-debug/astview/internal/coordinator"
	"github.com/Mr-Dark-debug/astview/internal/render"
	"github.com/Mr-Dark-debug/astview/internal/surface"
	"github.com/Mr-Dark-debug/astview/internal/watch"
)

var errEmptyInput = errors.New("no source to parse")

type renderOptions struct {
	*globalOptions

	expr    string
	exprSet bool
	file    string
	format  string
	service string
	timeout time.Duration
	watch   bool
	noColor bool
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	opts := &renderOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Parse source and print its syntax tree",
		Long: `Sends MicroML source to the parse service and prints the tree.

The source comes from --expr, --file or, when neither is given, stdin.
With --watch the file is rendered again after every save.`,
		Example: `  astview render -e 'let x = 1 in x + 2'
  astview render -f prog.ml --format html
  echo '1 + 2' | astview render --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.expr, "expr", "e", "", "source text to parse")
	f.StringVarP(&opts.file, "file", "f", "", "file containing source text")
	f.StringVar(&opts.format, "format", string(surface.FormatTree), "output format: tree, html, json")
	f.StringVar(&opts.service, "service", "", "parse service base URL (overrides config)")
	f.DurationVar(&opts.timeout, "timeout", 0, "request timeout (overrides config, 0 keeps it)")
	f.BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever --file changes")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colours in tree output")
	cmd.MarkFlagsMutuallyExclusive("expr", "file")

	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command) error {
	format, err := surface.ParseFormat(o.format)
	if err != nil {
		return err
	}
	o.exprSet = cmd.Flags().Changed("expr")
	if o.watch && o.file == "" {
		return errors.New("--watch requires --file")
	}

	cfg, logger, err := o.setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if o.service != "" {
		cfg.Service.BaseURL = o.service
	}
	if o.timeout > 0 {
		cfg.Service.Timeout.Duration = o.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	coord := coordinator.New(
		client.New(cfg.Service),
		logger,
		coordinator.WithTimeout(cfg.Service.Timeout.Duration),
	)
	theme := cliTheme
	if o.noColor {
		theme = render.PlainTheme()
	}
	out := surface.NewWriter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, theme)

	if o.watch {
		return o.runWatch(cmd.Context(), coord, out, logger)
	}

	source, err := o.source(cmd.InOrStdin())
	if err != nil {
		return err
	}
	res := coord.Trigger(cmd.Context(), source, out, out)
	if err := out.Err(); err != nil {
		return err
	}

	switch res.Outcome {
	case coordinator.OutcomeEmpty:
		return errEmptyInput
	case coordinator.OutcomeFailed:
		return fmt.Errorf("rendering failed: %w", res.Err)
	}
	return nil
}

// source picks the text to parse: --expr, then --file, then stdin.
func (o *renderOptions) source(stdin io.Reader) (string, error) {
	switch {
	case o.exprSet:
		return o.expr, nil
	case o.file != "":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return "", fmt.Errorf("reading source: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
}

// runWatch renders the file once, then again on every change until
// interrupted. Failures are shown but do not stop the loop.
func (o *renderOptions) runWatch(ctx context.Context, coord *coordinator.Coordinator, out *surface.Writer, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(o.file, watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}

	trigger := func() {
		source, err := o.source(nil)
		if err != nil {
			logger.Warn("reading watched file", zap.Error(err))
			return
		}
		coord.Trigger(ctx, source, out, out)
	}

	trigger()
	if err := w.Run(ctx, trigger); err != nil {
		return err
	}
	return out.Err()
}
