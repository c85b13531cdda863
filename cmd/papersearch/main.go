// Package main is the entry point for the papersearch CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"papersearch/internal/config"
	"papersearch/internal/search"
	"papersearch/internal/trace"
	"papersearch/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	tracer *trace.Provider
	logger *slog.Logger
}

// rootCmd builds the command tree around a.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "papersearch",
		Short:   "Search papers through an embeddings-backed search backend",
		Version: version,
		Long: `papersearch sends a free-text query, a lookback window and a set of source
categories (arXiv, AI conferences, systems conferences) to a paper search
backend and shows the papers it returns.

Run without arguments for the interactive terminal UI, or use the query
subcommand for one-shot searches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./papersearch.yaml or ~/.config/papersearch/config.yaml)")
	flags.String("backend-url", config.DefaultBackendURL, "base URL of the search backend")
	flags.Duration("timeout", 0, "per-request timeout (0 waits indefinitely)")
	flags.String("log-file", "", "write debug logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag(config.KeyBackendURL, flags.Lookup("backend-url"))
	_ = a.v.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = a.v.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(newQueryCmd(a), newHealthCmd(a))
	return root
}

// init reads the config file, resolves settings and sets up tracing.
func (a *app) init(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.ReadFile(a.v, cfgFile)
	if err != nil {
		return err
	}

	a.cfg, err = config.Load(a.v)
	if err != nil {
		return err
	}

	a.tracer, err = trace.Setup(cmd.Context(), search.TracerName)
	if err != nil {
		return err
	}

	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: a.cfg.LogLevel}))
	}
	if used != "" {
		a.logger.Debug("using config file", "path", used)
	}
	return nil
}

// client builds a backend client from the resolved config.
func (a *app) client() *search.Client {
	return search.NewClient(a.cfg.BackendURL,
		search.WithTimeout(a.cfg.Timeout),
		search.WithTracer(a.tracer.Tracer()),
		search.WithLogger(a.logger),
	)
}

// runTUI starts the interactive query panel. Logs go to the configured
// file, since the terminal belongs to the UI.
func (a *app) runTUI(ctx context.Context) error {
	logger := slog.New(slog.DiscardHandler)
	if a.cfg.LogFile != "" {
		f, err := tea.LogToFile(a.cfg.LogFile, "papersearch")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: a.cfg.LogLevel}))
	}
	a.logger = logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewAppModel(ui.AppOptions{
		QueryPanelOptions: ui.QueryPanelOptions{
			Searcher:   a.client(),
			Context:    ctx,
			Logger:     logger,
			WindowDays: a.cfg.WindowDays,
			Sources:    a.cfg.Sources,
		},
		BackendURL: a.cfg.BackendURL,
	}).AsTeaModel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// run executes the CLI with args. Spans are flushed whether or not the
// command succeeded.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	a := &app{v: config.NewViper()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer func() {
		if serr := a.tracer.Shutdown(context.Background()); serr != nil && err == nil {
			err = fmt.Errorf("flushing traces: %w", serr)
		}
	}()
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "papersearch: %v\n", err)
		os.Exit(1)
	}
}
