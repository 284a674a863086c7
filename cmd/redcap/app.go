package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/internal/config"
	"github.com/torosent/redcaplite/internal/logging"
	"github.com/torosent/redcaplite/internal/metrics"
	"github.com/torosent/redcaplite/internal/output"
	"github.com/torosent/redcaplite/internal/tracing"
	"github.com/torosent/redcaplite/redcap"
	"github.com/torosent/redcaplite/transport"
)

// app is the state shared by every command once flags are parsed.
type app struct {
	loader config.Loader
	stdout io.Writer
	stderr io.Writer

	cfg       *config.Config
	logger    *slog.Logger
	client    *redcap.Client
	printer   output.Printer
	collector *metrics.Collector
	tracing   *tracing.Provider
	started   time.Time
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "redcap",
		Short: "Command line client for the REDCap API",
		Long: `redcap calls the REDCap API of one project.

The endpoint and token come from --url and --token (or --token-file), a
config file, or the ` + config.EnvURL + ` and ` + config.EnvToken + ` variables.
Import commands read their data with --data from a CSV or JSON file, or
from standard input with --data -.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}
	config.RegisterFlags(root)

	root.AddCommand(
		newVersionCommand(a),
		newArmsCommand(a),
		newDAGsCommand(a),
		newDAGMappingsCommand(a),
		newEventsCommand(a),
		newFormEventMappingsCommand(a),
		newFieldNamesCommand(a),
		newInstrumentsCommand(a),
		newRepeatingCommand(a),
		newMetadataCommand(a),
		newProjectCommand(a),
		newRecordsCommand(a),
		newReportsCommand(a),
		newLogsCommand(a),
		newFilesCommand(a),
		newRepoCommand(a),
		newPDFCommand(a),
		newUsersCommand(a),
		newUserRolesCommand(a),
		newRoleMappingsCommand(a),
		newSurveysCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loader.LoadFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.Log)
	a.logger.Debug("configuration loaded", "config", cfg)

	provider, err := tracing.Init(cmd.Context(), cfg.Tracing, tracing.Target{APIURL: cfg.URL, ClientVersion: version})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	a.tracing = provider

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "redcaplite/" + version
	}
	opts := []transport.Option{
		transport.WithTimeout(cfg.Timeout),
		transport.WithLogger(a.logger),
		transport.WithTracer(provider.Tracer()),
		transport.WithPropagation(provider.ShouldPropagate()),
		transport.WithRateLimit(cfg.Rate),
		transport.WithUserAgent(userAgent),
	}
	if cfg.Stats {
		a.collector = metrics.NewCollector()
		opts = append(opts, transport.WithObserver(a.collector))
	}

	a.client, err = redcap.New(cfg.URL, cfg.Token, opts...)
	if err != nil {
		return err
	}
	a.printer = output.Printer{W: a.stdout, Format: cfg.Output, Select: cfg.Select}
	a.started = time.Now()
	return nil
}

// close prints the call statistics and flushes spans. It is safe to call when
// setup never ran.
func (a *app) close(ctx context.Context) error {
	if a.collector != nil {
		report := a.collector.Report()
		if report.Overall.Total > 0 {
			if a.cfg.Output == config.OutputJSON {
				if err := output.PrintJSONReport(a.stderr, report); err != nil {
					return err
				}
			} else {
				output.PrintReport(a.stderr, report)
			}
		}
	}
	if a.tracing == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.tracing.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("flush traces: %w", err)
	}
	return nil
}

func (a *app) print(v any) error {
	return a.printer.Print(v)
}

// printCount reports the number of items a write touched.
func (a *app) printCount(n int, err error) error {
	if err != nil {
		return err
	}
	return a.print(map[string]int{"count": n})
}
