package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AaronLay10/vacuumworld/internal/config"
	"github.com/AaronLay10/vacuumworld/internal/events"
	"github.com/AaronLay10/vacuumworld/internal/logging"
	"github.com/AaronLay10/vacuumworld/internal/mqtt"
	"github.com/AaronLay10/vacuumworld/internal/report"
	"github.com/AaronLay10/vacuumworld/internal/runner"
	"github.com/AaronLay10/vacuumworld/internal/search"
	"github.com/AaronLay10/vacuumworld/internal/telemetry"
	"github.com/AaronLay10/vacuumworld/internal/version"
)

type runOptions struct {
	configPath   string
	strategies   []string
	problems     []string
	jsonOutput   bool
	trace        bool
	logLevel     string
	logFormat    string
	maxGenerated int
	maxDepth     int
	traceLimit   int
	events       int
}

func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured strategies on the configured problems",
		Long: `Run every configured strategy on every configured problem and print a
report for each search.

Examples:
  # Run the two reference problems with every strategy
  vacuum run

  # Only graph search, JSON reports
  vacuum run --strategy ucs-graph --json

  # A custom problem set with a lower node cap
  vacuum run -c configs/vacuum.yaml --max-generated 1000000

  # Print spans and the last 10 events to stderr
  vacuum run --trace --events 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, f); err != nil {
				return err
			}
			return a.run(cmd.Context(), f, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (default: built-in reference problems)")
	cmd.Flags().StringArrayVarP(&opts.strategies, "strategy", "s", nil, "Strategy to run, repeatable (overrides config)")
	cmd.Flags().StringArrayVarP(&opts.problems, "problem", "p", nil, "Only run the named problem, repeatable")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print OpenTelemetry spans to stderr")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: console or json (overrides config)")
	cmd.Flags().IntVar(&opts.maxGenerated, "max-generated", 0, "Node generation cap per search, 0 for none (overrides config)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Deepest bound for iterative deepening, 0 for none (overrides config)")
	cmd.Flags().IntVar(&opts.traceLimit, "trace-limit", 0, "Number of expanded states to report (overrides config)")
	cmd.Flags().IntVar(&opts.events, "events", 0, "Print the last N events to stderr after the run")

	return cmd
}

// apply copies explicitly set flags over the loaded configuration.
// --problem is resolved later, against the validated problem names.
func (o *runOptions) apply(cmd *cobra.Command, f *config.File) error {
	flags := cmd.Flags()
	if len(o.strategies) > 0 {
		f.Strategies = o.strategies
	}
	if o.jsonOutput {
		f.Report.Format = "json"
	}
	if o.logLevel != "" {
		f.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		f.Log.Format = o.logFormat
	}
	if flags.Changed("max-generated") {
		f.Search.MaxGenerated = &o.maxGenerated
	}
	if flags.Changed("max-depth") {
		f.Search.MaxDepth = o.maxDepth
	}
	if flags.Changed("trace-limit") {
		f.Search.TraceLimit = &o.traceLimit
	}
	return nil
}

func (a *App) run(ctx context.Context, f *config.File, opts *runOptions) error {
	logging.Init(logging.Config{Level: f.Log.Level, Format: f.Log.Format, Output: a.stderr})

	if err := f.Validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	w, err := f.World()
	if err != nil {
		return err
	}
	problems, err := f.NamedStates()
	if err != nil {
		return err
	}
	if len(opts.problems) > 0 {
		if problems, err = selectProblems(problems, opts.problems); err != nil {
			return err
		}
	}
	strategies, err := f.StrategyList()
	if err != nil {
		return err
	}
	searcher, err := search.New(w, f.SearchOptions())
	if err != nil {
		return err
	}

	hostname, _ := os.Hostname()
	emit("info", "system.startup", "vacuum starting", map[string]interface{}{
		"version":  version.Version,
		"hostname": hostname,
		"pid":      os.Getpid(),
	})

	tel := telemetry.NewNoopProvider()
	if opts.trace {
		tel, err = telemetry.NewStdoutProvider(a.stderr)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logging.Warn().With(logging.Err(err)).Msg("telemetry shutdown failed")
		}
	}()

	out, err := report.NewWriterSink(a.stdout, f.Report.Format)
	if err != nil {
		return err
	}
	sinks := []report.Sink{out}
	if mq := a.connectMQTT(f); mq != nil {
		sinks = append(sinks, mq)
		defer mq.Close()
	}

	outcomes, err := runner.New(searcher, tel.Recorder, sinks...).Run(ctx, problems, strategies)

	emit("info", "system.shutdown", "vacuum finished", map[string]interface{}{
		"searches": len(outcomes),
	})
	if opts.events > 0 {
		a.printEvents(opts.events)
	}

	if err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}
	failed, exhausted := runner.Failed(outcomes)
	if exhausted > 0 {
		logging.Warn().With(logging.Int("exhausted", exhausted)).Msg("some searches hit the node generation limit")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d searches failed", failed, len(outcomes))
	}
	return nil
}

// selectProblems keeps the named problems in configuration order. Names
// are matched after unnamed problems get their generated problemN names.
func selectProblems(all []config.NamedState, names []string) ([]config.NamedState, error) {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	var selected []config.NamedState
	for _, p := range all {
		if keep[p.Name] {
			selected = append(selected, p)
			delete(keep, p.Name)
		}
	}
	if len(keep) > 0 {
		unknown := make([]string, 0, len(keep))
		for n := range keep {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown problem: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

// connectMQTT returns an MQTT sink, or nil when MQTT is disabled or the
// broker cannot be reached. An unreachable broker does not stop the run.
func (a *App) connectMQTT(f *config.File) *report.MQTTSink {
	cfg := f.Report.MQTT
	if !cfg.Enabled {
		return nil
	}

	password, err := f.MQTTPassword()
	if err != nil {
		logging.Error().With(logging.Err(err)).Msg("mqtt password unavailable")
		emit("error", "report.error", err.Error(), map[string]interface{}{"broker": cfg.Broker})
		return nil
	}

	client := mqtt.NewClient(mqtt.Options{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: password,
	})
	if err := client.Connect(); err != nil {
		logging.Warn().With(logging.Str("broker", cfg.Broker), logging.Err(err)).Msg("mqtt: failed to connect")
		emit("error", "report.error", err.Error(), map[string]interface{}{"broker": cfg.Broker})
		return nil
	}
	logging.Info().With(logging.Str("broker", cfg.Broker)).Msg("mqtt: connected")
	opts := report.DefaultMQTTOptions()
	opts.TopicPrefix = cfg.TopicPrefix
	opts.QoS = cfg.QoS
	opts.RetryMaxAttempts = cfg.Retries
	return report.NewMQTTSink(client, opts)
}

func (a *App) printEvents(n int) {
	recent := events.RecentEvents(n)
	_, _ = fmt.Fprintf(a.stderr, "Last %d of %d events:\n", len(recent), events.TotalCount())
	for _, e := range recent {
		b, err := json.Marshal(e)
		if err != nil {
			continue
		}
		_, _ = fmt.Fprintln(a.stderr, string(b))
	}
}

func emit(level, name, msg string, fields map[string]interface{}) {
	if _, err := events.Emit(level, name, msg, fields); err != nil {
		logging.Error().With(logging.Err(err)).Msg("event rejected")
	}
}
