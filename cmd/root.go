package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/timekeeper/config"
	"github.com/s0up4200/timekeeper/metrics"
	"github.com/s0up4200/timekeeper/timing"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *timing.Client
	registry *prometheus.Registry

	// Command flags
	jsonOutput  bool
	showMetrics bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "timekeeper",
	Short: "A command line client for the Timing time-tracking API",
	Long: `timekeeper manages projects and time entries, starts and stops the
running timer, and generates reports against the Timing web API.

The API token is read from the config file or the TIMEKEEPER_API_TOKEN
environment variable.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: reportMetrics,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print request metrics to stderr when done")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, os.Stderr)

	registry = prometheus.NewRegistry()

	client, err = timing.NewClient(cfg.API.Token,
		timing.WithBaseURL(cfg.API.BaseURL),
		timing.WithTimeout(cfg.API.Timeout),
		timing.WithUserAgent("timekeeper/"+version),
		timing.WithLogger(logger),
		timing.WithMetrics(metrics.NewClientMetrics(registry)),
	)
	if err != nil {
		return fmt.Errorf("failed to create Timing client: %w", err)
	}

	return nil
}

// skipInitialize replaces initializeApp for commands that need no API access
func skipInitialize(cmd *cobra.Command, args []string) error {
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(out.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func reportMetrics(cmd *cobra.Command, args []string) error {
	if !showMetrics || registry == nil {
		return nil
	}
	return printMetrics(cmd.ErrOrStderr(), registry)
}

// printJSON writes v indented to w
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDate accepts a calendar date in local time or an RFC 3339 timestamp
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", value)
	}
	return &t, nil
}

// projectRefs turns bare project ids into references
func projectRefs(ids []string) []string {
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !strings.HasPrefix(id, "/") {
			id = "/projects/" + id
		}
		refs = append(refs, id)
	}
	return refs
}
