package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/domain-finder/internal/audit"
	"github.com/pdiddy/domain-finder/internal/batch"
	"github.com/pdiddy/domain-finder/internal/httputil"
	"github.com/pdiddy/domain-finder/internal/metrics"
	"github.com/pdiddy/domain-finder/internal/probe"
	"github.com/pdiddy/domain-finder/internal/resolve"
	"github.com/pdiddy/domain-finder/internal/search"
	"github.com/pdiddy/domain-finder/internal/tabular"
	"github.com/pdiddy/domain-finder/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve the athletics domain of every institution in the input file",
	Long: `Run reads the institution list, skips institutions already present in
the output file, and resolves the rest one at a time. Resolved domains are
appended to the output file; unresolved institutions go to the sibling
<output>_errors.csv. Missing search credentials abort the run before any
institution is processed.`,
	RunE: runFind,
}

func init() {
	runCmd.Flags().Int("limit", 0, "process at most this many institutions (0 = all)")
	runCmd.Flags().Bool("no-prompt", false, "start without waiting for ENTER")
	runCmd.Flags().String("input", "", "institution CSV (overrides input.input_file)")
	runCmd.Flags().String("output", "", "results CSV (overrides output.output_file)")
	runCmd.Flags().String("audit", "", "YAML audit trail (overrides output.audit_file)")
	runCmd.Flags().String("metrics-file", "", "Prometheus textfile written at the end (overrides output.metrics_file)")

	rootCmd.AddCommand(runCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, &cfg)
	out := cmd.OutOrStdout()
	errorsPath := tabular.ErrorsPath(cfg.Output.OutputFile)
	m := metrics.New()

	input, err := tabular.ReadInstitutions(cfg.Input.InputFile)
	if err != nil {
		return err
	}
	for _, skipped := range input.Skipped {
		logger.Warn("skipping input row", zap.String("file", cfg.Input.InputFile), zap.Error(skipped))
	}
	m.SkippedRecords("missing_name", len(input.Skipped))
	fmt.Fprintf(out, "input: %s (%d institutions)\n", cfg.Input.InputFile, len(input.Records))

	tracker := batch.NewResumeTracker(nil)
	if cfg.Resume.AutoDetect {
		if tracker, err = batch.LoadResumeTracker(cfg.Output.OutputFile); err != nil {
			return err
		}
	}
	if cfg.Resume.ShowStats && tracker.Len() > 0 {
		fmt.Fprintf(out, "resume: %d institutions already in %s\n", tracker.Len(), cfg.Output.OutputFile)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	queue, resumed := batch.Plan(input.Records, tracker, cfg.Resume.SkipProcessed, limit)
	m.SkippedRecords("resumed", resumed)
	fmt.Fprintf(out, "remaining: %d institutions to process\n", len(queue))
	if len(queue) == 0 {
		fmt.Fprintln(out, "all institutions already processed")
		return nil
	}

	noPrompt, _ := cmd.Flags().GetBool("no-prompt")
	if !noPrompt {
		if err := waitForEnter(cmd.InOrStdin(), out); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	runner := newRunner(cfg, runID, m, log, out)
	sum, runErr := runner.Run(ctx, resolve.NewRunContext(runID), queue)
	sum.Resumed = resumed
	sum.Malformed = len(input.Skipped)
	sum.Print(out, cfg.Output.OutputFile, errorsPath)

	if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
		log.Warn("could not write metrics", zap.Error(err))
	}
	if runErr != nil {
		return fmt.Errorf("run %s stopped: %w", runID, runErr)
	}
	return nil
}

// applyRunFlags lets command-line paths override the configuration.
func applyRunFlags(cmd *cobra.Command, cfg *types.Config) {
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.Input.InputFile = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.OutputFile = v
	}
	if v, _ := cmd.Flags().GetString("audit"); v != "" {
		cfg.Output.AuditFile = v
	}
	if v, _ := cmd.Flags().GetString("metrics-file"); v != "" {
		cfg.Output.MetricsFile = v
	}
}

// newRunner wires the search backend, liveness probe, resolver and sinks.
func newRunner(cfg types.Config, runID string, m *metrics.Metrics, log *zap.Logger, out io.Writer) *batch.Runner {
	searcher := &search.GoogleBackend{
		Client: httputil.NewClient(cfg.Search.HTTPConfig),
		Config: cfg.Search,
	}
	prober := &probe.HTTPProber{
		Client:    httputil.NewClient(cfg.Probe.HTTPConfig),
		Timeout:   cfg.Probe.Timeout,
		UserAgent: cfg.Probe.UserAgent,
	}
	resolver := resolve.New(cfg, searcher, prober, resolve.WithLogger(log), resolve.WithMetrics(m))

	var trail batch.Recorder
	if cfg.Output.AuditFile != "" {
		trail = &audit.Trail{Path: cfg.Output.AuditFile, RunID: runID}
	}
	return &batch.Runner{
		Resolver: resolver,
		Pacer: &httputil.Pacer{
			Delay:    cfg.Search.RateLimitDelay,
			Cooldown: cfg.Search.RateLimitCooldown,
		},
		Success:          &tabular.Appender{Path: cfg.Output.OutputFile},
		Errors:           &tabular.Appender{Path: tabular.ErrorsPath(cfg.Output.OutputFile)},
		Audit:            trail,
		Metrics:          m,
		Logger:           log,
		Out:              out,
		AutoSaveInterval: cfg.Output.AutoSaveInterval,
		ProgressInterval: cfg.Performance.ProgressInterval,
	}
}

// waitForEnter blocks until a line is read from in. End of input counts
// as confirmation so the command can run with stdin closed.
func waitForEnter(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Press ENTER to start...")
	_, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	return nil
}
