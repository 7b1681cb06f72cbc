package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/tls11scan/internal/config"
	"github.com/nao1215/tls11scan/internal/console"
	tlslog "github.com/nao1215/tls11scan/internal/log"
	"github.com/nao1215/tls11scan/internal/model"
	"github.com/nao1215/tls11scan/internal/pipeline"
	"github.com/nao1215/tls11scan/internal/probe"
	"github.com/nao1215/tls11scan/internal/report"
	"github.com/nao1215/tls11scan/internal/target"
	"github.com/spf13/cobra"
)

// addScanFlags registers the scan flags on cmd.
func addScanFlags(cmd *cobra.Command) {
	// Input
	cmd.Flags().StringP("input", "i", "",
		"Target list file, one HOST or HOST:PORT per line (required)")

	// Scan behavior flags
	cmd.Flags().IntP("threads", "t", config.DefaultThreads,
		"Number of concurrent probes")
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"Maximum time for a single probe")
	cmd.Flags().Float64("rate", 0,
		"Maximum probes started per second (0 = unlimited)")
	cmd.Flags().StringP("scanner", "s", config.DefaultScanner,
		"Scanner executable (name in PATH or full path)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .tls11scan in current, XDG config or home directory)")

	// Report flags
	cmd.Flags().BoolP("remediation_test", "r", false,
		"Report REMEDIATED / NOT REMEDIATED status per host")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-color", false,
		"Disable colored output")
}

// runScanCmd executes the scan.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := tlslog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling. An interrupt stops new probes
	// and kills the running scanner processes.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and cobra flags.
// Flags set on the command line override values from the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	cfg.InputFile, err = flags.GetString("input")
	if err != nil {
		return nil, err
	}

	if flags.Changed("threads") {
		cfg.Threads, err = flags.GetInt("threads")
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("timeout") {
		cfg.Timeout, err = flags.GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("rate") {
		cfg.Rate, err = flags.GetFloat64("rate")
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("scanner") {
		cfg.ScannerPath, err = flags.GetString("scanner")
		if err != nil {
			return nil, err
		}
	}

	cfg.RemediationMode, err = flags.GetBool("remediation_test")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = flags.GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoColor, err = flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyConfigFile loads the configuration file, if any, onto cfg.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise a missing file is silently ignored.
func applyConfigFile(cfg *config.Config) error {
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	file.ApplyTo(cfg)
	return nil
}

// runScan loads the targets, probes them and writes the report.
// Notices stream to out while probes run; the report follows once every
// probe has finished.
func runScan(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	targets, err := target.Load(cfg.InputFile)
	if err != nil {
		return err
	}

	con := console.New(out, console.WithColor(!cfg.NoColor && console.ColorEnabled(out)))
	defer con.Close()

	con.Infof("Loaded %d targets from %s", len(targets), cfg.InputFile)

	executor := probe.NewExecutorFromConfig(cfg,
		probe.WithNotifier(con),
		probe.WithLogger(logger),
	)
	// A missing scanner is not fatal: every probe then fails on its own and
	// shows up in the failure count.
	if err := executor.Check(); err != nil {
		logger.Warn("scanner check failed", "error", err)
		con.Warnf("%v", err)
	}

	logger.Info("starting scan",
		"input", cfg.InputFile,
		"targets", len(targets),
		"threads", cfg.Threads,
		"rate", cfg.Rate,
		"timeout", cfg.Timeout,
		"scanner", cfg.ScannerPath,
	)

	bp := pipeline.NewBatchProcessor(executor,
		pipeline.WithConcurrency(cfg.Threads),
		pipeline.WithRateLimit(cfg.Rate),
		pipeline.WithBatchLogger(logger),
		pipeline.WithCallback(func(outcome model.Outcome, completed int) {
			logger.Debug("probe collected",
				"target", outcome.Target.Address(),
				"status", outcome.Status.String(),
				"completed", completed,
				"total", len(targets),
			)
		}),
	)

	result, err := bp.ProcessBatch(ctx, targets)
	if err != nil {
		if result != nil && errors.Is(err, context.Canceled) {
			con.Warnf("scan interrupted, %d of %d targets finished",
				len(result.Outcomes), result.Submitted)
		}
		return fmt.Errorf("scan aborted: %w", err)
	}

	scanReport := result.Report()
	if n := scanReport.Unscanned(); n > 0 {
		con.Warnf("%d hosts failed to scan properly", n)
	}

	logger.Info("scan complete",
		"scanned", scanReport.Total(),
		"vulnerable", scanReport.VulnerableCount(),
		"failed", scanReport.Unscanned(),
		"elapsed", result.Elapsed.Round(time.Millisecond),
	)

	// Flush every notice before the report so the two never mix.
	con.Close()

	return outputReport(cfg, scanReport, out)
}

// outputReport writes the scan report in the requested view and format,
// to cfg.ReportFile or, when unset, to stdout.
func outputReport(cfg *config.Config, scanReport *model.ScanReport, stdout io.Writer) (err error) {
	output := stdout
	if cfg.ReportFile != "" {
		if err := ensureParentDir(cfg.ReportFile); err != nil {
			return err
		}

		// Reports list internal hosts, so only the owner may read them.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		output = f
	}

	mode := report.ModeBasic
	if cfg.RemediationMode {
		mode = report.ModeRemediation
	}

	format := report.FormatText
	if cfg.MarkdownReport {
		format = report.FormatMarkdown
	}

	palette := console.NewPalette(!cfg.NoColor && console.ColorEnabled(output))
	writer, err := report.NewWriter(mode, format, output, report.WithPalette(palette))
	if err != nil {
		return err
	}

	if _, err := writer.Write(scanReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
