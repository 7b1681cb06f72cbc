package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"time"

	"github.com/nao1215/tls11scan/internal/config"
	tlslog "github.com/nao1215/tls11scan/internal/log"
	"github.com/nao1215/tls11scan/internal/model"
)

// defaultWaitDelay bounds how long Run waits for the scanner's output pipe to
// close after the process exited or was killed.
const defaultWaitDelay = 2 * time.Second

// Prober classifies one target.
//
// Design decision: We use an interface rather than the concrete Executor in
// the dispatcher because:
//  1. Dispatcher tests can use a deterministic fake classifier
//  2. A different scanner can be plugged in without touching the pool
type Prober interface {
	// Probe classifies target. It must always return an Outcome; failures
	// are reported as model.StatusScanFailed.
	Probe(ctx context.Context, target model.Target) model.Outcome
}

// Notifier receives per-probe notices. It must be safe for concurrent use.
// *console.Console implements it.
type Notifier interface {
	Progress(target model.Target)
	Alert(target model.Target)
	Failure(target model.Target, reason string)
}

// commandFunc builds the scanner command. Tests replace it.
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Executor runs the external scanner as a child process.
type Executor struct {
	scanner  string
	args     []string
	marker   string
	timeout   time.Duration
	waitDelay time.Duration
	notifier  Notifier
	logger    *slog.Logger
	command   commandFunc
}

// Option configures an Executor.
type Option func(*Executor)

// WithScanner sets the scanner executable and the arguments placed before
// the target address.
func WithScanner(path string, args ...string) Option {
	return func(e *Executor) {
		if path != "" {
			e.scanner = path
		}
		e.args = slices.Clone(args)
	}
}

// WithMarker sets the substring that marks TLS 1.1 as enabled.
// An empty marker is ignored.
func WithMarker(marker string) Option {
	return func(e *Executor) {
		if marker != "" {
			e.marker = marker
		}
	}
}

// WithTimeout sets the per-probe timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithNotifier sets where progress, alert and failure notices go.
func WithNotifier(n Notifier) Option {
	return func(e *Executor) {
		e.notifier = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor with the sslscan defaults from the config
// package, then applies opts.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		scanner: config.DefaultScanner,
		args:    slices.Clone(config.DefaultScannerArgs),
		marker:    config.DefaultMarker,
		timeout:   config.DefaultTimeout,
		waitDelay: defaultWaitDelay,
		command:   exec.CommandContext,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}

	return e
}

// NewExecutorFromConfig creates an Executor for the scanner settings in cfg.
func NewExecutorFromConfig(cfg *config.Config, opts ...Option) *Executor {
	base := []Option{
		WithScanner(cfg.ScannerPath, cfg.ScannerArgs...),
		WithMarker(cfg.Marker),
		WithTimeout(cfg.Timeout),
	}
	return NewExecutor(append(base, opts...)...)
}

// Check reports whether the scanner executable can be found. Callers use it
// for an early warning; Probe still runs and fails per target without it.
func (e *Executor) Check() error {
	if _, err := exec.LookPath(e.scanner); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScannerNotFound, e.scanner, err)
	}
	return nil
}

// Probe runs the scanner against target and classifies the result.
func (e *Executor) Probe(ctx context.Context, target model.Target) model.Outcome {
	start := time.Now()
	e.notifier.Progress(target)

	outcome := e.probe(ctx, target)
	outcome.Duration = time.Since(start)

	switch outcome.Status {
	case model.StatusVulnerable:
		e.notifier.Alert(target)
	case model.StatusScanFailed:
		e.notifier.Failure(target, tlslog.Sanitize(outcome.Reason))
		e.logger.Warn("probe failed",
			"target", target.Address(),
			"reason", outcome.Reason,
			"elapsed", outcome.Duration,
		)
	}

	e.logger.Debug("probe completed",
		"target", target.Address(),
		"status", outcome.Status.String(),
		"elapsed", outcome.Duration,
	)

	return outcome
}

func (e *Executor) probe(ctx context.Context, target model.Target) model.Outcome {
	output, err := e.Run(ctx, target)
	if err != nil {
		return model.FailedOutcome(target, err)
	}

	status, err := Classify(output, e.marker)
	if err != nil {
		return model.FailedOutcome(target, err)
	}
	return model.NewOutcome(target, status)
}

// Run invokes the scanner once and returns its standard output.
// Standard error is discarded. The returned error wraps one of the
// sentinel errors in errors.go.
func (e *Executor) Run(ctx context.Context, target model.Target) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := append(slices.Clone(e.args), target.Address())
	cmd := e.command(probeCtx, e.scanner, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil
	cmd.WaitDelay = e.waitDelay
	configureProcess(cmd)

	e.logger.Debug("running scanner",
		"scanner", e.scanner,
		"args", args,
		"timeout", e.timeout,
	)

	err := cmd.Run()
	switch {
	case err == nil:
		return stdout.String(), nil
	case ctx.Err() != nil:
		return "", fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
	case errors.Is(probeCtx.Err(), context.DeadlineExceeded):
		return "", fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	case errors.Is(err, exec.ErrWaitDelay):
		// The scanner exited 0 but a descendant kept stdout open. What was
		// written before the pipe closed is the scanner's complete report.
		e.logger.Debug("scanner output pipe held open after exit",
			"scanner", e.scanner,
			"wait_delay", e.waitDelay,
		)
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", fmt.Errorf("%w: %v", ErrScannerExit, exitErr)
	}
	return "", fmt.Errorf("%w: %v", ErrScannerNotFound, err)
}

// nopNotifier discards notices.
type nopNotifier struct{}

func (nopNotifier) Progress(model.Target) {}
func (nopNotifier) Alert(model.Target) {}
func (nopNotifier) Failure(model.Target, string) {}
