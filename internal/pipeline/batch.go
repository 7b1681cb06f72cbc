package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nao1215/tls11scan/internal/config"
	"github.com/nao1215/tls11scan/internal/model"
	"github.com/nao1215/tls11scan/internal/probe"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrNilProber is returned by ProcessBatch when no prober was configured.
var ErrNilProber = errors.New("batch processor has no prober")

// Result is what a batch run produced.
//
// Every submitted target is accounted for exactly once:
// len(Outcomes) + Dropped + Skipped == Submitted.
type Result struct {
	// Outcomes holds one entry per completed probe, in completion order.
	Outcomes []model.Outcome

	// Submitted is the number of targets handed to ProcessBatch.
	Submitted int

	// Dropped counts probes that ended without producing any outcome.
	Dropped int

	// Skipped counts targets never started because the run was interrupted.
	Skipped int

	// Elapsed is the wall-clock duration of the batch.
	Elapsed time.Duration
}

// Report builds the ScanReport for this result.
func (r *Result) Report() *model.ScanReport {
	return model.NewScanReport(r.Outcomes, r.Submitted, r.Dropped)
}

// BatchProcessor handles concurrent probing of many targets.
// It uses errgroup to manage goroutines and respect the concurrency limit.
type BatchProcessor struct {
	// prober classifies one target. It is shared by all workers and must be
	// safe for concurrent use.
	prober probe.Prober

	// concurrency is the maximum number of probes in flight.
	concurrency int

	// limiter, if set, paces probe starts.
	limiter *rate.Limiter

	// logger is used for batch-level logging.
	logger *slog.Logger

	// callback, if set, is called from the collector goroutine for each
	// outcome, one at a time.
	callback func(outcome model.Outcome, completed int)
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent probes.
// Default is config.DefaultThreads if not specified; non-positive values
// are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRateLimit caps probe starts at perSecond. The burst equals the
// per-second rate, at least 1. Non-positive values disable the cap.
func WithRateLimit(perSecond float64) BatchOption {
	return func(b *BatchProcessor) {
		if perSecond <= 0 {
			b.limiter = nil
			return
		}
		b.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}
}

// WithCallback registers fn to be called for each outcome as it is
// collected. completed is the number of outcomes collected so far,
// including this one. Calls are serialized, so fn needs no locking.
func WithCallback(fn func(outcome model.Outcome, completed int)) BatchOption {
	return func(b *BatchProcessor) {
		b.callback = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor that classifies targets
// with prober.
func NewBatchProcessor(prober probe.Prober, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		prober:      prober,
		concurrency: config.DefaultThreads,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch probes every target, at most bp.concurrency at a time.
//
// Targets queue in submission order; outcomes are collected in completion
// order. No target is retried, and one failing probe never stops the
// others. ProcessBatch returns only after every started probe has finished.
//
// If ctx is cancelled, no further probes are started, probes in flight are
// abandoned (their scanner processes are killed by the prober) and the
// returned error wraps ctx.Err(). The Result is still returned so the caller
// can report how far the run got.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []model.Target) (*Result, error) {
	if bp.prober == nil {
		return nil, ErrNilProber
	}

	bp.logger.Info("starting batch processing",
		"total_targets", len(targets),
		"concurrency", bp.concurrency,
		"rate_limited", bp.limiter != nil,
	)

	startTime := time.Now()

	outcomes := make(chan model.Outcome)
	collected := make([]model.Outcome, 0, len(targets))
	collectorDone := make(chan struct{})

	// The collector is the only goroutine that touches collected.
	go func() {
		defer close(collectorDone)
		for o := range outcomes {
			collected = append(collected, o)
			if bp.callback != nil {
				bp.callback(o, len(collected))
			}
		}
	}()

	var dropped, skipped atomic.Int64
	submitted := 0

	var g errgroup.Group
	g.SetLimit(bp.concurrency)

	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		submitted++

		g.Go(func() error {
			// Check for cancellation before starting
			if ctx.Err() != nil {
				skipped.Add(1)
				return nil
			}
			if bp.limiter != nil {
				if err := bp.limiter.Wait(ctx); err != nil {
					skipped.Add(1)
					return nil
				}
			}

			outcome, ok := bp.probeOne(ctx, target)
			if !ok {
				dropped.Add(1)
				return nil
			}
			outcomes <- outcome

			// Never return an error: that would not stop other probes with
			// a plain Group, and the failure is already in the outcome.
			return nil
		})
	}

	// Wait for every started probe, then for the collector to drain.
	_ = g.Wait() //nolint:errcheck // workers never return errors
	close(outcomes)
	<-collectorDone

	result := &Result{
		Outcomes:  collected,
		Submitted: len(targets),
		Dropped:   int(dropped.Load()),
		Skipped:   int(skipped.Load()) + len(targets) - submitted,
		Elapsed:   time.Since(startTime),
	}

	bp.logger.Info("batch processing complete",
		"total_targets", len(targets),
		"outcomes", len(result.Outcomes),
		"dropped", result.Dropped,
		"skipped", result.Skipped,
		"elapsed", result.Elapsed,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("batch interrupted: %w", err)
	}
	return result, nil
}

// probeOne runs a single probe and recovers from a panicking prober.
// ok is false when the probe produced no outcome at all.
func (bp *BatchProcessor) probeOne(ctx context.Context, target model.Target) (outcome model.Outcome, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			bp.logger.Error("probe produced no outcome",
				"target", target.Address(),
				"panic", fmt.Sprint(r),
			)
			ok = false
		}
	}()

	return bp.prober.Probe(ctx, target), true
}
