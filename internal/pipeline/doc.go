// Package pipeline dispatches probes across a bounded worker pool.
//
// The BatchProcessor runs one probe per target with at most N probes in
// flight, collects every outcome exactly once through a single collector
// goroutine, and returns only after all probes have finished. Reports are
// therefore never built from a partial run.
//
// Design decision: We use errgroup.SetLimit rather than a hand-written
// worker pool because it gives the same bounded concurrency with less code:
// g.Go blocks the submitting loop until a slot frees up, which is exactly
// the queueing behavior a fixed pool provides.
package pipeline
