// Package console serializes progress and alert notices from concurrent probes.
//
// A Console owns the output stream. Probes never write to it directly; they
// send a Notice over a channel and a single writer goroutine renders each
// notice as one complete line. Lines from different probes may appear in any
// order but never interleave.
package console
