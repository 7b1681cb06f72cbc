// Package probe runs the external TLS scanner against one target and
// classifies its output.
//
// The TLS handshake itself is delegated to the scanner (sslscan by default);
// this package only launches it, bounds it with a timeout and looks for the
// line that marks TLS 1.1 as enabled.
//
// Every Probe call returns a model.Outcome. Launch failures, non-zero exits,
// timeouts and empty output are reported as model.StatusScanFailed with a
// reason instead of an error, so one bad target never stops a batch.
package probe
