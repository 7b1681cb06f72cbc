// Package log provides the application logger, built on top of the standard
// slog package.
//
// Scanner output is untrusted text: a hostile or broken endpoint can make the
// scanner print terminal escape sequences, stray control characters or very
// long banners. Failure reasons derived from that output end up in log
// attributes, so the SanitizingHandler cleans every string attribute before
// it reaches the terminal:
//   - ANSI escape sequences are removed
//   - other control characters are replaced with '?'
//   - values longer than MaxValueLen are truncated
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Warn("probe failed", "target", "example.com:443", "reason", reason)
package log
