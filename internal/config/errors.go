package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no target list file is specified.
	ErrNoInput = errors.New("no input specified: use --input to provide a target list file")

	// ErrInvalidThreads is returned when the worker count is not positive.
	// At least one worker is needed to make progress.
	ErrInvalidThreads = errors.New("invalid thread count: must be at least 1")

	// ErrInvalidTimeout is returned when the per-probe timeout is not positive.
	// A zero timeout would fail every probe immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRate is returned when the probe start rate is negative.
	ErrInvalidRate = errors.New("invalid rate: must be zero (unlimited) or positive")

	// ErrEmptyScanner is returned when the scanner executable is empty.
	ErrEmptyScanner = errors.New("invalid scanner: executable path must not be empty")

	// ErrEmptyMarker is returned when the TLS 1.1 marker string is empty.
	// An empty marker would match every scanner output.
	ErrEmptyMarker = errors.New("invalid marker: must not be empty")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
