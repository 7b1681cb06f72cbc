package probe

import "errors"

// Probe failure reasons. They end up in model.Outcome.Reason and can be
// matched with errors.Is on the error returned by Executor.Run.
var (
	// ErrScannerNotFound is returned when the scanner executable cannot be
	// found or started.
	ErrScannerNotFound = errors.New("scanner executable not found")

	// ErrScannerExit is returned when the scanner exits with a non-zero status.
	ErrScannerExit = errors.New("scanner exited abnormally")

	// ErrTimeout is returned when the scanner does not finish within the
	// per-probe timeout. The scanner process is killed.
	ErrTimeout = errors.New("scanner timed out")

	// ErrEmptyOutput is returned when the scanner exits cleanly but prints
	// nothing, so no classification is possible.
	ErrEmptyOutput = errors.New("scanner produced no output")

	// ErrCanceled is returned when the run was interrupted while the probe
	// was in flight.
	ErrCanceled = errors.New("probe canceled")
)
