package model

import "time"

// Status is the classification of a single probe.
//
// Design decision: We use iota-based constants rather than a pair of
// booleans (vulnerable, failed) so that every outcome is exactly one of
// the three states and a switch over Status can be exhaustive.
type Status int

const (
	// StatusNotVulnerable means the scanner ran and did not report TLS 1.1.
	// In remediation mode this is shown as REMEDIATED.
	StatusNotVulnerable Status = iota

	// StatusVulnerable means the scanner reported TLS 1.1 as enabled.
	StatusVulnerable

	// StatusScanFailed means no usable scanner output was obtained.
	// The Outcome's Reason field explains why.
	StatusScanFailed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusNotVulnerable:
		return "NOT VULNERABLE"
	case StatusVulnerable:
		return "VULNERABLE"
	case StatusScanFailed:
		return "SCAN FAILED"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the classified result of one probe.
type Outcome struct {
	// Target is the probed endpoint.
	Target Target

	// Status is the classification.
	Status Status

	// Reason describes the failure. Only set when Status is StatusScanFailed.
	Reason string

	// Duration is the wall-clock time the probe took.
	Duration time.Duration
}

// NewOutcome creates an Outcome with the given status and no failure reason.
func NewOutcome(target Target, status Status) Outcome {
	return Outcome{Target: target, Status: status}
}

// FailedOutcome creates a StatusScanFailed Outcome carrying err as the reason.
func FailedOutcome(target Target, err error) Outcome {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return Outcome{Target: target, Status: StatusScanFailed, Reason: reason}
}

// Failed reports whether the probe produced no usable result.
func (o Outcome) Failed() bool {
	return o.Status == StatusScanFailed
}
