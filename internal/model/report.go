package model

import (
	"slices"
	"time"
)

// ScanReport partitions the outcomes of one run.
// It is built once, after every probe has finished, and discarded when the
// run ends.
type ScanReport struct {
	// Vulnerable holds targets with TLS 1.1 enabled, sorted by host and port.
	Vulnerable []Target

	// NotVulnerable holds targets without TLS 1.1, sorted by host and port.
	NotVulnerable []Target

	// Failed holds outcomes whose probe could not classify the target.
	Failed []Outcome

	// Submitted is the number of targets handed to the dispatcher.
	Submitted int

	// Dropped is the number of targets whose probe produced no outcome at all.
	Dropped int

	// DateScanned is when the report was built.
	DateScanned time.Time
}

// NewScanReport builds a ScanReport from the collected outcomes.
// Outcomes may be in any order; the resulting lists are sorted so that two
// runs over the same targets render identically.
func NewScanReport(outcomes []Outcome, submitted, dropped int) *ScanReport {
	r := &ScanReport{
		Vulnerable:    make([]Target, 0),
		NotVulnerable: make([]Target, 0),
		Failed:        make([]Outcome, 0),
		Submitted:     submitted,
		Dropped:       dropped,
		DateScanned:   time.Now(),
	}

	for _, o := range outcomes {
		switch o.Status {
		case StatusVulnerable:
			r.Vulnerable = append(r.Vulnerable, o.Target)
		case StatusNotVulnerable:
			r.NotVulnerable = append(r.NotVulnerable, o.Target)
		default:
			r.Failed = append(r.Failed, o)
		}
	}

	slices.SortFunc(r.Vulnerable, compareTargets)
	slices.SortFunc(r.NotVulnerable, compareTargets)
	slices.SortFunc(r.Failed, func(a, b Outcome) int {
		return compareTargets(a.Target, b.Target)
	})

	return r
}

// Total returns the number of outcomes in the report, failed ones included.
func (r *ScanReport) Total() int {
	return len(r.Vulnerable) + len(r.NotVulnerable) + len(r.Failed)
}

// VulnerableCount returns the number of targets with TLS 1.1 enabled.
func (r *ScanReport) VulnerableCount() int {
	return len(r.Vulnerable)
}

// RemediatedCount returns the number of targets without TLS 1.1.
func (r *ScanReport) RemediatedCount() int {
	return len(r.NotVulnerable)
}

// Unscanned returns the number of targets that did not yield a usable
// classification: failed probes plus dropped ones.
func (r *ScanReport) Unscanned() int {
	return len(r.Failed) + r.Dropped
}

// HasVulnerable reports whether any target has TLS 1.1 enabled.
func (r *ScanReport) HasVulnerable() bool {
	return len(r.Vulnerable) > 0
}

func compareTargets(a, b Target) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
