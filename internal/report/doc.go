// Package report renders a finished scan.
//
// Two views exist. The basic view lists hosts with TLS 1.1 enabled and
// hosts without it. The remediation view relabels the same partition as
// NOT REMEDIATED and REMEDIATED entries and adds totals, for re-checking
// hosts after a fix was rolled out.
//
// Each view can be written as colored terminal text (SimpleWriter) or as a
// Markdown document (MarkdownWriter). Hosts whose probe failed appear in
// neither list; they were already reported while the scan ran.
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) so that a report is built once and can
// be rendered by any writer without recomputing the partition.
package report
