// Package target reads the list of endpoints to probe.
//
// The list is a UTF-8 text file with one target per line:
//
//	# production web tier
//	www.example.com
//	api.example.com:8443
//	192.0.2.10
//	[2001:db8::1]:443
//
// Blank lines and lines starting with '#' are skipped. A port that is not
// given defaults to 443.
//
// Design decision: a malformed line fails the whole load instead of being
// skipped. A typo in a fleet list would otherwise silently remove a host
// from the audit, and a short list is easy to fix and re-run.
package target
