// Package model defines the core data structures used throughout tls11scan.
//
// This package contains the following main types:
//   - Target: A host:port pair read from the target list
//   - Status: The classification of a single probe
//   - Outcome: The classified result of probing one Target
//   - ScanReport: The partition of all outcomes, built once per run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The loader, probe, pipeline and report packages all need these
// types, so centralizing them prevents import cycles.
package model
