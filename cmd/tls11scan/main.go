// Package main provides the entry point for the tls11scan CLI.
//
// tls11scan audits a fleet of TLS endpoints for TLS 1.1 support by running
// sslscan against every target in a list, several at a time, and
// summarizing which hosts still accept the protocol.
//
// Usage:
//
//	tls11scan -i targets.txt
//	tls11scan -i targets.txt -t 20 --remediation_test
//
// See --help for all available options.
package main

// main is the entry point for tls11scan.
func main() {
	Execute()
}
