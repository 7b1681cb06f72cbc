// Package config provides configuration structures and utilities for tls11scan.
// It defines the scan options, the external scanner invocation settings and
// the optional YAML configuration file.
package config
