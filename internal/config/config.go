package config

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the behavior operators expect from the sslscan-based audit
// script this tool replaces.
const (
	// DefaultThreads of 10 concurrent probes keeps a fleet audit fast without
	// spawning an unreasonable number of scanner processes.
	DefaultThreads = 10

	// DefaultTimeout bounds a single scanner invocation. sslscan usually
	// finishes within a few seconds; 30 seconds leaves room for slow hosts
	// while keeping one unresponsive target from stalling a worker forever.
	DefaultTimeout = 30 * time.Second

	// DefaultScanner is the scanner executable looked up in PATH.
	DefaultScanner = "sslscan"

	// DefaultMarker is the exact line fragment sslscan prints when TLS 1.1
	// is accepted. The three spaces are part of sslscan's column layout.
	DefaultMarker = "TLSv1.1   enabled"

	// AppName is the application name used for XDG directory paths.
	AppName = "tls11scan"
)

// DefaultScannerArgs are passed to the scanner before the target address.
// --no-colour keeps ANSI sequences out of the output we match against.
var DefaultScannerArgs = []string{"--no-colour"}

// Config holds all configuration options for tls11scan.
// This struct is populated from the configuration file and CLI flags and
// passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct, the same as the scan flags,
// instead of nested structs. The number of options is small.
type Config struct {
	// InputFile is the path to the target list.
	InputFile string

	// Threads is the number of probes run concurrently.
	Threads int

	// Timeout bounds each scanner invocation.
	Timeout time.Duration

	// Rate caps how many probes start per second. Zero means no cap.
	Rate float64

	// ScannerPath is the scanner executable, either a path or a name
	// resolved through PATH.
	ScannerPath string

	// ScannerArgs are passed to the scanner before the "host:port" argument.
	ScannerArgs []string

	// Marker is the substring that marks TLS 1.1 as enabled in scanner output.
	Marker string

	// RemediationMode selects the remediation report instead of the basic one.
	RemediationMode bool

	// MarkdownReport renders the report as Markdown instead of plain text.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the default locations are searched (see FindConfigFile).
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool

	// NoColor disables ANSI colors in notices and reports.
	NoColor bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (threads, timeout, scanner).
func NewConfig() *Config {
	return &Config{
		Threads:     DefaultThreads,
		Timeout:     DefaultTimeout,
		ScannerPath: DefaultScanner,
		ScannerArgs: slices.Clone(DefaultScannerArgs),
		Marker:      DefaultMarker,
	}
}

// XDGConfigDir returns the XDG config directory for tls11scan.
// On Linux: ~/.config/tls11scan
// On macOS: ~/Library/Application Support/tls11scan
// On Windows: %APPDATA%\tls11scan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors in
// errors.go. This is called once after flag parsing, before the target list
// is read.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrNoInput
	}

	if c.Threads < 1 {
		return ErrInvalidThreads
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Rate < 0 {
		return ErrInvalidRate
	}

	if c.ScannerPath == "" {
		return ErrEmptyScanner
	}

	if c.Marker == "" {
		return ErrEmptyMarker
	}

	return nil
}
