package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for tls11scan.
// The root command runs the scan itself; init and version are subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tls11scan",
		Short: "Detect TLS 1.1 support across many hosts",
		Long: `tls11scan checks a list of TLS endpoints for TLS 1.1 support.

Each target is probed with sslscan (or a compatible scanner), several at a
time. Hosts that still accept TLS 1.1 are reported as they are found, and a
summary is printed once every target has been scanned.

Target file format (one target per line):
  # comments and blank lines are ignored
  example.com          # port 443 is assumed
  example.com:8443
  192.0.2.10:4443
  [2001:db8::1]:443

Examples:
  # Scan every target in hosts.txt with 10 concurrent probes
  tls11scan -i hosts.txt

  # Re-check hosts after disabling TLS 1.1
  tls11scan -i hosts.txt -r

  # Use 25 probes and write a Markdown report to a file
  tls11scan -i hosts.txt -t 25 -m -o reports/tls11.md`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScanCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	addScanFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
