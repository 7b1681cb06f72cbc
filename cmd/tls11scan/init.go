package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/tls11scan/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/tls11scan.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a tls11scan configuration file",
		Long: `Init writes a commented .tls11scan configuration file.

The generated file documents every option with its default value:
- scanner executable, arguments and match marker
- per-probe timeout
- number of concurrent probes

Examples:
  # Create .tls11scan in the current directory
  tls11scan init

  # Create the file in the XDG config directory
  tls11scan init -o ~/.config/tls11scan/config.yaml

  # Overwrite an existing file
  tls11scan init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	if err := ensureParentDir(outputPath); err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, configTemplate, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change:")
	fmt.Fprintln(out, "  - the scanner executable and its arguments")
	fmt.Fprintln(out, "  - the per-probe timeout")
	fmt.Fprintln(out, "  - the number of concurrent probes")

	return nil
}

// ensureParentDir creates the directory that will hold path.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
