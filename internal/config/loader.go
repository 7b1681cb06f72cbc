package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name in the current
// and home directories.
const DefaultConfigFile = ".tls11scan"

// xdgConfigFile is the configuration file name inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ScannerConfig describes how the external scanner is invoked.
type ScannerConfig struct {
	// Path is the scanner executable.
	Path string `yaml:"path,omitempty"`

	// Args replace DefaultScannerArgs when non-empty.
	Args []string `yaml:"args,omitempty"`

	// Marker replaces DefaultMarker when non-empty.
	Marker string `yaml:"marker,omitempty"`

	// Timeout bounds each invocation, e.g. "45s".
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// File represents the structure of the .tls11scan configuration file.
type File struct {
	// Scanner overrides the scanner invocation.
	Scanner ScannerConfig `yaml:"scanner,omitempty"`

	// Threads overrides DefaultThreads.
	Threads int `yaml:"threads,omitempty"`

	// Rate caps probe starts per second.
	Rate float64 `yaml:"rate,omitempty"`
}

// ApplyTo copies every value set in the file onto cfg.
// Zero values are treated as unset and leave cfg untouched.
func (f *File) ApplyTo(cfg *Config) {
	if f.Scanner.Path != "" {
		cfg.ScannerPath = f.Scanner.Path
	}
	if len(f.Scanner.Args) > 0 {
		cfg.ScannerArgs = append([]string(nil), f.Scanner.Args...)
	}
	if f.Scanner.Marker != "" {
		cfg.Marker = f.Scanner.Marker
	}
	if f.Scanner.Timeout != 0 {
		cfg.Timeout = f.Scanner.Timeout
	}
	if f.Threads != 0 {
		cfg.Threads = f.Threads
	}
	if f.Rate != 0 {
		cfg.Rate = f.Rate
	}
}

// LoadConfigFile loads a configuration file in YAML format.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .tls11scan in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .tls11scan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}
