package report

import (
	"fmt"
	"io"

	"github.com/nao1215/tls11scan/internal/console"
	"github.com/nao1215/tls11scan/internal/model"
)

// Mode selects which view of the scan is rendered.
type Mode int

const (
	// ModeBasic lists enabled and disabled hosts.
	ModeBasic Mode = iota
	// ModeRemediation lists NOT REMEDIATED and REMEDIATED hosts plus totals.
	ModeRemediation
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeRemediation:
		return "remediation"
	default:
		return "unknown"
	}
}

// Format selects the output encoding of a report.
type Format int

const (
	// FormatText is terminal text with optional colors.
	FormatText Format = iota
	// FormatMarkdown is a Markdown document.
	FormatMarkdown
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface so the CLI can write either format
// to stdout or to a file with the same call.
type Writer interface {
	// Write renders report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ScanReport) (int, error)
}

// Option configures the writer returned by NewWriter.
type Option func(*options)

type options struct {
	palette *console.Palette
}

// WithPalette sets the colors used by the text writer.
// Markdown output is never colored.
func WithPalette(p *console.Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// NewWriter returns the writer for format, rendering the view selected by
// mode to out.
func NewWriter(mode Mode, format Format, out io.Writer, opts ...Option) (Writer, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	switch format {
	case FormatText:
		return NewSimpleWriter(out, mode, o.palette), nil
	case FormatMarkdown:
		return NewMarkdownWriter(out, mode), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %d", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
	mode   Mode
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer, mode Mode) baseWriter {
	return baseWriter{output: output, mode: mode}
}
