package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nao1215/tls11scan/internal/console"
	"github.com/nao1215/tls11scan/internal/model"
)

// entryIndent prefixes every host line.
const entryIndent = "    "

// SimpleWriter outputs the report as terminal text.
// Section markers ([✓], [!], [+], [*]) keep the output readable when colors
// are off, for example when it is piped to a file.
type SimpleWriter struct {
	baseWriter

	palette *console.Palette
}

// NewSimpleWriter creates a SimpleWriter that renders the mode view to output.
// A nil palette disables colors.
func NewSimpleWriter(output io.Writer, mode Mode, palette *console.Palette) *SimpleWriter {
	if palette == nil {
		palette = console.NewPalette(false)
	}
	return &SimpleWriter{
		baseWriter: newBaseWriter(output, mode),
		palette:    palette,
	}
}

// Write outputs the report in the configured view.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	var sb strings.Builder

	if w.mode == ModeRemediation {
		w.writeRemediation(&sb, report)
	} else {
		w.writeBasic(&sb, report)
	}

	return io.WriteString(w.output, sb.String())
}

// writeBasic writes the enabled and disabled host lists.
func (w *SimpleWriter) writeBasic(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	w.line(sb, w.palette.Info, "[✓] Scan Results:")
	sb.WriteString("\n")

	if report.HasVulnerable() {
		w.line(sb, w.palette.Alert, "[!] Hosts with TLSv1.1 ENABLED:")
		sb.WriteString("\n")
		for _, t := range report.Vulnerable {
			w.line(sb, w.palette.Alert, entryIndent+"- "+t.Address())
		}
	} else {
		w.line(sb, w.palette.Success, "[✓] No hosts were found with TLSv1.1 enabled.")
	}

	sb.WriteString("\n")
	if len(report.NotVulnerable) > 0 {
		w.line(sb, w.palette.Success, "[+] Hosts with TLSv1.1 DISABLED:")
		sb.WriteString("\n")
		for _, t := range report.NotVulnerable {
			w.line(sb, w.palette.Success, entryIndent+"- "+t.Address())
		}
	} else {
		w.line(sb, w.palette.Success, "[+] No hosts were found with TLSv1.1 disabled.")
	}
}

// writeRemediation writes the NOT REMEDIATED and REMEDIATED lists and totals.
func (w *SimpleWriter) writeRemediation(sb *strings.Builder, report *model.ScanReport) {
	sb.WriteString("\n")
	w.line(sb, w.palette.Info, "[✓] Remediation Test Results:")
	sb.WriteString("\n")

	if report.HasVulnerable() {
		w.line(sb, w.palette.Alert, "[!] Hosts with TLSv1.1 still ENABLED:")
		sb.WriteString("\n")
		for _, t := range report.Vulnerable {
			sb.WriteString(w.palette.Alert.Sprint(entryIndent + t.Address() + " - "))
			w.line(sb, w.palette.Failure, "NOT REMEDIATED")
		}
	} else {
		w.line(sb, w.palette.Success, "[✓] No hosts were found with TLSv1.1 still enabled.")
	}

	sb.WriteString("\n")
	if len(report.NotVulnerable) > 0 {
		w.line(sb, w.palette.Success, "[+] Hosts with TLSv1.1 disabled:")
		sb.WriteString("\n")
		for _, t := range report.NotVulnerable {
			w.line(sb, w.palette.Success, entryIndent+t.Address()+" - REMEDIATED")
		}
	} else {
		w.line(sb, w.palette.Success, "[+] No hosts were found with TLSv1.1 disabled.")
	}

	sb.WriteString("\n")
	w.line(sb, w.palette.Info, fmt.Sprintf("[*] Total hosts scanned: %d", report.Total()))
	w.line(sb, w.palette.Alert, fmt.Sprintf("[*] Hosts with TLSv1.1 enabled: %d", report.VulnerableCount()))
	w.line(sb, w.palette.Success, fmt.Sprintf("[*] Hosts with TLSv1.1 disabled: %d", report.RemediatedCount()))
}

// line writes s in color c followed by a newline. The newline is kept
// outside the escape sequence so a terminal never carries color over.
func (w *SimpleWriter) line(sb *strings.Builder, c *color.Color, s string) {
	sb.WriteString(c.Sprint(s))
	sb.WriteString("\n")
}
