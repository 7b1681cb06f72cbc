package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	tlslog "github.com/nao1215/tls11scan/internal/log"
	"github.com/nao1215/tls11scan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for attaching scan results to tickets and
// change requests.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables and lists
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that renders the mode view to output.
func NewMarkdownWriter(output io.Writer, mode Mode) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output, mode),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)

	if w.mode == ModeRemediation {
		w.writeRemediation(md, report)
	} else {
		w.writeBasic(md, report)
	}

	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ScanReport) {
	if w.mode == ModeRemediation {
		md.H1("TLSv1.1 Remediation Test Results")
	} else {
		md.H1("TLSv1.1 Scan Results")
	}
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Targets Submitted", strconv.Itoa(report.Submitted)},
			{"Total Hosts Scanned", strconv.Itoa(report.Total())},
			{"Hosts with TLSv1.1 enabled", strconv.Itoa(report.VulnerableCount())},
			{"Hosts with TLSv1.1 disabled", strconv.Itoa(report.RemediatedCount())},
			{"Hosts that failed to scan", strconv.Itoa(report.Unscanned())},
		},
	})
	md.PlainText("")
}

// writeSummary writes the distribution chart and an alert for the outcome.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.ScanReport) {
	if report.Total() > 0 {
		w.writePieChart(md, report)
	}

	switch {
	case report.HasVulnerable() && w.mode == ModeRemediation:
		md.Cautionf("%d host(s) are NOT REMEDIATED and still accept TLSv1.1.", report.VulnerableCount())
	case report.HasVulnerable():
		md.Warningf("%d host(s) accept TLSv1.1. Disable the protocol on these endpoints.", report.VulnerableCount())
	case report.Unscanned() > 0:
		md.Importantf("No host accepts TLSv1.1, but %d host(s) could not be scanned.", report.Unscanned())
	case report.Total() == 0:
		md.Note("No hosts were scanned.")
	default:
		md.Tip("No hosts were found with TLSv1.1 enabled.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.ScanReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("TLSv1.1 Status"),
		piechart.WithShowData(true),
	)

	if n := report.VulnerableCount(); n > 0 {
		chart.LabelAndIntValue("Enabled", uint64(n))
	}
	if n := report.RemediatedCount(); n > 0 {
		chart.LabelAndIntValue("Disabled", uint64(n))
	}
	if n := report.Unscanned(); n > 0 {
		chart.LabelAndIntValue("Failed", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeBasic writes the enabled and disabled host lists.
func (w *MarkdownWriter) writeBasic(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Hosts with TLSv1.1 ENABLED")
	md.PlainText("")
	w.writeTargets(md, report.Vulnerable, "", "No hosts were found with TLSv1.1 enabled.")

	md.H2("Hosts with TLSv1.1 DISABLED")
	md.PlainText("")
	w.writeTargets(md, report.NotVulnerable, "", "No hosts were found with TLSv1.1 disabled.")
}

// writeRemediation writes the NOT REMEDIATED and REMEDIATED tables.
func (w *MarkdownWriter) writeRemediation(md *markdown.Markdown, report *model.ScanReport) {
	md.H2("Hosts with TLSv1.1 still ENABLED")
	md.PlainText("")
	w.writeTargets(md, report.Vulnerable, "❌ NOT REMEDIATED", "No hosts were found with TLSv1.1 still enabled.")

	md.H2("Hosts with TLSv1.1 disabled")
	md.PlainText("")
	w.writeTargets(md, report.NotVulnerable, "✅ REMEDIATED", "No hosts were found with TLSv1.1 disabled.")
}

// writeTargets writes a host table, with a status column when status is set,
// or the empty message when there are no targets.
func (w *MarkdownWriter) writeTargets(md *markdown.Markdown, targets []model.Target, status, empty string) {
	if len(targets) == 0 {
		md.PlainText(empty)
		md.PlainText("")
		return
	}

	header := []string{"Host", "Port"}
	if status != "" {
		header = append(header, "Status")
	}

	rows := make([][]string, len(targets))
	for i, t := range targets {
		row := []string{"`" + t.Host + "`", strconv.Itoa(t.Port)}
		if status != "" {
			row = append(row, status)
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures lists hosts that could not be classified.
// They appear in neither host list above.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.ScanReport) {
	if report.Unscanned() == 0 {
		return
	}

	md.H2("Hosts that failed to scan")
	md.PlainText("")

	if len(report.Failed) > 0 {
		rows := make([][]string, len(report.Failed))
		for i, o := range report.Failed {
			rows[i] = []string{"`" + o.Target.Address() + "`", escapeCell(o.Reason)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Target", "Reason"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if report.Dropped > 0 {
		md.PlainTextf("%d probe(s) ended without producing a result.", report.Dropped)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [tls11scan](https://github.com/nao1215/tls11scan)*")
}

// escapeCell makes s safe to place in a single table cell.
func escapeCell(s string) string {
	s = tlslog.Sanitize(s)
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
