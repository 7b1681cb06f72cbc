package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/tls11scan/internal/console"
	"github.com/nao1215/tls11scan/internal/model"
)

// remediationScenario is the re-check after a fix rollout: a.example still
// accepts TLSv1.1, b.example and c.example no longer do.
func remediationScenario() *model.ScanReport {
	outcomes := []model.Outcome{
		model.NewOutcome(model.NewTarget("c.example", 8443), model.StatusNotVulnerable),
		model.NewOutcome(model.NewTarget("a.example", 443), model.StatusVulnerable),
		model.NewOutcome(model.NewTarget("b.example", 443), model.StatusNotVulnerable),
	}
	return model.NewScanReport(outcomes, len(outcomes), 0)
}

func emptyReport() *model.ScanReport {
	return model.NewScanReport(nil, 0, 0)
}

func TestMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		want string
	}{
		{ModeBasic, "basic"},
		{ModeRemediation, "remediation"},
		{Mode(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.mode.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		w, err := NewWriter(ModeBasic, FormatText, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := w.(*SimpleWriter); !ok {
			t.Errorf("expected *SimpleWriter, got %T", w)
		}
	})

	t.Run("markdown format", func(t *testing.T) {
		t.Parallel()

		w, err := NewWriter(ModeRemediation, FormatMarkdown, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := w.(*MarkdownWriter); !ok {
			t.Errorf("expected *MarkdownWriter, got %T", w)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		if _, err := NewWriter(ModeBasic, Format(9), &bytes.Buffer{}); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

// TestSimpleWriter tests the terminal text report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("basic view", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, ModeBasic, nil)

		n, err := w.Write(remediationScenario())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		want := "\n[✓] Scan Results:\n\n" +
			"[!] Hosts with TLSv1.1 ENABLED:\n\n" +
			"    - a.example:443\n" +
			"\n[+] Hosts with TLSv1.1 DISABLED:\n\n" +
			"    - b.example:443\n" +
			"    - c.example:8443\n"
		if got := buf.String(); got != want {
			t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("basic view with no hosts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, ModeBasic, nil)

		if _, err := w.Write(emptyReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, s := range []string{
			"[✓] No hosts were found with TLSv1.1 enabled.",
			"[+] No hosts were found with TLSv1.1 disabled.",
		} {
			if !strings.Contains(output, s) {
				t.Errorf("expected output to contain %q, got:\n%s", s, output)
			}
		}
	})

	t.Run("remediation view", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, ModeRemediation, nil)

		if _, err := w.Write(remediationScenario()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "\n[✓] Remediation Test Results:\n\n" +
			"[!] Hosts with TLSv1.1 still ENABLED:\n\n" +
			"    a.example:443 - NOT REMEDIATED\n" +
			"\n[+] Hosts with TLSv1.1 disabled:\n\n" +
			"    b.example:443 - REMEDIATED\n" +
			"    c.example:8443 - REMEDIATED\n" +
			"\n[*] Total hosts scanned: 3\n" +
			"[*] Hosts with TLSv1.1 enabled: 1\n" +
			"[*] Hosts with TLSv1.1 disabled: 2\n"
		if got := buf.String(); got != want {
			t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("remediation view with no hosts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, ModeRemediation, nil)

		if _, err := w.Write(emptyReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, s := range []string{
			"[✓] No hosts were found with TLSv1.1 still enabled.",
			"[+] No hosts were found with TLSv1.1 disabled.",
			"[*] Total hosts scanned: 0",
		} {
			if !strings.Contains(output, s) {
				t.Errorf("expected output to contain %q, got:\n%s", s, output)
			}
		}
		if strings.Contains(output, "REMEDIATED\n") {
			t.Error("expected no host entries")
		}
	})

	t.Run("failed hosts appear in neither list but count as scanned", func(t *testing.T) {
		t.Parallel()

		outcomes := []model.Outcome{
			model.NewOutcome(model.NewTarget("ok.example", 443), model.StatusNotVulnerable),
			model.FailedOutcome(model.NewTarget("down.example", 443), errors.New("scanner exited")),
		}
		report := model.NewScanReport(outcomes, 3, 1)

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, ModeRemediation, nil)
		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "down.example") {
			t.Error("failed host must not be listed")
		}
		if !strings.Contains(output, "[*] Total hosts scanned: 2") {
			t.Errorf("expected failed outcome in total, got:\n%s", output)
		}
	})

	t.Run("colors follow the palette", func(t *testing.T) {
		t.Parallel()

		var plain, colored bytes.Buffer
		report := remediationScenario()

		if _, err := NewSimpleWriter(&plain, ModeBasic, console.NewPalette(false)).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewSimpleWriter(&colored, ModeBasic, console.NewPalette(true)).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(plain.String(), "\x1b[") {
			t.Error("expected no escape sequences without colors")
		}
		if !strings.Contains(colored.String(), "\x1b[") {
			t.Error("expected escape sequences with colors")
		}
		if !strings.Contains(colored.String(), "a.example:443") {
			t.Error("expected host in colored output")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("basic view", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, ModeBasic)

		if _, err := w.Write(remediationScenario()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, s := range []string{
			"# TLSv1.1 Scan Results",
			"## Hosts with TLSv1.1 ENABLED",
			"## Hosts with TLSv1.1 DISABLED",
			"`a.example`",
			"`c.example`",
			"8443",
			"WARNING",
			"mermaid",
		} {
			if !strings.Contains(output, s) {
				t.Errorf("expected output to contain %q", s)
			}
		}
		if strings.Contains(output, "REMEDIATED") {
			t.Error("basic view must not use remediation labels")
		}
	})

	t.Run("remediation view", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, ModeRemediation)

		if _, err := w.Write(remediationScenario()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, s := range []string{
			"# TLSv1.1 Remediation Test Results",
			"NOT REMEDIATED",
			"✅ REMEDIATED",
			"CAUTION",
		} {
			if !strings.Contains(output, s) {
				t.Errorf("expected output to contain %q", s)
			}
		}
		if got := strings.Count(output, "✅ REMEDIATED"); got != 2 {
			t.Errorf("expected 2 REMEDIATED rows, got %d", got)
		}
	})

	t.Run("empty lists print explicit messages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, ModeRemediation)

		if _, err := w.Write(emptyReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, s := range []string{
			"No hosts were found with TLSv1.1 still enabled.",
			"No hosts were found with TLSv1.1 disabled.",
		} {
			if !strings.Contains(output, s) {
				t.Errorf("expected output to contain %q", s)
			}
		}
		if strings.Contains(output, "mermaid") {
			t.Error("expected no chart for an empty report")
		}
	})

	t.Run("lists failures with escaped reasons", func(t *testing.T) {
		t.Parallel()

		outcomes := []model.Outcome{
			model.FailedOutcome(model.NewTarget("down.example", 443), errors.New("exit|status 2")),
		}
		report := model.NewScanReport(outcomes, 2, 1)

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, ModeBasic)
		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Hosts that failed to scan") {
			t.Error("expected failure section")
		}
		if !strings.Contains(output, `exit\|status 2`) {
			t.Error("expected pipe in reason to be escaped")
		}
		if !strings.Contains(output, "1 probe(s) ended without producing a result.") {
			t.Error("expected dropped probe note")
		}
	})
}
