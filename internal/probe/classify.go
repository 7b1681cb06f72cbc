package probe

import (
	"strings"

	"github.com/nao1215/tls11scan/internal/model"
)

// Classify maps scanner output to a status.
//
// Output containing marker is StatusVulnerable. Any other non-blank output
// is StatusNotVulnerable. Blank output cannot be classified and yields
// StatusScanFailed with ErrEmptyOutput. This is stricter than treating every
// marker-less output as not vulnerable: a scanner that printed nothing
// tested nothing.
//
// The match is an exact substring match: sslscan prints a fixed-width
// protocol table ("TLSv1.1   enabled" / "TLSv1.1   disabled"), and
// matching the whole fragment keeps "disabled" from counting as a hit.
func Classify(output, marker string) (model.Status, error) {
	if strings.TrimSpace(output) == "" {
		return model.StatusScanFailed, ErrEmptyOutput
	}
	if strings.Contains(output, marker) {
		return model.StatusVulnerable, nil
	}
	return model.StatusNotVulnerable, nil
}
