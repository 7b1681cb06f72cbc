package target

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/tls11scan/internal/model"
	"golang.org/x/net/idna"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// commentPrefix starts a comment, either on its own line or after a target.
const commentPrefix = "#"

// Load reads the target list at path.
// Errors opening or reading the file are returned wrapped; a malformed
// line is returned as a *LineError.
func Load(path string) ([]model.Target, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided target list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer f.Close()

	targets, err := Parse(f)
	if err != nil {
		var lineErr *LineError
		if errors.As(err, &lineErr) {
			lineErr.Path = path
			return nil, lineErr
		}
		return nil, fmt.Errorf("failed to read target list %s: %w", path, err)
	}
	return targets, nil
}

// Parse reads targets from r, one per line.
// A leading UTF-8 byte order mark is ignored.
func Parse(r io.Reader) ([]model.Target, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)

	targets := make([]model.Target, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		t, err := ParseLine(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Text: line, Err: err}
		}
		targets = append(targets, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}

// ParseLine parses a single "HOST" or "HOST:PORT" entry.
// IPv6 addresses must be bracketed: "[2001:db8::1]" or "[2001:db8::1]:8443".
func ParseLine(line string) (model.Target, error) {
	line = strings.TrimSpace(line)

	host, portText, err := splitHostPort(line)
	if err != nil {
		return model.Target{}, err
	}

	port := model.DefaultPort
	if portText != "" {
		port, err = parsePort(portText)
		if err != nil {
			return model.Target{}, err
		}
	}

	host, err = normalizeHost(host)
	if err != nil {
		return model.Target{}, err
	}

	return model.NewTarget(host, port), nil
}

// stripComment removes comments and surrounding whitespace.
// A comment is a line starting with '#' or a '#' following the target.
func stripComment(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.Index(line, commentPrefix); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return line
}

// splitHostPort separates the host from an optional port.
func splitHostPort(line string) (host, port string, err error) {
	if strings.HasPrefix(line, "[") {
		if strings.HasSuffix(line, "]") {
			host = line[1 : len(line)-1]
			return host, "", validateIPv6(host)
		}
		host, port, err = net.SplitHostPort(line)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidHost, err)
		}
		if port == "" {
			return "", "", ErrInvalidPort
		}
		return host, port, validateIPv6(host)
	}

	switch strings.Count(line, ":") {
	case 0:
		host = line
	case 1:
		host, port, _ = strings.Cut(line, ":")
		host = strings.TrimSpace(host)
		port = strings.TrimSpace(port)
		if port == "" {
			return "", "", ErrInvalidPort
		}
	default:
		return "", "", ErrTooManyColons
	}

	if host == "" {
		return "", "", ErrEmptyHost
	}
	return host, port, nil
}

// validateIPv6 checks that a bracketed host is an IPv6 address.
func validateIPv6(host string) error {
	if host == "" {
		return ErrEmptyHost
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() != nil {
		return fmt.Errorf("%w: %q is not an IPv6 address", ErrInvalidHost, host)
	}
	return nil
}

// parsePort converts a port string and checks its range.
func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, ErrInvalidPort
	}
	return port, nil
}

// normalizeHost converts hostnames to their ASCII (punycode) form.
// IP addresses are returned unchanged.
func normalizeHost(host string) (string, error) {
	if net.ParseIP(host) != nil {
		return host, nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHost, err)
	}
	if ascii == "" {
		return "", ErrEmptyHost
	}
	return ascii, nil
}
