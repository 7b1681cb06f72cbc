package target

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is matched by every *LineError via errors.Is.
var ErrMalformedLine = errors.New("malformed target line")

// Specific reasons a line is rejected. They are wrapped by *LineError.
var (
	// ErrEmptyHost is returned for lines such as ":443".
	ErrEmptyHost = errors.New("empty host")

	// ErrInvalidPort is returned when the port is not a number in 1..65535.
	ErrInvalidPort = errors.New("invalid port: must be a number between 1 and 65535")

	// ErrTooManyColons is returned for unbracketed IPv6 addresses and lines
	// such as "host:443:8443".
	ErrTooManyColons = errors.New("too many colons: use [IPv6]:PORT for IPv6 addresses")

	// ErrInvalidHost is returned when the host is not a valid hostname.
	ErrInvalidHost = errors.New("invalid host")
)

// LineError reports a malformed line in a target list.
type LineError struct {
	// Path is the file being read. Empty when parsing from a reader.
	Path string

	// Line is the 1-based line number.
	Line int

	// Text is the offending line with surrounding whitespace removed.
	Text string

	// Err is the specific reason.
	Err error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	location := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		location = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("%s: invalid target %q: %v", location, e.Text, e.Err)
}

// Unwrap exposes both ErrMalformedLine and the specific reason.
func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}
