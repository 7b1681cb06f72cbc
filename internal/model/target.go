package model

import (
	"net"
	"strconv"
)

// DefaultPort is used when a target line does not specify a port.
// 443 is the standard HTTPS port and the most common TLS endpoint.
const DefaultPort = 443

// Target is one endpoint to probe.
// Targets are created by the loader and never modified afterwards.
type Target struct {
	// Host is a hostname or IP address. IPv6 addresses are stored
	// without brackets.
	Host string

	// Port is the TCP port, in the range 1..65535.
	Port int
}

// NewTarget creates a Target. A zero port is replaced by DefaultPort.
func NewTarget(host string, port int) Target {
	if port == 0 {
		port = DefaultPort
	}
	return Target{Host: host, Port: port}
}

// Address returns the target in "host:port" form, bracketing IPv6 hosts.
// This is the form passed to the external scanner.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return t.Address()
}

// Less orders targets by host, then by port.
func (t Target) Less(other Target) bool {
	if t.Host != other.Host {
		return t.Host < other.Host
	}
	return t.Port < other.Port
}
