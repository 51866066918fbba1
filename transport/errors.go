package transport

import (
	"errors"
	"net"
)

// NetworkError wraps a network-layer failure (DNS resolution, dial, or
// read/write) with a short code name derived from the underlying error,
// matching spec.md's `Client("Network <code>")` shape. Callers classify
// it into a Transport-kind error; see the root valkey package.
type NetworkError struct {
	Code  string
	cause error
}

func (e *NetworkError) Error() string { return "Network " + e.Code }
func (e *NetworkError) Unwrap() error { return e.cause }

func classifyNetworkError(err error) error {
	if err == nil {
		return nil
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return &NetworkError{Code: "NotFound", cause: err}
		case dnsErr.IsTimeout:
			return &NetworkError{Code: "Timeout", cause: err}
		default:
			return &NetworkError{Code: "ResolutionFailure", cause: err}
		}
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return &NetworkError{Code: "InvalidAddress", cause: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return &NetworkError{Code: "Timeout", cause: err}
		}
		return &NetworkError{Code: classifyOpError(opErr), cause: err}
	}
	return &NetworkError{Code: "Unknown", cause: err}
}

func classifyOpError(opErr *net.OpError) string {
	switch opErr.Op {
	case "dial":
		return "ConnectionRefused"
	case "read":
		return "ConnectionReset"
	case "write":
		return "BrokenPipe"
	default:
		return "IOError"
	}
}
