package valkey

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed, per spec.md §7's four error
// kinds.
type Kind string

const (
	// KindResp marks malformed wire data from the codec layer. The
	// connection state is indeterminate afterward and should be
	// treated as closed.
	KindResp Kind = "resp"
	// KindValkey marks a server-side Error/BulkError reply. The
	// connection remains usable.
	KindValkey Kind = "valkey"
	// KindClient marks misuse or an unexpected reply shape. The
	// connection remains usable.
	KindClient Kind = "client"
	// KindTransport marks a network failure during resolve, dial,
	// read, or write. Terminal for the Connection.
	KindTransport Kind = "transport"
)

// Error is the single error type this package returns. Kind tells the
// caller which of spec.md §7's four buckets the failure falls in;
// Unwrap exposes the underlying cause (a *resp.ProtocolError for
// KindResp, the network or closed-connection error for KindTransport,
// or nil) for errors.As/errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func respError(cause error) *Error {
	return &Error{Kind: KindResp, Message: "protocol error", Cause: cause}
}

// ValkeyError wraps the message of a server Error/BulkError reply.
func ValkeyError(message string) *Error {
	return &Error{Kind: KindValkey, Message: message}
}

// ClientErrorf builds a KindClient error from a formatted message.
func ClientErrorf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindClient, Message: fmt.Sprintf(format, args...)}
}

func transportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: "transport error", Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
