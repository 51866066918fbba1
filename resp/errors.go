package resp

import "fmt"

// ProtocolError reports malformed wire data: a bad CRLF, a truncated
// bulk, an unknown type byte, a length outside the allowed range, a
// UTF-8 decode failure, or a verbatim string missing its encoding tag.
// It is produced only by this package. Once returned, the byte stream
// position is indeterminate for the current frame; callers (the
// Connection dispatcher) treat this as terminal for the connection.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return e.Msg }

func protoErrorf(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}
