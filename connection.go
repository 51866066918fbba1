// Package valkey is a client library for a Valkey/Redis-compatible
// store: a RESP2/RESP3 wire codec (package resp) plus a connection-
// oriented command dispatcher that builds RESP requests, writes them
// over a single TCP connection (package transport), decodes the reply,
// and enforces each command's declared response shape.
//
// A Connection is not safe for concurrent use: the wire is a single
// serial request/reply channel (spec.md §5). Pooling, pipelining,
// reconnection, pub/sub streams, TLS, sharding, and cluster topology
// discovery are explicitly out of scope.
package valkey

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/componentized/valkey/resp"
	"github.com/componentized/valkey/transport"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

var errConnectionClosed = errors.New("connection closed")

type connState int

const (
	stateOpen connState = iota
	stateClosed
)

// Connection owns one TCP connection, its decode stream, and the
// protocol version negotiated with HELLO. It is a two-state machine:
// Open after a successful HELLO, Closed once any I/O or decode failure
// is observed or QUIT is sent. Operations on a Closed connection return a
// KindTransport error rather than reattempt I/O.
type Connection struct {
	conn  *transport.Conn
	dec   *resp.Decoder
	proto string
	state connState
	log   *logrus.Entry
}

// Connect resolves (host, port), tries each candidate address in turn,
// and performs a HELLO handshake on the first one that accepts a TCP
// connection. A failure of Resolve itself is returned at once as a
// KindTransport error. Per spec.md §9 Open Question 4: a candidate's
// dial failure, or a read/write/decode failure during its HELLO, is
// swallowed and the next address is tried, but a HELLO rejection that
// is a Valkey or Client error (bad password, malformed opts) is
// surfaced immediately instead of being hidden behind a generic
// "unable to connect" message.
func Connect(ctx context.Context, host, port string, opts *ConnectOptions) (*Connection, error) {
	if opts == nil {
		opts = &ConnectOptions{}
	}

	addrs, err := transport.Resolve(ctx, host, port)
	if err != nil {
		return nil, transportError(err)
	}

	var dialFailures *multierror.Error
	for _, addr := range addrs {
		dialCtx, cancel := withOptionalTimeout(ctx, opts.DialTimeout)
		tc, dialErr := transport.Dial(dialCtx, addr)
		cancel()
		if dialErr != nil {
			dialFailures = multierror.Append(dialFailures, dialErr)
			defaultLogger.WithField("addr", addr).WithError(dialErr).
				Debug("valkey: candidate dial failed, trying next address")
			continue
		}

		c := &Connection{
			conn:  tc,
			dec:   resp.NewDecoder(tc.Reader),
			proto: "2",
			state: stateOpen,
			log:   defaultLogger.WithField("addr", addr),
		}
		if helloErr := c.hello(opts.Hello); helloErr != nil {
			if isHandshakeRejection(helloErr) {
				_ = tc.Close()
				return nil, helloErr
			}
			dialFailures = multierror.Append(dialFailures, helloErr)
			c.log.WithError(helloErr).Debug("valkey: HELLO failed on candidate, trying next address")
			_ = tc.Close()
			continue
		}
		return c, nil
	}

	if dialFailures != nil {
		return nil, ClientErrorf("unable to connect to %s:%s: %v", host, port, dialFailures)
	}
	return nil, ClientErrorf("unable to connect to %s:%s", host, port)
}

// isHandshakeRejection reports whether err is a Valkey or Client error
// produced by the HELLO exchange itself (auth rejected, malformed
// opts) as opposed to a transport failure during that exchange.
func isHandshakeRejection(err error) bool {
	return IsKind(err, KindValkey) || IsKind(err, KindClient)
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// Close releases the underlying TCP connection. It is not an error to
// Close an already-closed Connection.
func (c *Connection) Close() error {
	if c.state == stateClosed {
		return nil
	}
	c.state = stateClosed
	return c.conn.Close()
}

// Send encodes args as an Array of BulkStrings, writes it, and decodes
// exactly one reply Value. It is exposed for commands not in the typed
// catalog (spec.md §6). Decode reads from a buffered stream that
// blocks across multiple underlying TCP reads until a full frame is
// available, so a reply spanning more than one segment — or larger
// than a single fixed-size read — decodes correctly (spec.md §9 Open
// Question 1).
func (c *Connection) Send(args ...string) (resp.Value, error) {
	if c.state == stateClosed {
		return resp.Value{}, transportError(errConnectionClosed)
	}

	c.log.WithField("cmd", strings.Join(args, " ")).Debug("valkey: sending command")
	req := resp.Encode(resp.ArrayOfBulkStrings(args...))
	if _, err := c.conn.Write(req); err != nil {
		c.state = stateClosed
		return resp.Value{}, transportError(err)
	}

	v, err := c.dec.Decode()
	if err != nil {
		c.state = stateClosed
		if _, ok := err.(*resp.ProtocolError); ok {
			return resp.Value{}, respError(err)
		}
		return resp.Value{}, transportError(err)
	}
	return v, nil
}

// dispatch applies the uniform rule every typed command shares: a
// server Error or BulkError reply becomes a KindValkey error. Callers
// then pattern-match the remaining reply shape themselves.
func (c *Connection) dispatch(args ...string) (resp.Value, error) {
	v, err := c.Send(args...)
	if err != nil {
		return resp.Value{}, err
	}
	switch v.Kind {
	case resp.KindError:
		return resp.Value{}, ValkeyError(v.Str)
	case resp.KindBulkError:
		return resp.Value{}, ValkeyError(string(v.Bulk))
	default:
		return v, nil
	}
}
