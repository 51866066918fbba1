// Package transport resolves a (host, port) pair to candidate socket
// addresses and establishes a single blocking TCP connection to one of
// them. It performs no RESP framing; it is a bidirectional byte pipe
// with blocking read and blocking write-and-flush, grounded on the
// dial/pool pattern in the teacher's cluster.PeerClient, generalized to
// a single always-fresh connection (no pooling — spec.md's Non-goals
// exclude connection pooling at this layer).
package transport

import (
	"bufio"
	"context"
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Conn is one established TCP connection plus a buffered reader over
// it. The buffered reader is what lets the resp.Decoder block across
// multiple underlying reads until a full frame is available, instead
// of decoding against one fixed-size chunk.
type Conn struct {
	net.Conn
	Reader *bufio.Reader
}

// Resolve turns (host, port) into an ordered list of dialable "ip:port"
// addresses. A literal IPv4 or IPv6 host yields exactly one address; any
// other host is resolved via DNS and every returned address is kept, in
// the order the resolver returned them.
func Resolve(ctx context.Context, host, port string) ([]string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []string{net.JoinHostPort(ip.String(), port)}, nil
	}

	ipAddrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	addrs := make([]string, 0, len(ipAddrs))
	for _, ia := range ipAddrs {
		addrs = append(addrs, net.JoinHostPort(ia.IP.String(), port))
	}
	return addrs, nil
}

// Dial creates a socket of the matching family for addr, connects, and
// blocks until the connection is ready (or ctx is done / an error
// occurs). Any network error is classified into a Transport-kind error
// carrying the underlying code name.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	logrus.WithField("addr", addr).Debug("transport: dialing")
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(classifyNetworkError(err), "dial %s", addr)
	}
	return &Conn{Conn: conn, Reader: bufio.NewReader(conn)}, nil
}

// Write writes b in full and returns any short-write or network error.
// There is no internal buffering to flush: each call to Write hands the
// caller's fully-built frame straight to the socket.
func (c *Conn) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)
	if err != nil {
		return n, errors.Wrap(classifyNetworkError(err), "write")
	}
	return n, nil
}
