package valkey

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/componentized/valkey/resp"
	"github.com/componentized/valkey/transport"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// pipeConnection builds a Connection wired to one end of an in-memory
// net.Pipe, handing the test the other end to act as a scripted server.
// It bypasses Connect and hello entirely; hello_test.go calls hello
// directly on a Connection built here.
func pipeConnection(t *testing.T) (*Connection, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	c := &Connection{
		conn:  &transport.Conn{Conn: client, Reader: bufio.NewReader(client)},
		dec:   resp.NewDecoder(bufio.NewReader(client)),
		proto: "2",
		state: stateOpen,
		log:   logrus.NewEntry(logrus.New()),
	}
	return c, server
}

// serveOnce writes reply on the first request the client sends and
// leaves the pipe open for further exchanges in the same test.
func serveOnce(t *testing.T, server net.Conn, reply []byte) {
	t.Helper()
	go func() {
		buf := make([]byte, 4096)
		_, _ = server.Read(buf)
		_, _ = server.Write(reply)
	}()
}

func TestSendDecodesAcrossMultipleReads(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()

	go func() {
		buf := make([]byte, 4096)
		_, _ = server.Read(buf)
		// Dribble the reply out in small pieces to exercise the
		// buffered reader blocking across multiple underlying reads
		// (spec.md §9 Open Question 1).
		full := []byte("$19\r\nhello-world-padding\r\n")
		for _, b := range full {
			_, _ = server.Write([]byte{b})
			time.Sleep(time.Millisecond)
		}
	}()

	v, err := c.Send("GET", "k")
	require.NoError(t, err)
	b, ok := v.BulkStringValue()
	require.True(t, ok)
	require.Equal(t, "hello-world-padding", string(b))
}

func TestDispatchConvertsErrorReplyToValkeyError(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte("-ERR no such key\r\n"))

	_, err := c.dispatch("GET", "missing")
	require.Error(t, err)
	require.True(t, IsKind(err, KindValkey))
}

func TestCloseIsIdempotent(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestSendOnClosedConnectionFailsFast(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	require.NoError(t, c.Close())

	_, err := c.Send("PING")
	require.Error(t, err)
	require.True(t, IsKind(err, KindTransport))
}
