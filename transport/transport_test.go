package transport_test

import (
	"context"
	"net"
	"testing"

	"github.com/componentized/valkey/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLiteralIPv4(t *testing.T) {
	addrs, err := transport.Resolve(context.Background(), "127.0.0.1", "6379")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:6379"}, addrs)
}

func TestResolveLiteralIPv6(t *testing.T) {
	addrs, err := transport.Resolve(context.Background(), "::1", "6379")
	require.NoError(t, err)
	assert.Equal(t, []string{"[::1]:6379"}, addrs)
}

func TestResolveUnresolvableHost(t *testing.T) {
	_, err := transport.Resolve(context.Background(), "this-host-does-not-exist.invalid", "6379")
	assert.Error(t, err)
}

func TestDialAndWriteRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serverDone := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			serverDone <- nil
			return
		}
		defer conn.Close()
		buf := make([]byte, 5)
		_, _ = conn.Read(buf)
		serverDone <- buf
	}()

	conn, err := transport.Dial(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), <-serverDone)
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = transport.Dial(context.Background(), addr)
	assert.Error(t, err)
}
