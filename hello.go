package valkey

import "strconv"

// buildHelloArgs assembles the HELLO command line and enforces the
// AUTH/SETNAME-require-ProtoVer invariant without touching the network,
// so a misuse like AUTH-without-ProtoVer is rejected before any socket
// I/O happens (spec.md §8 scenario 6).
func buildHelloArgs(opts *HelloOpts) ([]string, error) {
	args := []string{"HELLO"}
	if opts == nil {
		return args, nil
	}
	if opts.ProtoVer == nil {
		if opts.Auth != nil {
			return nil, ClientErrorf("proto-ver must be specified to use auth")
		}
		if opts.ClientName != nil {
			return nil, ClientErrorf("proto-ver must be specified to use client-name")
		}
		return args, nil
	}
	args = append(args, *opts.ProtoVer)
	if opts.Auth != nil {
		args = append(args, "AUTH", opts.Auth.Username, opts.Auth.Password)
	}
	if opts.ClientName != nil {
		args = append(args, "SETNAME", *opts.ClientName)
	}
	return args, nil
}

// hello performs the HELLO handshake and records the negotiated
// protocol version. The reply is normalized from either RESP2's flat
// interleaved array or RESP3's Map (spec.md §4.3.2).
func (c *Connection) hello(opts *HelloOpts) error {
	args, err := buildHelloArgs(opts)
	if err != nil {
		return err
	}
	v, err := c.dispatch(args...)
	if err != nil {
		return err
	}
	pairs, err := normalizePairs(v)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if p.Key != "proto" {
			continue
		}
		if n, ok := p.Value.IntegerValue(); ok {
			c.proto = strconv.FormatInt(n, 10)
		}
	}
	return nil
}
