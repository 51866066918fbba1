package valkey

import (
	"strconv"

	"github.com/componentized/valkey/resp"
)

// Auth runs AUTH user pass. Most callers instead authenticate via
// HelloOpts during Connect; this method exists for re-authenticating
// an already-open connection.
func (c *Connection) Auth(user, pass string) error {
	v, err := c.dispatch("AUTH", user, pass)
	if err != nil {
		return err
	}
	return expectOK(v)
}

// Del removes the given keys and returns how many actually existed.
// Widened from the single-key form spec.md's source carried (see
// spec.md §9 Open Question 3): DEL is variadic on the wire, so this
// accepts many keys and reports the server's real count instead of
// treating any reply other than Integer(1) as an error.
func (c *Connection) Del(keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, ClientErrorf("DEL requires at least one key")
	}
	v, err := c.dispatch(append([]string{"DEL"}, keys...)...)
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return 0, unexpectedShape(v)
	}
	return n, nil
}

// Exists reports whether key exists.
func (c *Connection) Exists(key string) (bool, error) {
	v, err := c.dispatch("EXISTS", key)
	if err != nil {
		return false, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return false, unexpectedShape(v)
	}
	return n != 0, nil
}

// Get returns the string value and true, or ("", false, nil) if key is
// absent.
func (c *Connection) Get(key string) (string, bool, error) {
	v, err := c.dispatch("GET", key)
	if err != nil {
		return "", false, err
	}
	if v.IsNull() {
		return "", false, nil
	}
	b, ok := v.BulkStringValue()
	if !ok {
		return "", false, unexpectedShape(v)
	}
	return string(b), true, nil
}

// Set stores value at key. A Null reply (the server aborted the write,
// e.g. a conditional SET whose condition failed) is reported as a
// KindClient error rather than silently succeeding.
func (c *Connection) Set(key, value string) error {
	v, err := c.dispatch("SET", key, value)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return ClientErrorf("Operation aborted")
	}
	return expectOK(v)
}

// Incr increments key by 1 and returns the new value.
func (c *Connection) Incr(key string) (int64, error) {
	return c.incrBy("INCR", key, nil)
}

// IncrBy increments key by delta and returns the new value.
func (c *Connection) IncrBy(key string, delta int64) (int64, error) {
	return c.incrBy("INCRBY", key, &delta)
}

func (c *Connection) incrBy(cmd, key string, delta *int64) (int64, error) {
	args := []string{cmd, key}
	if delta != nil {
		args = append(args, strconv.FormatInt(*delta, 10))
	}
	v, err := c.dispatch(args...)
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return 0, unexpectedShape(v)
	}
	return n, nil
}

// Keys returns every key matching the given glob pattern.
func (c *Connection) Keys(pattern string) ([]string, error) {
	v, err := c.dispatch("KEYS", pattern)
	if err != nil {
		return nil, err
	}
	return bulkStringsOf(v)
}

// Ping sends PING and fails unless the reply is exactly PONG.
func (c *Connection) Ping() error {
	v, err := c.dispatch("PING")
	if err != nil {
		return err
	}
	if v.Kind == resp.KindSimpleString && v.Str == "PONG" {
		return nil
	}
	return unexpectedShape(v)
}

// Quit sends QUIT and closes the connection whatever the reply; a
// reply other than OK is still reported as an error.
func (c *Connection) Quit() error {
	v, err := c.dispatch("QUIT")
	closeErr := c.Close()
	if err != nil {
		return err
	}
	if err := expectOK(v); err != nil {
		return err
	}
	return closeErr
}

// Publish sends a message on channel and returns the number of
// subscribers that received it.
func (c *Connection) Publish(channel, message string) (int64, error) {
	v, err := c.dispatch("PUBLISH", channel, message)
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return 0, unexpectedShape(v)
	}
	return n, nil
}
