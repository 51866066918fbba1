package valkey

import (
	"strconv"

	"github.com/componentized/valkey/resp"
)

// HashField is one field/value pair as returned by HGETALL.
type HashField struct {
	Field string
	Value string
}

// HashFieldSample is one field sampled by HRANDFIELD or walked by
// HSCAN. Value/HasValue are only populated when the caller asked for
// values (HRANDFIELD's WithValues, HSCAN without NoValues).
type HashFieldSample struct {
	Field    string
	Value    string
	HasValue bool
}

// HDel removes the given fields from the hash at key and returns how
// many actually existed. Widened from the single-field form spec.md's
// source carried (spec.md §9 Open Question 3), matching Del.
func (c *Connection) HDel(key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, ClientErrorf("HDEL requires at least one field")
	}
	v, err := c.dispatch(append([]string{"HDEL", key}, fields...)...)
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return 0, unexpectedShape(v)
	}
	return n, nil
}

// HExists reports whether field exists in the hash at key.
func (c *Connection) HExists(key, field string) (bool, error) {
	v, err := c.dispatch("HEXISTS", key, field)
	if err != nil {
		return false, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return false, unexpectedShape(v)
	}
	return n != 0, nil
}

// HGet returns the value of field in the hash at key, or ("", false,
// nil) if the field or key is absent.
func (c *Connection) HGet(key, field string) (string, bool, error) {
	v, err := c.dispatch("HGET", key, field)
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

// HGetAll returns every field/value pair in the hash at key, accepting
// either the RESP2 flat interleaved array or the RESP3 Map shape
// (spec.md §4.3.4).
func (c *Connection) HGetAll(key string) ([]HashField, error) {
	v, err := c.dispatch("HGETALL", key)
	if err != nil {
		return nil, err
	}
	pairs, err := normalizePairs(v)
	if err != nil {
		return nil, err
	}
	out := make([]HashField, len(pairs))
	for i, p := range pairs {
		val, ok := p.Value.BulkStringValue()
		if !ok {
			return nil, unexpectedShape(p.Value)
		}
		out[i] = HashField{Field: p.Key, Value: string(val)}
	}
	return out, nil
}

// HIncrBy increments field in the hash at key by delta and returns the
// new integer value.
func (c *Connection) HIncrBy(key, field string, delta int64) (int64, error) {
	v, err := c.dispatch("HINCRBY", key, field, strconv.FormatInt(delta, 10))
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return 0, unexpectedShape(v)
	}
	return n, nil
}

// HIncrByFloat increments field by delta and returns the new value's
// textual form (the server's own formatting, preserved verbatim to
// avoid reintroducing float rounding the server already avoided).
func (c *Connection) HIncrByFloat(key, field string, delta float64) (string, error) {
	v, err := c.dispatch("HINCRBYFLOAT", key, field, strconv.FormatFloat(delta, 'f', -1, 64))
	if err != nil {
		return "", err
	}
	b, ok := v.BulkStringValue()
	if !ok {
		return "", unexpectedShape(v)
	}
	return string(b), nil
}

// HKeys returns every field name in the hash at key.
func (c *Connection) HKeys(key string) ([]string, error) {
	v, err := c.dispatch("HKEYS", key)
	if err != nil {
		return nil, err
	}
	return bulkStringsOf(v)
}

// HLen returns the number of fields in the hash at key.
func (c *Connection) HLen(key string) (uint64, error) {
	v, err := c.dispatch("HLEN", key)
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok || n < 0 {
		return 0, unexpectedShape(v)
	}
	return uint64(n), nil
}

// HMGet returns the value of each field in fields, in order; a nil
// entry means that field is absent.
func (c *Connection) HMGet(key string, fields ...string) ([]*string, error) {
	v, err := c.dispatch(append([]string{"HMGET", key}, fields...)...)
	if err != nil {
		return nil, err
	}
	if v.Kind != resp.KindArray {
		return nil, unexpectedShape(v)
	}
	out := make([]*string, len(v.Array))
	for i, e := range v.Array {
		if e.IsNull() {
			continue
		}
		b, ok := e.BulkStringValue()
		if !ok {
			return nil, unexpectedShape(e)
		}
		s := string(b)
		out[i] = &s
	}
	return out, nil
}

// HMSet sets every field/value pair at once.
func (c *Connection) HMSet(key string, fields ...HashField) error {
	if len(fields) == 0 {
		return ClientErrorf("HMSET requires at least one field/value pair")
	}
	args := make([]string, 0, 2+2*len(fields))
	args = append(args, "HMSET", key)
	for _, f := range fields {
		args = append(args, f.Field, f.Value)
	}
	v, err := c.dispatch(args...)
	if err != nil {
		return err
	}
	return expectOK(v)
}

// HRandField samples field names (and optionally values) from the hash
// at key. See HrandfieldOpts for the count/with-values invariants.
func (c *Connection) HRandField(key string, opts *HrandfieldOpts) ([]HashFieldSample, error) {
	if opts != nil && opts.WithValues && opts.Count == nil {
		return nil, ClientErrorf("count must be specified to use with-values")
	}

	args := []string{"HRANDFIELD", key}
	withValues := opts != nil && opts.WithValues
	if opts != nil && opts.Count != nil {
		args = append(args, strconv.FormatInt(*opts.Count, 10))
		if withValues {
			args = append(args, "WITHVALUES")
		}
	}

	v, err := c.dispatch(args...)
	if err != nil {
		return nil, err
	}

	if opts == nil || opts.Count == nil {
		if v.IsNull() {
			return nil, nil
		}
		b, ok := v.BulkStringValue()
		if !ok {
			return nil, unexpectedShape(v)
		}
		return []HashFieldSample{{Field: string(b)}}, nil
	}

	if v.IsNull() {
		return nil, nil
	}
	if v.Kind != resp.KindArray {
		return nil, unexpectedShape(v)
	}
	if withValues {
		if len(v.Array)%2 != 0 {
			return nil, ClientErrorf("Unexpected response: odd-length field/value array")
		}
		out := make([]HashFieldSample, 0, len(v.Array)/2)
		for i := 0; i+1 < len(v.Array); i += 2 {
			field, ok := v.Array[i].BulkStringValue()
			if !ok {
				return nil, unexpectedShape(v.Array[i])
			}
			value, ok := v.Array[i+1].BulkStringValue()
			if !ok {
				return nil, unexpectedShape(v.Array[i+1])
			}
			out = append(out, HashFieldSample{Field: string(field), Value: string(value), HasValue: true})
		}
		return out, nil
	}

	out := make([]HashFieldSample, len(v.Array))
	for i, e := range v.Array {
		field, ok := e.BulkStringValue()
		if !ok {
			return nil, unexpectedShape(e)
		}
		out[i] = HashFieldSample{Field: string(field)}
	}
	return out, nil
}

// HScan walks the hash at key starting from cursor. A nil returned
// cursor means the scan is complete (the server replied with cursor
// "0"); otherwise it is passed back in as the next call's cursor.
func (c *Connection) HScan(key, cursor string, opts *HscanOpts) (*string, []HashFieldSample, error) {
	args := []string{"HSCAN", key, cursor}
	noValues := opts != nil && opts.NoValues
	if opts != nil {
		if opts.Match != nil {
			args = append(args, "MATCH", *opts.Match)
		}
		if opts.Count != nil {
			args = append(args, "COUNT", strconv.FormatInt(*opts.Count, 10))
		}
		if opts.NoValues {
			args = append(args, "NOVALUES")
		}
	}

	v, err := c.dispatch(args...)
	if err != nil {
		return nil, nil, err
	}
	if v.Kind != resp.KindArray || len(v.Array) != 2 {
		return nil, nil, unexpectedShape(v)
	}

	cursorBulk, ok := v.Array[0].BulkStringValue()
	if !ok {
		return nil, nil, unexpectedShape(v.Array[0])
	}
	var nextCursor *string
	if string(cursorBulk) != "0" {
		s := string(cursorBulk)
		nextCursor = &s
	}

	elements := v.Array[1]
	if elements.Kind != resp.KindArray {
		return nil, nil, unexpectedShape(elements)
	}

	if noValues {
		out := make([]HashFieldSample, len(elements.Array))
		for i, e := range elements.Array {
			field, ok := e.BulkStringValue()
			if !ok {
				return nil, nil, unexpectedShape(e)
			}
			out[i] = HashFieldSample{Field: string(field)}
		}
		return nextCursor, out, nil
	}

	if len(elements.Array)%2 != 0 {
		return nil, nil, ClientErrorf("Unexpected response: odd-length field/value array")
	}
	out := make([]HashFieldSample, 0, len(elements.Array)/2)
	for i := 0; i+1 < len(elements.Array); i += 2 {
		field, ok := elements.Array[i].BulkStringValue()
		if !ok {
			return nil, nil, unexpectedShape(elements.Array[i])
		}
		value, ok := elements.Array[i+1].BulkStringValue()
		if !ok {
			return nil, nil, unexpectedShape(elements.Array[i+1])
		}
		out = append(out, HashFieldSample{Field: string(field), Value: string(value), HasValue: true})
	}
	return nextCursor, out, nil
}

// HSet sets field to value in the hash at key. The reply contract is
// strict (spec.md §4.3.4 does not flag HSET for the DEL/HDEL-style
// widening in Open Question 3): any Integer reply other than 1 is a
// KindClient error, so callers who want multi-field semantics should
// use HMSet.
func (c *Connection) HSet(key, field, value string) error {
	v, err := c.dispatch("HSET", key, field, value)
	if err != nil {
		return err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return unexpectedShape(v)
	}
	if n == 1 {
		return nil
	}
	return ClientErrorf("Unexpected response: %d fields set", n)
}

// HSetNX sets field to value only if field does not already exist,
// reporting whether it was newly set.
func (c *Connection) HSetNX(key, field, value string) (bool, error) {
	v, err := c.dispatch("HSETNX", key, field, value)
	if err != nil {
		return false, err
	}
	n, ok := v.IntegerValue()
	if !ok {
		return false, unexpectedShape(v)
	}
	return n != 0, nil
}

// HStrLen returns the byte length of field's value, or 0 if absent.
func (c *Connection) HStrLen(key, field string) (uint64, error) {
	v, err := c.dispatch("HSTRLEN", key, field)
	if err != nil {
		return 0, err
	}
	n, ok := v.IntegerValue()
	if !ok || n < 0 {
		return 0, unexpectedShape(v)
	}
	return uint64(n), nil
}

// HVals returns every value in the hash at key.
func (c *Connection) HVals(key string) ([]string, error) {
	v, err := c.dispatch("HVALS", key)
	if err != nil {
		return nil, err
	}
	return bulkStringsOf(v)
}
