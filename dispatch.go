package valkey

import (
	"github.com/componentized/valkey/resp"
)

// KV is one normalized key/value pair from a reply that can arrive
// either as a RESP2 flat interleaved array or a RESP3 Map (HELLO,
// HGETALL).
type KV struct {
	Key   string
	Value resp.Value
}

// unexpectedShape builds the KindClient error the uniform dispatcher
// (spec.md §4.3.4) returns when a reply's shape doesn't match any of a
// command's declared expected set.
func unexpectedShape(v resp.Value) *Error {
	return ClientErrorf("Unexpected response type: %s", v.Kind)
}

// expectOK checks for the literal SimpleString("OK") reply shared by
// several commands (SET, HMSET, AUTH, ACL SETUSER, ...).
func expectOK(v resp.Value) error {
	if v.Kind == resp.KindSimpleString && v.Str == "OK" {
		return nil
	}
	return unexpectedShape(v)
}

// bulkStringsOf reads an Array-of-BulkString reply into a []string
// (KEYS, HKEYS, HVALS).
func bulkStringsOf(v resp.Value) ([]string, error) {
	if v.Kind != resp.KindArray {
		return nil, unexpectedShape(v)
	}
	out := make([]string, len(v.Array))
	for i, e := range v.Array {
		b, ok := e.BulkStringValue()
		if !ok {
			return nil, unexpectedShape(e)
		}
		out[i] = string(b)
	}
	return out, nil
}

// normalizePairs normalizes a RESP2 flat interleaved Array or a RESP3
// Map into an ordered list of (string key, Value) pairs. Keys must
// decode to bulk strings; anything else is a KindClient error
// (spec.md §4.3.2, §4.3.4's HGETALL row).
func normalizePairs(v resp.Value) ([]KV, error) {
	switch v.Kind {
	case resp.KindMap:
		pairs := make([]KV, len(v.Map))
		for i, p := range v.Map {
			key, ok := p.Key.BulkStringValue()
			if !ok {
				return nil, ClientErrorf("Unexpected key type: %s", p.Key.Kind)
			}
			pairs[i] = KV{Key: string(key), Value: p.Value}
		}
		return pairs, nil
	case resp.KindArray:
		if len(v.Array)%2 != 0 {
			return nil, ClientErrorf("Unexpected response: odd-length key/value array")
		}
		pairs := make([]KV, 0, len(v.Array)/2)
		for i := 0; i+1 < len(v.Array); i += 2 {
			key, ok := v.Array[i].BulkStringValue()
			if !ok {
				return nil, ClientErrorf("Unexpected key type: %s", v.Array[i].Kind)
			}
			pairs = append(pairs, KV{Key: string(key), Value: v.Array[i+1]})
		}
		return pairs, nil
	default:
		return nil, unexpectedShape(v)
	}
}
