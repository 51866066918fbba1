// Package resp implements the RESP2/RESP3 wire protocol as a pure
// bytes <-> Value codec. It does no I/O; see the transport and root
// valkey packages for the TCP connection and command dispatcher built
// on top of it.
package resp

import "fmt"

// Kind tags the concrete RESP type a Value holds.
type Kind int

const (
	KindSimpleString Kind = iota
	KindError
	KindInteger
	KindBulkString
	KindArray
	KindNull
	KindBoolean
	KindDouble
	KindBigNumber
	KindBulkError
	KindVerbatimString
	KindMap
	KindSet
	KindPush
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "SimpleString"
	case KindError:
		return "Error"
	case KindInteger:
		return "Integer"
	case KindBulkString:
		return "BulkString"
	case KindArray:
		return "Array"
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindDouble:
		return "Double"
	case KindBigNumber:
		return "BigNumber"
	case KindBulkError:
		return "BulkError"
	case KindVerbatimString:
		return "VerbatimString"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	case KindPush:
		return "Push"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pair is one key/value entry of a Map Value. Order is preserved as
// decoded; Map equality is sequence equality, not set equality.
type Pair struct {
	Key   Value
	Value Value
}

// VerbatimText is the (encoding, payload) pair a VerbatimString carries.
// Encoding is always 3 characters on the wire (e.g. "txt", "mkd").
type VerbatimText struct {
	Encoding string
	Text     string
}

// Value is a directly recursive tagged union covering every RESP2/RESP3
// type. Only the fields relevant to Kind are meaningful; the zero value
// of the others is ignored. Aggregate children are held directly rather
// than re-serialized to bytes, so encoding a decoded aggregate does not
// pay a re-encode-from-scratch pass for its children.
type Value struct {
	Kind Kind

	Str      string // SimpleString, Error, BigNumber payload
	Int      int64  // Integer
	Bulk     []byte // BulkString, BulkError payload
	Bool     bool   // Boolean
	Double   float64
	Verbatim VerbatimText
	Array    []Value // Array, Set, Push children, in order
	Map      []Pair  // Map pairs, in order
}

func SimpleString(s string) Value { return Value{Kind: KindSimpleString, Str: s} }
func Error(s string) Value        { return Value{Kind: KindError, Str: s} }
func Integer(n int64) Value       { return Value{Kind: KindInteger, Int: n} }
func BulkString(b []byte) Value   { return Value{Kind: KindBulkString, Bulk: b} }
func BulkStringFrom(s string) Value {
	return Value{Kind: KindBulkString, Bulk: []byte(s)}
}
func Null() Value           { return Value{Kind: KindNull} }
func Boolean(b bool) Value  { return Value{Kind: KindBoolean, Bool: b} }
func Double(f float64) Value { return Value{Kind: KindDouble, Double: f} }
func BigNumber(s string) Value {
	return Value{Kind: KindBigNumber, Str: s}
}
func BulkError(b []byte) Value { return Value{Kind: KindBulkError, Bulk: b} }
func VerbatimString(encoding, text string) Value {
	return Value{Kind: KindVerbatimString, Verbatim: VerbatimText{Encoding: encoding, Text: text}}
}
func Array(vs ...Value) Value { return Value{Kind: KindArray, Array: vs} }
func Set(vs ...Value) Value   { return Value{Kind: KindSet, Array: vs} }
func Push(vs ...Value) Value  { return Value{Kind: KindPush, Array: vs} }
func Map(pairs ...Pair) Value { return Value{Kind: KindMap, Map: pairs} }

// ArrayOfBulkStrings builds the Array-of-BulkString shape every
// client-originated command is encoded as (spec §6: "Client-originated
// commands are always encoded as an Array of BulkStrings").
func ArrayOfBulkStrings(args ...string) Value {
	vs := make([]Value, len(args))
	for i, a := range args {
		vs[i] = BulkStringFrom(a)
	}
	return Value{Kind: KindArray, Array: vs}
}

// IsNull reports whether v is the Null value (RESP3 `_`, or either of
// the RESP2 `$-1`/`*-1` encodings, all of which decode to this Kind).
func (v Value) IsNull() bool { return v.Kind == KindNull }

// BulkStringValue returns the payload and true if v is a non-null
// BulkString.
func (v Value) BulkStringValue() ([]byte, bool) {
	if v.Kind != KindBulkString {
		return nil, false
	}
	return v.Bulk, true
}

// IntegerValue returns the payload and true if v is an Integer.
func (v Value) IntegerValue() (int64, bool) {
	if v.Kind != KindInteger {
		return 0, false
	}
	return v.Int, true
}

// Equal reports structural equality: same Kind, same payload, and for
// aggregates the same children in the same order (Map and Set ordering
// is preserved as decoded, not normalized).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindSimpleString, KindError, KindBigNumber:
		return v.Str == other.Str
	case KindInteger:
		return v.Int == other.Int
	case KindBulkString, KindBulkError:
		return bytesEqual(v.Bulk, other.Bulk)
	case KindNull:
		return true
	case KindBoolean:
		return v.Bool == other.Bool
	case KindDouble:
		return doubleEqual(v.Double, other.Double)
	case KindVerbatimString:
		return v.Verbatim == other.Verbatim
	case KindArray, KindSet, KindPush:
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for i := range v.Map {
			if !v.Map[i].Key.Equal(other.Map[i].Key) || !v.Map[i].Value.Equal(other.Map[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func doubleEqual(a, b float64) bool {
	if a != a && b != b { // both NaN
		return true
	}
	return a == b
}
