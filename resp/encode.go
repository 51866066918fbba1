package resp

import (
	"bytes"
	"math"
	"strconv"
)

const crlf = "\r\n"

// prefix bytes for each RESP type, per the RESP2/RESP3 wire spec.
const (
	prefixSimpleString = '+'
	prefixError         = '-'
	prefixInteger       = ':'
	prefixBulkString    = '$'
	prefixArray         = '*'
	prefixNull          = '_'
	prefixBoolean       = '#'
	prefixDouble        = ','
	prefixBigNumber     = '('
	prefixBulkError     = '!'
	prefixVerbatim      = '='
	prefixMap           = '%'
	prefixSet           = '~'
	prefixPush          = '>'
)

// Encode serializes v into its RESP wire form. Encode is total: every
// Value constructible through this package's constructors produces
// valid bytes.
func Encode(v Value) []byte {
	var buf bytes.Buffer
	encodeInto(&buf, v)
	return buf.Bytes()
}

func encodeInto(buf *bytes.Buffer, v Value) {
	switch v.Kind {
	case KindSimpleString:
		buf.WriteByte(prefixSimpleString)
		buf.WriteString(v.Str)
		buf.WriteString(crlf)
	case KindError:
		buf.WriteByte(prefixError)
		buf.WriteString(v.Str)
		buf.WriteString(crlf)
	case KindBigNumber:
		buf.WriteByte(prefixBigNumber)
		buf.WriteString(v.Str)
		buf.WriteString(crlf)
	case KindInteger:
		buf.WriteByte(prefixInteger)
		buf.WriteString(strconv.FormatInt(v.Int, 10))
		buf.WriteString(crlf)
	case KindBulkString:
		encodeBulk(buf, prefixBulkString, v.Bulk)
	case KindBulkError:
		encodeBulk(buf, prefixBulkError, v.Bulk)
	case KindVerbatimString:
		payload := append([]byte(v.Verbatim.Encoding+":"), []byte(v.Verbatim.Text)...)
		encodeBulk(buf, prefixVerbatim, payload)
	case KindDouble:
		buf.WriteByte(prefixDouble)
		buf.WriteString(formatDouble(v.Double))
		buf.WriteString(crlf)
	case KindBoolean:
		buf.WriteByte(prefixBoolean)
		if v.Bool {
			buf.WriteByte('t')
		} else {
			buf.WriteByte('f')
		}
		buf.WriteString(crlf)
	case KindNull:
		buf.WriteByte(prefixNull)
		buf.WriteString(crlf)
	case KindArray:
		encodeAggregate(buf, prefixArray, v.Array)
	case KindSet:
		encodeAggregate(buf, prefixSet, v.Array)
	case KindPush:
		encodeAggregate(buf, prefixPush, v.Array)
	case KindMap:
		buf.WriteByte(prefixMap)
		buf.WriteString(strconv.Itoa(len(v.Map)))
		buf.WriteString(crlf)
		for _, p := range v.Map {
			encodeInto(buf, p.Key)
			encodeInto(buf, p.Value)
		}
	}
}

func encodeBulk(buf *bytes.Buffer, prefix byte, payload []byte) {
	buf.WriteByte(prefix)
	buf.WriteString(strconv.Itoa(len(payload)))
	buf.WriteString(crlf)
	buf.Write(payload)
	buf.WriteString(crlf)
}

// encodeAggregate emits the length line followed by CRLF and then each
// child in order, for Array/Set/Push. Map is encoded by encodeInto's
// own branch with the same CRLF after its length line. Unlike the
// aggregate encoder this codec's teacher implementation was derived
// from, Set/Push/Map get that CRLF too (see DESIGN.md: the source's
// omission there is a known bug, not a feature of RESP3).
func encodeAggregate(buf *bytes.Buffer, prefix byte, children []Value) {
	buf.WriteByte(prefix)
	buf.WriteString(strconv.Itoa(len(children)))
	buf.WriteString(crlf)
	for _, c := range children {
		encodeInto(buf, c)
	}
}

// formatDouble renders f as the lowercased textual form RESP3 expects:
// "inf"/"-inf"/"nan" for the special values, and Go's shortest decimal
// round-trip form (lowercased, since Go's exponent letter is already
// lowercase but "Inf"/"NaN" are not) otherwise.
func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
