package resp

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxBulkLen is the 512 MiB ceiling spec'd for bulk/aggregate lengths.
const maxBulkLen = 512 * 1024 * 1024

// Decoder decodes a stream of RESP frames from an io.Reader. It wraps
// the reader in a *bufio.Reader and blocks on short reads until a full
// line or a full bulk payload is available — a frame spanning more than
// one TCP segment is handled transparently, there is no fixed-size
// single-read chunk to outgrow.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a Decoder reading from r. If r is already a
// *bufio.Reader it is used directly rather than double-wrapped.
func NewDecoder(r io.Reader) *Decoder {
	if br, ok := r.(*bufio.Reader); ok {
		return &Decoder{r: br}
	}
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads and returns exactly one complete Value, or an error.
// It never returns a partial frame: any error (including a protocol
// violation partway through an aggregate) discards the in-flight frame
// entirely and leaves the underlying stream position indeterminate for
// resuming decode, matching spec.md's contract that a Resp error
// should be treated as terminal for the connection.
func (d *Decoder) Decode() (Value, error) {
	line, err := d.readLine()
	if err != nil {
		return Value{}, err
	}
	if len(line) == 0 {
		return Value{}, protoErrorf("unexpected EOF")
	}
	return d.parseLine(line[0], line[1:])
}

// readLine reads one line up to and including LF, requires at least the
// type byte plus CRLF (length >= 3), and strips the trailing CRLF. A
// bare LF or bare CR is rejected. A read error other than EOF is
// returned as is, not as a *ProtocolError.
func (d *Decoder) readLine() ([]byte, error) {
	line, err := d.r.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			return nil, err
		}
		if len(line) == 0 {
			return nil, protoErrorf("unexpected EOF")
		}
		return nil, protoErrorf("unexpected EOF: %v", err)
	}
	if len(line) < 3 || line[len(line)-2] != '\r' {
		return nil, protoErrorf("invalid CRLF")
	}
	return line[:len(line)-2], nil
}

func (d *Decoder) parseLine(prefix byte, header []byte) (Value, error) {
	switch prefix {
	case prefixSimpleString, prefixError, prefixBigNumber:
		if !utf8.Valid(header) {
			return Value{}, protoErrorf("invalid UTF-8")
		}
	}
	switch prefix {
	case prefixSimpleString:
		return SimpleString(string(header)), nil
	case prefixError:
		return Error(string(header)), nil
	case prefixBigNumber:
		return BigNumber(string(header)), nil
	case prefixInteger:
		n, err := parseInt(header)
		if err != nil {
			return Value{}, err
		}
		return Integer(n), nil
	case prefixBulkString:
		return d.parseBulk(header)
	case prefixBulkError:
		return d.parseBulkError(header)
	case prefixVerbatim:
		return d.parseVerbatim(header)
	case prefixArray:
		return d.parseAggregate(header, KindArray, true)
	case prefixSet:
		return d.parseAggregate(header, KindSet, false)
	case prefixPush:
		return d.parseAggregate(header, KindPush, false)
	case prefixMap:
		return d.parseMap(header)
	case prefixBoolean:
		return d.parseBoolean(header)
	case prefixNull:
		if len(header) != 0 {
			return Value{}, protoErrorf("invalid RESP null")
		}
		return Null(), nil
	case prefixDouble:
		f, err := strconv.ParseFloat(string(header), 64)
		if err != nil {
			return Value{}, protoErrorf("invalid RESP double: %v", err)
		}
		return Double(f), nil
	default:
		return Value{}, protoErrorf("invalid RESP type")
	}
}

func parseInt(header []byte) (int64, error) {
	n, err := strconv.ParseInt(string(header), 10, 64)
	if err != nil {
		return 0, protoErrorf("invalid RESP integer: %v", err)
	}
	return n, nil
}

// readExactly reads n bytes followed by a mandatory CRLF and returns
// the n-byte payload.
func (d *Decoder) readExactly(n int64) ([]byte, error) {
	body := make([]byte, n+2)
	if _, err := io.ReadFull(d.r, body); err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, protoErrorf("unexpected EOF: %v", err)
	}
	if body[n] != '\r' || body[n+1] != '\n' {
		return nil, protoErrorf("invalid CRLF")
	}
	return body[:n], nil
}

func (d *Decoder) parseBulk(header []byte) (Value, error) {
	n, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if n == -1 {
		return Null(), nil
	}
	if n < -1 || n >= maxBulkLen {
		return Value{}, protoErrorf("invalid bulk length %d", n)
	}
	payload, err := d.readExactly(n)
	if err != nil {
		return Value{}, err
	}
	return BulkString(payload), nil
}

func (d *Decoder) parseBulkError(header []byte) (Value, error) {
	n, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if n < 0 || n >= maxBulkLen {
		return Value{}, protoErrorf("invalid bulk error length %d", n)
	}
	payload, err := d.readExactly(n)
	if err != nil {
		return Value{}, err
	}
	return BulkError(payload), nil
}

func (d *Decoder) parseVerbatim(header []byte) (Value, error) {
	n, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if n < 0 || n >= maxBulkLen {
		return Value{}, protoErrorf("invalid verbatim length %d", n)
	}
	payload, err := d.readExactly(n)
	if err != nil {
		return Value{}, err
	}
	s := string(payload)
	idx := strings.IndexByte(s, ':')
	if idx != 3 {
		return Value{}, protoErrorf("verbatim string missing encoding tag")
	}
	return VerbatimString(s[:idx], s[idx+1:]), nil
}

// parseAggregate reads an Array/Set/Push length-prefixed sequence.
// allowNull permits the RESP2 `*-1\r\n` null-array encoding; Set/Push
// have no such special case on the wire.
func (d *Decoder) parseAggregate(header []byte, kind Kind, allowNull bool) (Value, error) {
	n, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if allowNull && n == -1 {
		return Null(), nil
	}
	minLen := int64(0)
	if n < minLen || n >= maxBulkLen {
		return Value{}, protoErrorf("invalid aggregate length %d", n)
	}
	children := make([]Value, n)
	for i := int64(0); i < n; i++ {
		c, err := d.Decode()
		if err != nil {
			return Value{}, err
		}
		children[i] = c
	}
	return Value{Kind: kind, Array: children}, nil
}

func (d *Decoder) parseMap(header []byte) (Value, error) {
	n, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if n < 0 || n >= maxBulkLen {
		return Value{}, protoErrorf("invalid map length %d", n)
	}
	pairs := make([]Pair, n)
	for i := int64(0); i < n; i++ {
		k, err := d.Decode()
		if err != nil {
			return Value{}, err
		}
		v, err := d.Decode()
		if err != nil {
			return Value{}, err
		}
		pairs[i] = Pair{Key: k, Value: v}
	}
	return Value{Kind: KindMap, Map: pairs}, nil
}

func (d *Decoder) parseBoolean(header []byte) (Value, error) {
	if len(header) != 1 {
		return Value{}, protoErrorf("invalid RESP boolean")
	}
	switch header[0] {
	case 't':
		return Boolean(true), nil
	case 'f':
		return Boolean(false), nil
	default:
		return Value{}, protoErrorf("invalid RESP boolean")
	}
}

// Decode is a convenience wrapper for one-shot decoding of a complete
// buffer already in memory.
func Decode(b []byte) (Value, error) {
	return NewDecoder(bufio.NewReader(bytes.NewReader(b))).Decode()
}
