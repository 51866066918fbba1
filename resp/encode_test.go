package resp_test

import (
	"math"
	"testing"

	"github.com/componentized/valkey/resp"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDoubleSpecialValuesAreLowercased(t *testing.T) {
	assert.Equal(t, []byte(",inf\r\n"), resp.Encode(resp.Double(math.Inf(1))))
	assert.Equal(t, []byte(",-inf\r\n"), resp.Encode(resp.Double(math.Inf(-1))))
	assert.Equal(t, []byte(",nan\r\n"), resp.Encode(resp.Double(math.NaN())))
	assert.Equal(t, []byte(",3.25\r\n"), resp.Encode(resp.Double(3.25)))
}

func TestEncodeAggregatesEmitCRLFAfterLengthLine(t *testing.T) {
	// Unlike the teacher source this codec is grounded on, every
	// aggregate type emits CRLF right after its length line — including
	// Map/Set/Push, not just Array.
	m := resp.Map(resp.Pair{Key: resp.BulkStringFrom("a"), Value: resp.Integer(1)})
	assert.Equal(t, []byte("%1\r\n$1\r\na\r\n:1\r\n"), resp.Encode(m))

	s := resp.Set(resp.Integer(1), resp.Integer(2))
	assert.Equal(t, []byte("~2\r\n:1\r\n:2\r\n"), resp.Encode(s))

	p := resp.Push(resp.SimpleString("msg"))
	assert.Equal(t, []byte(">1\r\n+msg\r\n"), resp.Encode(p))
}

func TestEncodeVerbatimString(t *testing.T) {
	v := resp.VerbatimString("txt", "hi")
	assert.Equal(t, []byte("=6\r\ntxt:hi\r\n"), resp.Encode(v))
}

func TestEncodeBooleanAndNull(t *testing.T) {
	assert.Equal(t, []byte("#t\r\n"), resp.Encode(resp.Boolean(true)))
	assert.Equal(t, []byte("#f\r\n"), resp.Encode(resp.Boolean(false)))
	assert.Equal(t, []byte("_\r\n"), resp.Encode(resp.Null()))
}
