package valkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHSetAcceptsOnlyIntegerOne covers the success half of spec.md §8
// scenario 4: HSET k f v succeeds on Integer(1). The rejection of other
// integer replies is checked by TestHSetRejectsUnexpectedInteger.
func TestHSetAcceptsOnlyIntegerOne(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(":1\r\n"))

	require.NoError(t, c.HSet("k", "f", "v"))
}

func TestHSetRejectsUnexpectedInteger(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(":0\r\n"))

	err := c.HSet("k", "f", "v")
	require.Error(t, err)
	require.True(t, IsKind(err, KindClient))
}

// TestHScanLiteralScenario matches spec.md §8 scenario 5's literal byte
// sequence: HSCAN h 0 returns cursor "0" (scan complete, nil returned)
// and two field/value pairs.
func TestHScanLiteralScenario(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(
		"*2\r\n$1\r\n0\r\n*4\r\n$1\r\na\r\n$1\r\n1\r\n$1\r\nb\r\n$1\r\n2\r\n"))

	cursor, entries, err := c.HScan("h", "0", nil)
	require.NoError(t, err)
	require.Nil(t, cursor)
	require.Equal(t, []HashFieldSample{
		{Field: "a", Value: "1", HasValue: true},
		{Field: "b", Value: "2", HasValue: true},
	}, entries)
}

func TestHScanContinuesWithNonZeroCursor(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(
		"*2\r\n$2\r\n17\r\n*0\r\n"))

	cursor, entries, err := c.HScan("h", "0", nil)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	require.Equal(t, "17", *cursor)
	require.Empty(t, entries)
}

func TestHScanNoValues(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(
		"*2\r\n$1\r\n0\r\n*2\r\n$1\r\na\r\n$1\r\nb\r\n"))

	_, entries, err := c.HScan("h", "0", &HscanOpts{NoValues: true})
	require.NoError(t, err)
	require.Equal(t, []HashFieldSample{{Field: "a"}, {Field: "b"}}, entries)
}

func TestHGetAllNormalizesRESP2VsRESP3(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(
		"%2\r\n$1\r\na\r\n$1\r\n1\r\n$1\r\nb\r\n$1\r\n2\r\n"))

	got, err := c.HGetAll("h")
	require.NoError(t, err)
	require.Equal(t, []HashField{{Field: "a", Value: "1"}, {Field: "b", Value: "2"}}, got)

	serveOnce(t, server, []byte(
		"*4\r\n$1\r\na\r\n$1\r\n1\r\n$1\r\nb\r\n$1\r\n2\r\n"))

	got2, err := c.HGetAll("h")
	require.NoError(t, err)
	require.Equal(t, got, got2)
}

func TestHDelWidenedVariadic(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(":2\r\n"))

	n, err := c.HDel("h", "a", "b", "c")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestHRandFieldNoCountReturnsSingleOptionalField(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte("$1\r\na\r\n"))

	got, err := c.HRandField("h", nil)
	require.NoError(t, err)
	require.Equal(t, []HashFieldSample{{Field: "a"}}, got)
}

func TestHRandFieldCountWithValues(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte(
		"*4\r\n$1\r\na\r\n$1\r\n1\r\n$1\r\nb\r\n$1\r\n2\r\n"))

	got, err := c.HRandField("h", &HrandfieldOpts{Count: Int64Ptr(2), WithValues: true})
	require.NoError(t, err)
	require.Equal(t, []HashFieldSample{
		{Field: "a", Value: "1", HasValue: true},
		{Field: "b", Value: "2", HasValue: true},
	}, got)
}

func TestHRandFieldWithValuesRequiresCount(t *testing.T) {
	c, _ := pipeConnection(t)
	_, err := c.HRandField("h", &HrandfieldOpts{WithValues: true})
	require.Error(t, err)
	require.True(t, IsKind(err, KindClient))
}

func TestHMGetReportsAbsentFieldsAsNil(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte("*2\r\n$1\r\n1\r\n_\r\n"))

	got, err := c.HMGet("h", "present", "absent")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0])
	require.Equal(t, "1", *got[0])
	require.Nil(t, got[1])
}

func TestHIncrByFloatReturnsServerTextVerbatim(t *testing.T) {
	c, server := pipeConnection(t)
	defer server.Close()
	serveOnce(t, server, []byte("$4\r\n10.5\r\n"))

	got, err := c.HIncrByFloat("h", "f", 0.1)
	require.NoError(t, err)
	require.Equal(t, "10.5", got)
}
