package resp_test

import (
	"testing"

	"github.com/componentized/valkey/resp"
	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	assert.True(t, resp.Integer(42).Equal(resp.Integer(42)))
	assert.False(t, resp.Integer(42).Equal(resp.Integer(43)))
	assert.True(t, resp.Null().Equal(resp.Null()))
	assert.False(t, resp.Null().Equal(resp.Integer(0)))

	a := resp.Array(resp.BulkStringFrom("foo"), resp.Integer(42))
	b := resp.Array(resp.BulkStringFrom("foo"), resp.Integer(42))
	c := resp.Array(resp.Integer(42), resp.BulkStringFrom("foo"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "Map/Set/Array ordering is part of structural equality")
}

func TestValueEqualNaN(t *testing.T) {
	nan1 := resp.Double(nan())
	nan2 := resp.Double(nan())
	assert.True(t, nan1.Equal(nan2))
}

func nan() float64 {
	var zero float64
	return zero / zero
}
