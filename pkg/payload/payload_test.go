package payload

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func opcodeBytes(t *testing.T, boc string) uint64 {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(boc)
	require.NoError(t, err)
	c, err := cell.FromBOC(raw)
	require.NoError(t, err)
	op, err := c.BeginParse().LoadUInt(32)
	require.NoError(t, err)
	return op
}

func TestEncoder_OpcodesDiffer(t *testing.T) {
	e := New(true)

	contribute, err := e.Contribute()
	require.NoError(t, err)
	refund, err := e.Refund()
	require.NoError(t, err)

	assert.Equal(t, uint64(OpContribute), opcodeBytes(t, contribute))
	assert.Equal(t, uint64(OpRefund), opcodeBytes(t, refund))
	assert.NotEqual(t, opcodeBytes(t, contribute), opcodeBytes(t, refund))
}

func TestEncoder_SameOpcodeTwice(t *testing.T) {
	e := New(true)
	tick := time.UnixMilli(1_700_000_000_000)
	e.nowFn = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	first, err := e.Contribute()
	require.NoError(t, err)
	second, err := e.Contribute()
	require.NoError(t, err)

	assert.Equal(t, opcodeBytes(t, first), opcodeBytes(t, second))
	assert.NotEqual(t, first, second, "nonce differs between calls")

	_, q1, ok1, err := Decode(first)
	require.NoError(t, err)
	_, q2, ok2, err := Decode(second)
	require.NoError(t, err)
	assert.True(t, ok1 && ok2)
	assert.Equal(t, q1+1, q2)
}

func TestEncoder_WithoutNonceIsDeterministic(t *testing.T) {
	e := New(false)

	first, err := e.Refund()
	require.NoError(t, err)
	second, err := e.Refund()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	op, _, hasQueryID, err := Decode(first)
	require.NoError(t, err)
	assert.Equal(t, OpRefund, op)
	assert.False(t, hasQueryID)
}

func TestDecode(t *testing.T) {
	id := uint64(42)
	c, err := Build(OpContribute, &id)
	require.NoError(t, err)

	op, queryID, hasQueryID, err := Decode(base64.StdEncoding.EncodeToString(c.ToBOC()))
	require.NoError(t, err)
	assert.Equal(t, OpContribute, op)
	assert.Equal(t, uint64(42), queryID)
	assert.True(t, hasQueryID)

	unknown, err := Build(Op(0x01020304), nil)
	require.NoError(t, err)
	_, _, _, err = Decode(base64.StdEncoding.EncodeToString(unknown.ToBOC()))
	assert.ErrorIs(t, err, ErrUnknownOp)

	_, _, _, err = Decode("%%%")
	assert.Error(t, err)
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "CONTRIBUTE", OpContribute.String())
	assert.Equal(t, "REFUND", OpRefund.String())
	assert.Equal(t, "0x00000001", Op(1).String())
}
