package txscript

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestNextImplicitPush(t *testing.T) {
	buf := mustHex(t, "02aabb")
	pc := 0
	item, ok, err := Next(buf, &pc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, item.IsData)
	assert.Equal(t, []byte{0xaa, 0xbb}, item.Data)
	assert.Equal(t, len(buf), pc)

	_, ok, err = Next(buf, &pc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextPushData1(t *testing.T) {
	buf := mustHex(t, "4c02aabb")
	pc := 0
	item, ok, err := Next(buf, &pc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0xaa, 0xbb}, item.Data)
	assert.Equal(t, len(buf), pc)
}

func TestNextPushData1Truncated(t *testing.T) {
	buf := mustHex(t, "4c02ab")
	pc := 0
	_, _, err := Next(buf, &pc)
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrBadOpcode, scriptErr.Code())
}

func TestNextPushData2And4(t *testing.T) {
	buf := mustHex(t, "4d0200aabb")
	pc := 0
	item, ok, err := Next(buf, &pc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0xaa, 0xbb}, item.Data)

	buf = mustHex(t, "4e02000000aabb")
	pc = 0
	item, ok, err = Next(buf, &pc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0xaa, 0xbb}, item.Data)
}

func TestNextPlainOpcode(t *testing.T) {
	buf := []byte{OP_DUP}
	pc := 0
	item, ok, err := Next(buf, &pc)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, item.IsData)
	assert.Equal(t, "OP_DUP", item.Op.name)
}

func TestParseTotalityOnValidScript(t *testing.T) {
	buf := mustHex(t, "5152935987")
	items, err := Parse(buf)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestIsPushOnly(t *testing.T) {
	ok, err := IsPushOnly(mustHex(t, "5152"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsPushOnly(mustHex(t, "5193"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDisasmString(t *testing.T) {
	s, err := DisasmString(mustHex(t, "5187"))
	require.NoError(t, err)
	assert.Equal(t, "OP_1 OP_EQUAL", s)
}
