package txscript

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNumRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 16, 127, 128, -128, 0x50ab, -0x50ab, 1<<31 - 1, -(1<<31 - 1)}
	for _, n := range cases {
		enc := EncodeNum(n)
		dec, err := DecodeNum(enc)
		require.NoError(t, err)
		assert.Equal(t, n, dec, "round trip for %d", n)
	}
}

func TestEncodeNumCanonicity(t *testing.T) {
	assert.Equal(t, []byte(nil), EncodeNum(0))
	assert.Equal(t, []byte{0x10}, EncodeNum(16))
	assert.Equal(t, []byte{0x7f}, EncodeNum(127))
	assert.Equal(t, []byte{0x80, 0x00}, EncodeNum(128))
	assert.Equal(t, []byte{0x80, 0x80}, EncodeNum(-128))
	assert.Equal(t, []byte{0xab, 0xd0}, EncodeNum(-0x50ab))
}

func TestDecodeNumZero(t *testing.T) {
	n, err := DecodeNum(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = DecodeNum([]byte{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestDecodeNumOverflow(t *testing.T) {
	_, err := DecodeNum([]byte{1, 2, 3, 4, 5})
	require.Error(t, err)
	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, ErrNumberOverflow, scriptErr.Code())
}

func TestAsBool(t *testing.T) {
	assert.False(t, AsBool(nil))
	assert.False(t, AsBool([]byte{}))
	assert.False(t, AsBool([]byte{0x80}))
	assert.False(t, AsBool([]byte{0x00, 0x00}))
	assert.True(t, AsBool([]byte{0x01}))
	assert.True(t, AsBool([]byte{0x00, 0x01}))
	assert.False(t, AsBool([]byte{0x00, 0x80}))
}

func TestCheckMinimalDataEncoding(t *testing.T) {
	assert.NoError(t, checkMinimalDataEncoding(nil))
	assert.NoError(t, checkMinimalDataEncoding([]byte{0x01}))
	assert.NoError(t, checkMinimalDataEncoding([]byte{0xff, 0x00}))
	assert.Error(t, checkMinimalDataEncoding([]byte{0x00}))
	assert.Error(t, checkMinimalDataEncoding([]byte{0x00, 0x00}))
}
