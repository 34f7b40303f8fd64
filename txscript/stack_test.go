package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPopByteArray(t *testing.T) {
	var s stack
	require.NoError(t, s.PushByteArray([]byte{1, 2, 3}))
	assert.EqualValues(t, 1, s.Depth())

	v, err := s.PopByteArray()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)
	assert.EqualValues(t, 0, s.Depth())
}

func TestStackPushByteArrayTooLarge(t *testing.T) {
	var s stack
	err := s.PushByteArray(make([]byte, MaxScriptElementSize+1))
	require.Error(t, err)
	scriptErr := err.(*ScriptError)
	assert.Equal(t, ErrPushSize, scriptErr.Code())
}

func TestStackDupN(t *testing.T) {
	var s stack
	require.NoError(t, s.PushByteArray([]byte{1}))
	require.NoError(t, s.PushByteArray([]byte{2}))
	require.NoError(t, s.DupN(2))
	assert.EqualValues(t, 4, s.Depth())

	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{2}, top)
	second, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{1}, second)
}

func TestStackRotN(t *testing.T) {
	var s stack
	require.NoError(t, s.PushByteArray([]byte{1}))
	require.NoError(t, s.PushByteArray([]byte{2}))
	require.NoError(t, s.PushByteArray([]byte{3}))
	require.NoError(t, s.RotN(1))

	// 1 2 3 -> 2 3 1
	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{1}, top)
	second, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{3}, second)
	third, _ := s.PeekByteArray(2)
	assert.Equal(t, []byte{2}, third)
}

func TestStackSwapN(t *testing.T) {
	var s stack
	require.NoError(t, s.PushByteArray([]byte{1}))
	require.NoError(t, s.PushByteArray([]byte{2}))
	require.NoError(t, s.SwapN(1))

	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{1}, top)
	second, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{2}, second)
}

func TestStackTuck(t *testing.T) {
	var s stack
	require.NoError(t, s.PushByteArray([]byte{1}))
	require.NoError(t, s.PushByteArray([]byte{2}))
	require.NoError(t, s.Tuck())

	assert.EqualValues(t, 3, s.Depth())
	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{2}, top)
	second, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{1}, second)
	third, _ := s.PeekByteArray(2)
	assert.Equal(t, []byte{2}, third)
}

func TestStackUnderflow(t *testing.T) {
	var s stack
	_, err := s.PopByteArray()
	require.Error(t, err)
	scriptErr := err.(*ScriptError)
	assert.Equal(t, ErrInvalidStackOperation, scriptErr.Code())
}

func TestPushByteArrayCopiesData(t *testing.T) {
	var s stack
	data := []byte{1, 2, 3}
	require.NoError(t, s.PushByteArray(data))
	data[0] = 0xff
	v, _ := s.PeekByteArray(0)
	assert.Equal(t, byte(1), v[0], "push must copy, not alias, the source slice")
}
