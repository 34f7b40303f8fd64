package txscript

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interpretHex(t *testing.T, h string, flags ScriptFlags) (bool, error) {
	t.Helper()
	raw, err := hex.DecodeString(h)
	require.NoError(t, err)
	return Interpret(raw, flags, NopVerificationContext{})
}

func TestScenarioOp1(t *testing.T) {
	valid, err := interpretHex(t, "51", StandardFlags)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestScenarioAddEqual(t *testing.T) {
	valid, err := interpretHex(t, "5152935387", StandardFlags)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestScenarioIfWithEmptyStack(t *testing.T) {
	_, err := interpretHex(t, "63", StandardFlags)
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidStackOperation, scriptErr.Code())
}

func TestScenarioIfElseEndif(t *testing.T) {
	valid, err := interpretHex(t, "516300675268", StandardFlags)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestScenarioOpReturn(t *testing.T) {
	_, err := interpretHex(t, "6a", StandardFlags)
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrOpReturn, scriptErr.Code())
}

func TestScenarioTruncatedPushData1(t *testing.T) {
	_, err := interpretHex(t, "4c02ab", StandardFlags)
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrBadOpcode, scriptErr.Code())
}

func TestStackOverflow(t *testing.T) {
	// 1001 repetitions of OP_1 exceeds MAX_STACK_SIZE.
	raw := make([]byte, MaxStackSize+1)
	for i := range raw {
		raw[i] = OP_1
	}
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrStackOverflow, scriptErr.Code())
}

func TestOpCountBound(t *testing.T) {
	raw := make([]byte, MaxOpsPerScript+1)
	for i := range raw {
		raw[i] = OP_NOP
	}
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrOpCount, scriptErr.Code())
}

func TestDisabledOpcodeInsideSkippedBranch(t *testing.T) {
	// OP_0 OP_IF OP_CAT OP_ENDIF: the OP_CAT never executes, but is
	// still rejected because disabled opcodes are checked unconditionally.
	raw := []byte{OP_0, OP_IF, OP_CAT, OP_ENDIF}
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrDisabledOpcode, scriptErr.Code())
}

func TestOversizePushInsideSkippedBranch(t *testing.T) {
	oversize := make([]byte, MaxScriptElementSize+1)
	raw := append([]byte{OP_0, OP_IF, OP_PUSHDATA2}, append(leBytes16(len(oversize)), oversize...)...)
	raw = append(raw, OP_ENDIF)
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrPushSize, scriptErr.Code())
}

func leBytes16(n int) []byte {
	return []byte{byte(n), byte(n >> 8)}
}

func TestOpCountChargedInsideSkippedBranch(t *testing.T) {
	// OP_0 OP_IF <202x OP_NOP> OP_ENDIF: none of the OP_NOPs execute, but
	// the op-count budget is still charged for them.
	raw := []byte{OP_0, OP_IF}
	for i := 0; i < 202; i++ {
		raw = append(raw, OP_NOP)
	}
	raw = append(raw, OP_ENDIF)
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrOpCount, scriptErr.Code())
}

func TestVerifInsideSkippedBranch(t *testing.T) {
	// OP_0 OP_IF OP_VERIF OP_ENDIF: OP_VERIF never executes, but is still
	// rejected because it is unconditionally invalid.
	raw := []byte{OP_0, OP_IF, OP_VERIF, OP_ENDIF}
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidOpcode, scriptErr.Code())
}

func TestUnbalancedConditional(t *testing.T) {
	raw := []byte{OP_1, OP_IF}
	_, err := Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
	scriptErr, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Equal(t, ErrUnbalancedConditional, scriptErr.Code())
}

func TestCleanStackFlag(t *testing.T) {
	// Two truthy items left on the stack: rejected with CleanStack, but
	// would otherwise report the top element's truth value.
	raw := []byte{OP_1, OP_1}
	_, err := Interpret(raw, ScriptVerifyCleanStack, NopVerificationContext{})
	require.Error(t, err)

	valid, err := Interpret(raw, 0, NopVerificationContext{})
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestCheckSigViaVerificationContext(t *testing.T) {
	raw := []byte{OP_1, OP_1, OP_CHECKSIG}
	valid, err := Interpret(raw, StandardFlags, PermissiveVerificationContext{})
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = Interpret(raw, StandardFlags, NopVerificationContext{})
	require.Error(t, err)
}

func TestDisasmScript(t *testing.T) {
	vm, err := NewEngine([]byte{OP_1, OP_DUP}, StandardFlags, nil)
	require.NoError(t, err)
	assert.Equal(t, "OP_1 OP_DUP", vm.DisasmScript())
}
