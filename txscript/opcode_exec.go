package txscript

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// executeOpcode runs the single non-push opcode op against vm's stacks and
// verification context. By the time this is called, disabled, reserved and
// unconditionally-invalid opcodes have already been rejected and the
// opcode's own op-count budget has already been charged.
func (vm *Engine) executeOpcode(op byte) error {
	switch op {
	case OP_0:
		return vm.dstack.PushByteArray(nil)
	case OP_1NEGATE:
		return vm.dstack.PushInt(scriptNum(-1))
	case OP_1, OP_2, OP_3, OP_4, OP_5, OP_6, OP_7, OP_8, OP_9, OP_10,
		OP_11, OP_12, OP_13, OP_14, OP_15, OP_16:
		return vm.dstack.PushInt(scriptNum(int64(op) - int64(OP_1) + 1))

	case OP_NOP:
		return nil
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		if vm.flags.has(ScriptVerifyDiscourageUpgradableNops) {
			return newScriptError(ErrBadOpcode, "OP_NOP%d reserved for future use", op-OP_NOP1+1)
		}
		return nil

	case OP_VERIFY:
		return vm.opVerify()
	case OP_RETURN:
		return newScriptError(ErrOpReturn, "OP_RETURN encountered")

	case OP_TOALTSTACK:
		v, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		return vm.astack.PushByteArray(v)
	case OP_FROMALTSTACK:
		v, err := vm.astack.PopByteArray()
		if err != nil {
			return wrapScriptError(ErrInvalidAltStackOperation, err)
		}
		return vm.dstack.PushByteArray(v)

	case OP_2DROP:
		return vm.dstack.DropN(2)
	case OP_2DUP:
		return vm.dstack.DupN(2)
	case OP_3DUP:
		return vm.dstack.DupN(3)
	case OP_2OVER:
		return vm.dstack.OverN(2)
	case OP_2ROT:
		return vm.dstack.RotN(2)
	case OP_2SWAP:
		return vm.dstack.SwapN(2)
	case OP_IFDUP:
		return vm.opIfDup()
	case OP_DEPTH:
		return vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	case OP_DROP:
		return vm.dstack.DropN(1)
	case OP_DUP:
		return vm.dstack.DupN(1)
	case OP_NIP:
		_, err := vm.dstack.NipN(1)
		return err
	case OP_OVER:
		return vm.dstack.OverN(1)
	case OP_PICK, OP_ROLL:
		return vm.opPickRoll(op)
	case OP_ROT:
		return vm.dstack.RotN(1)
	case OP_SWAP:
		return vm.dstack.SwapN(1)
	case OP_TUCK:
		return vm.dstack.Tuck()

	case OP_SIZE:
		return vm.opSize()

	case OP_EQUAL:
		return vm.opEqual(false)
	case OP_EQUALVERIFY:
		return vm.opEqual(true)

	case OP_1ADD:
		return vm.opUnaryNum(func(n int64) int64 { return n + 1 })
	case OP_1SUB:
		return vm.opUnaryNum(func(n int64) int64 { return n - 1 })
	case OP_NEGATE:
		return vm.opUnaryNum(func(n int64) int64 { return -n })
	case OP_ABS:
		return vm.opUnaryNum(func(n int64) int64 {
			if n < 0 {
				return -n
			}
			return n
		})
	case OP_NOT:
		return vm.opUnaryNum(func(n int64) int64 {
			if n == 0 {
				return 1
			}
			return 0
		})
	case OP_0NOTEQUAL:
		return vm.opUnaryNum(func(n int64) int64 {
			if n != 0 {
				return 1
			}
			return 0
		})

	case OP_ADD:
		return vm.opBinaryNum(func(a, b int64) int64 { return a + b })
	case OP_SUB:
		return vm.opBinaryNum(func(a, b int64) int64 { return a - b })

	case OP_BOOLAND:
		return vm.opBinaryBool(func(a, b int64) bool { return a != 0 && b != 0 })
	case OP_BOOLOR:
		return vm.opBinaryBool(func(a, b int64) bool { return a != 0 || b != 0 })
	case OP_NUMEQUAL:
		return vm.opBinaryBool(func(a, b int64) bool { return a == b })
	case OP_NUMEQUALVERIFY:
		return vm.opNumEqualVerify()
	case OP_NUMNOTEQUAL:
		return vm.opBinaryBool(func(a, b int64) bool { return a != b })
	case OP_LESSTHAN:
		return vm.opBinaryBool(func(a, b int64) bool { return a < b })
	case OP_GREATERTHAN:
		return vm.opBinaryBool(func(a, b int64) bool { return a > b })
	case OP_LESSTHANOREQUAL:
		return vm.opBinaryBool(func(a, b int64) bool { return a <= b })
	case OP_GREATERTHANOREQUAL:
		return vm.opBinaryBool(func(a, b int64) bool { return a >= b })
	case OP_MIN:
		return vm.opBinaryNum(func(a, b int64) int64 {
			if a < b {
				return a
			}
			return b
		})
	case OP_MAX:
		return vm.opBinaryNum(func(a, b int64) int64 {
			if a > b {
				return a
			}
			return b
		})
	case OP_WITHIN:
		return vm.opWithin()

	case OP_RIPEMD160:
		return vm.opHash(func(b []byte) []byte {
			h := ripemd160.New()
			h.Write(b)
			return h.Sum(nil)
		})
	case OP_SHA1:
		return vm.opHash(func(b []byte) []byte {
			h := sha1.Sum(b)
			return h[:]
		})
	case OP_SHA256:
		return vm.opHash(func(b []byte) []byte {
			h := sha256.Sum256(b)
			return h[:]
		})
	case OP_HASH160:
		return vm.opHash(func(b []byte) []byte {
			sha := sha256.Sum256(b)
			r := ripemd160.New()
			r.Write(sha[:])
			return r.Sum(nil)
		})
	case OP_HASH256:
		return vm.opHash(func(b []byte) []byte {
			h := hash256(b)
			return h[:]
		})
	case OP_CODESEPARATOR:
		return nil

	case OP_CHECKSIG:
		return vm.opCheckSig(false)
	case OP_CHECKSIGVERIFY:
		return vm.opCheckSig(true)
	case OP_CHECKMULTISIG:
		return vm.opCheckMultiSig(false)
	case OP_CHECKMULTISIGVERIFY:
		return vm.opCheckMultiSig(true)

	case OP_CHECKLOCKTIMEVERIFY:
		return vm.opCheckLockTimeVerify()
	case OP_CHECKSEQUENCEVERIFY:
		return vm.opCheckSequenceVerify()

	default:
		return newScriptError(ErrBadOpcode, "opcode 0x%02x has no evaluator semantics", op)
	}
}

func (vm *Engine) opVerify() error {
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return newScriptError(ErrVerify, "OP_VERIFY failed")
	}
	return nil
}

func (vm *Engine) opIfDup() error {
	v, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if AsBool(v) {
		return vm.dstack.PushByteArray(v)
	}
	return nil
}

func (vm *Engine) opPickRoll(op byte) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	idx := n.Int64()
	if idx < 0 || idx >= int64(vm.dstack.Depth()) {
		return newScriptError(ErrInvalidStackOperation, "index %d out of range", idx)
	}
	if op == OP_PICK {
		v, err := vm.dstack.PeekByteArray(int32(idx))
		if err != nil {
			return err
		}
		return vm.dstack.PushByteArray(v)
	}
	v, err := vm.dstack.NipN(int32(idx))
	if err != nil {
		return err
	}
	return vm.dstack.PushByteArray(v)
}

func (vm *Engine) opSize() error {
	v, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	return vm.dstack.PushInt(scriptNum(len(v)))
}

func (vm *Engine) opEqual(verify bool) error {
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	equal := bytes.Equal(a, b)
	if verify {
		if !equal {
			return newScriptError(ErrEqualVerify, "OP_EQUALVERIFY failed")
		}
		return nil
	}
	return vm.dstack.PushBool(equal)
}

func (vm *Engine) opUnaryNum(f func(int64) int64) error {
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PushInt(scriptNum(f(n.Int64())))
}

func (vm *Engine) opBinaryNum(f func(a, b int64) int64) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PushInt(scriptNum(f(a.Int64(), b.Int64())))
}

func (vm *Engine) opBinaryBool(f func(a, b int64) bool) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	return vm.dstack.PushBool(f(a.Int64(), b.Int64()))
}

func (vm *Engine) opNumEqualVerify() error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a.Int64() != b.Int64() {
		return newScriptError(ErrNumEqualVerify, "OP_NUMEQUALVERIFY failed")
	}
	return nil
}

// opWithin implements OP_WITHIN. ScriptVerifyNumericWithin selects
// numeric comparison of the three operands as script numbers; without it
// the operands are compared as raw byte strings lexicographically, which
// is how the original distillation of this opcode behaves.
func (vm *Engine) opWithin() error {
	maxBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	minBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	xBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if vm.flags.has(ScriptVerifyNumericWithin) {
		max, err := makeScriptNum(maxBytes, vm.dstack.verifyMinimalData)
		if err != nil {
			return err
		}
		min, err := makeScriptNum(minBytes, vm.dstack.verifyMinimalData)
		if err != nil {
			return err
		}
		x, err := makeScriptNum(xBytes, vm.dstack.verifyMinimalData)
		if err != nil {
			return err
		}
		within := x.Int64() >= min.Int64() && x.Int64() < max.Int64()
		return vm.dstack.PushBool(within)
	}

	within := bytes.Compare(xBytes, minBytes) >= 0 && bytes.Compare(xBytes, maxBytes) < 0
	return vm.dstack.PushBool(within)
}

func (vm *Engine) opHash(f func([]byte) []byte) error {
	v, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	return vm.dstack.PushByteArray(f(v))
}

func (vm *Engine) opCheckSig(verify bool) error {
	pubKey, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	sig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	ok, err := vm.ctx.CheckSig(pubKey, sig)
	if err != nil {
		return err
	}
	if verify {
		if !ok {
			return newScriptError(ErrVerify, "OP_CHECKSIGVERIFY failed")
		}
		return nil
	}
	return vm.dstack.PushBool(ok)
}

// opCheckMultiSig implements the classic m-of-n pattern, including the
// historical off-by-one bug: an extra, unused item is popped below the
// signatures for compatibility with how every other implementation
// consumes the stack.
func (vm *Engine) opCheckMultiSig(verify bool) error {
	numKeys, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	nKeys := numKeys.Int64()
	if nKeys < 0 || nKeys > 20 {
		return newScriptError(ErrInvalidStackOperation, "public key count %d out of range", nKeys)
	}
	pubKeys := make([][]byte, nKeys)
	for i := int64(0); i < nKeys; i++ {
		pubKeys[i], err = vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	numSigs, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	nSigs := numSigs.Int64()
	if nSigs < 0 || nSigs > nKeys {
		return newScriptError(ErrInvalidStackOperation, "signature count %d out of range", nSigs)
	}
	sigs := make([][]byte, nSigs)
	for i := int64(0); i < nSigs; i++ {
		sigs[i], err = vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	// Historical extra-pop quirk: consume and ignore one more item.
	if _, err := vm.dstack.PopByteArray(); err != nil {
		return err
	}

	success := true
	keyIdx := 0
	for _, sig := range sigs {
		matched := false
		for keyIdx < len(pubKeys) {
			ok, err := vm.ctx.CheckSig(pubKeys[keyIdx], sig)
			keyIdx++
			if err != nil {
				return err
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			success = false
			break
		}
	}

	if verify {
		if !success {
			return newScriptError(ErrVerify, "OP_CHECKMULTISIGVERIFY failed")
		}
		return nil
	}
	return vm.dstack.PushBool(success)
}

func (vm *Engine) opCheckLockTimeVerify() error {
	n, err := vm.dstack.PeekInt(0)
	if err != nil {
		return err
	}
	if n.Int64() < 0 {
		return newScriptError(ErrNumberOverflow, "negative locktime %d", n.Int64())
	}
	ok, err := vm.ctx.CheckLockTime(n.Int64())
	if err != nil {
		return err
	}
	if !ok {
		return newScriptError(ErrVerify, "OP_CHECKLOCKTIMEVERIFY failed")
	}
	return nil
}

func (vm *Engine) opCheckSequenceVerify() error {
	n, err := vm.dstack.PeekInt(0)
	if err != nil {
		return err
	}
	if n.Int64() < 0 {
		return newScriptError(ErrNumberOverflow, "negative sequence %d", n.Int64())
	}
	ok, err := vm.ctx.CheckSequence(n.Int64())
	if err != nil {
		return err
	}
	if !ok {
		return newScriptError(ErrVerify, "OP_CHECKSEQUENCEVERIFY failed")
	}
	return nil
}
