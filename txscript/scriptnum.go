package txscript

// scriptNum is the signed integer type used by every arithmetic opcode.
// Script numbers are stored on the stack as sign-magnitude, little-endian
// byte strings no wider than 4 bytes; arithmetic results are kept as int64
// internally since an operation like OP_ADD can legally overflow a 4-byte
// range and still be pushed back onto the stack, as long as nothing downstream
// re-interprets it as a number without first re-validating its width.
type scriptNum int64

// MaxNumSize is the width, in bytes, a script number must fit in to be a
// legal operand to an arithmetic opcode.
const MaxNumSize = 4

// EncodeNum returns the canonical script-number encoding of n: the
// little-endian bytes of |n|, sign-extended by one byte when the magnitude's
// top bit would otherwise be mistaken for the sign bit, or with the sign bit
// set directly on the top byte otherwise. Zero encodes as the empty slice.
func EncodeNum(n int64) []byte {
	if n == 0 {
		return nil
	}

	negative := n < 0
	abs := n
	if negative {
		abs = -abs
	}

	result := make([]byte, 0, 9)
	for abs > 0 {
		result = append(result, byte(abs&0xff))
		abs >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if negative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if negative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// DecodeNum reverses EncodeNum. It accepts any encoding up to MaxNumSize
// bytes without requiring the encoding to be minimal — see
// ScriptVerifyMinimalData for the consensus-strict variant of this check.
func DecodeNum(b []byte) (int64, error) {
	if len(b) > MaxNumSize {
		return 0, newScriptError(ErrNumberOverflow, "script number %x exceeds %d-byte limit", b, MaxNumSize)
	}
	if len(b) == 0 {
		return 0, nil
	}

	var result int64
	for i, v := range b {
		result |= int64(v) << uint(8*i)
	}

	if b[len(b)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint(8*(len(b)-1)))
		return -result, nil
	}
	return result, nil
}

// checkMinimalDataEncoding reports whether b is the shortest possible
// script-number encoding of its value: the classic test is that the
// most-significant byte (excluding the sign bit) must be non-zero, unless
// that would collide with the sign bit of the preceding byte.
func checkMinimalDataEncoding(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[len(b)-1]&0x7f == 0 {
		if len(b) == 1 || b[len(b)-2]&0x80 == 0 {
			return newScriptError(ErrNumberOverflow, "script number %x is not minimally encoded", b)
		}
	}
	return nil
}

// makeScriptNum interprets b as a script number for use by an opcode,
// optionally enforcing minimal encoding (ScriptVerifyMinimalData).
func makeScriptNum(b []byte, requireMinimal bool) (scriptNum, error) {
	if requireMinimal {
		if err := checkMinimalDataEncoding(b); err != nil {
			return 0, err
		}
	}
	n, err := DecodeNum(b)
	if err != nil {
		return 0, err
	}
	return scriptNum(n), nil
}

func (n scriptNum) Bytes() []byte {
	return EncodeNum(int64(n))
}

func (n scriptNum) Int64() int64 {
	return int64(n)
}

// AsBool treats a raw stack element as a boolean the way Bitcoin Script
// does: any non-zero byte makes it true, except that the negative-zero
// encoding (a string of zero bytes ending in 0x80) is false.
func AsBool(b []byte) bool {
	for i, v := range b {
		if v != 0 {
			if i == len(b)-1 && v == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

func fromBool(v bool) []byte {
	if v {
		return scriptTrue
	}
	return scriptFalse
}

var (
	scriptTrue  = []byte{0x01}
	scriptFalse = []byte{}
)
