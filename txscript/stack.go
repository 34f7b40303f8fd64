package txscript

import (
	"fmt"
	"strings"
)

// stack represents a single Bitcoin Script stack of byte strings: either the
// main data stack or the alt stack. Depth accounting against
// MAX_STACK_SIZE is the caller's responsibility (it is combined across both
// stacks), so stack itself only enforces MAX_SCRIPT_ELEMENT_SIZE.
type stack struct {
	stk               [][]byte
	verifyMinimalData bool
}

// Depth returns the number of elements on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// PushByteArray pushes a logical copy of data onto the stack so that later
// in-place mutation (OP_TUCK rearranging, future opcodes) can never alias an
// earlier push.
func (s *stack) PushByteArray(data []byte) error {
	if len(data) > MaxScriptElementSize {
		return newScriptError(ErrPushSize, "element size %d exceeds max of %d", len(data), MaxScriptElementSize)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.stk = append(s.stk, cp)
	return nil
}

// PushInt pushes n encoded as a script number.
func (s *stack) PushInt(n scriptNum) error {
	return s.PushByteArray(n.Bytes())
}

// PushBool pushes SCRIPT_TRUE or SCRIPT_FALSE.
func (s *stack) PushBool(v bool) error {
	return s.PushByteArray(fromBool(v))
}

// PopByteArray pops and returns the top stack element.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt pops the top element and interprets it as a script number.
func (s *stack) PopInt() (scriptNum, error) {
	b, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(b, s.verifyMinimalData)
}

// PopBool pops the top element and interprets it as a boolean.
func (s *stack) PopBool() (bool, error) {
	b, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return AsBool(b), nil
}

// PeekByteArray returns the idx'th item from the top without removing it.
// idx 0 is the top of the stack. The returned slice is the stack's own
// storage, not a copy.
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		return nil, newScriptError(ErrInvalidStackOperation, "index %d out of range for stack of depth %d", idx, sz)
	}
	return s.stk[sz-idx-1], nil
}

// PeekInt returns the idx'th item interpreted as a script number.
func (s *stack) PeekInt(idx int32) (scriptNum, error) {
	b, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(b, s.verifyMinimalData)
}

// PeekBool returns the idx'th item interpreted as a boolean.
func (s *stack) PeekBool(idx int32) (bool, error) {
	b, err := s.PeekByteArray(idx)
	if err != nil {
		return false, err
	}
	return AsBool(b), nil
}

// nipN removes and returns the (idx)'th item from the top of the stack.
func (s *stack) nipN(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		return nil, newScriptError(ErrInvalidStackOperation, "index %d out of range for stack of depth %d", idx, sz)
	}
	pos := sz - idx - 1
	item := s.stk[pos]
	s.stk = append(s.stk[:pos], s.stk[pos+1:]...)
	return item, nil
}

// NipN is the exported-for-opcodes form of nipN: it removes and returns the
// element idx positions from the top (0 = top), used by OP_NIP and OP_ROLL.
func (s *stack) NipN(idx int32) ([]byte, error) {
	return s.nipN(idx)
}

// DropN pops n items off the stack and discards them.
func (s *stack) DropN(n int32) error {
	for ; n > 0; n-- {
		if _, err := s.PopByteArray(); err != nil {
			return err
		}
	}
	return nil
}

// DupN duplicates the top n items, preserving their order.
func (s *stack) DupN(n int32) error {
	if n < 1 {
		return newScriptError(ErrInvalidStackOperation, "invalid dup count %d", n)
	}
	for i := n; i > 0; i-- {
		v, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		if err := s.PushByteArray(v); err != nil {
			return err
		}
	}
	return nil
}

// RotN rotates the top 3n items n places to the left; n == 1 implements
// plain OP_ROT.
func (s *stack) RotN(n int32) error {
	entry := 3*n - 1
	for i := int32(0); i < n; i++ {
		v, err := s.nipN(entry)
		if err != nil {
			return err
		}
		if err := s.PushByteArray(v); err != nil {
			return err
		}
	}
	return nil
}

// SwapN swaps the top n items with the n items below them.
func (s *stack) SwapN(n int32) error {
	for i := int32(0); i < n; i++ {
		v, err := s.nipN(2*n - 1)
		if err != nil {
			return err
		}
		if err := s.PushByteArray(v); err != nil {
			return err
		}
	}
	return nil
}

// OverN copies the n items below the top n items to the top of the stack.
func (s *stack) OverN(n int32) error {
	entry := 2*n - 1
	for i := int32(0); i < n; i++ {
		v, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		if err := s.PushByteArray(v); err != nil {
			return err
		}
	}
	return nil
}

// Tuck copies the top item and inserts it before the second-from-top item.
func (s *stack) Tuck() error {
	v2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	v1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	if err := s.PushByteArray(v2); err != nil {
		return err
	}
	if err := s.PushByteArray(v1); err != nil {
		return err
	}
	return s.PushByteArray(v2)
}

// String dumps the stack top-down for trace logging.
func (s *stack) String() string {
	var b strings.Builder
	for i := len(s.stk) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%02x\n", s.stk[i])
	}
	return b.String()
}
