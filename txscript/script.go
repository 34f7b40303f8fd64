package txscript

import (
	"encoding/binary"
	"encoding/hex"
)

// ScriptItem is the sum type the decoder produces: either a bare opcode or
// a fully resolved data push. IsData distinguishes the two cases; an
// opcode's Data is always nil, a data push's Data is never nil (it may be
// empty, e.g. OP_PUSHDATA1 with a zero length). OP_0 decodes as an opcode,
// not as a data push.
type ScriptItem struct {
	Op     opcode
	Data   []byte
	IsData bool
}

// Script is a fully decoded, ordered sequence of items.
type Script []ScriptItem

// Next decodes the single item starting at *pc and advances *pc past it.
// It returns ok == false (with a nil error) at a clean end of buf. Reading
// past the end of buf while resolving a push's length or payload is a
// framing error (ErrBadOpcode): decoding one item never looks beyond what
// that item requires, so this is the only way Next can fail.
func Next(buf []byte, pc *int) (item ScriptItem, ok bool, err error) {
	if *pc >= len(buf) {
		return ScriptItem{}, false, nil
	}

	op := opcodeArray[buf[*pc]]
	start := *pc

	switch {
	case op.value >= OP_DATA_1 && op.value <= OP_DATA_75:
		n := int(op.value)
		dataStart := start + 1
		dataEnd := dataStart + n
		if dataEnd > len(buf) {
			return ScriptItem{}, false, newScriptError(ErrBadOpcode, "opcode %s requires %d bytes past offset %d", op.name, n, start)
		}
		*pc = dataEnd
		return ScriptItem{Op: op, Data: cloneBytes(buf[dataStart:dataEnd]), IsData: true}, true, nil

	case op.value == OP_PUSHDATA1:
		if start+2 > len(buf) {
			return ScriptItem{}, false, newScriptError(ErrBadOpcode, "%s missing length byte at offset %d", op.name, start)
		}
		n := int(buf[start+1])
		dataStart := start + 2
		return readPush(buf, pc, op, start, dataStart, n)

	case op.value == OP_PUSHDATA2:
		if start+3 > len(buf) {
			return ScriptItem{}, false, newScriptError(ErrBadOpcode, "%s missing length bytes at offset %d", op.name, start)
		}
		n := int(binary.LittleEndian.Uint16(buf[start+1 : start+3]))
		dataStart := start + 3
		return readPush(buf, pc, op, start, dataStart, n)

	case op.value == OP_PUSHDATA4:
		if start+5 > len(buf) {
			return ScriptItem{}, false, newScriptError(ErrBadOpcode, "%s missing length bytes at offset %d", op.name, start)
		}
		n := int(binary.LittleEndian.Uint32(buf[start+1 : start+5]))
		dataStart := start + 5
		return readPush(buf, pc, op, start, dataStart, n)

	default:
		*pc = start + 1
		return ScriptItem{Op: op}, true, nil
	}
}

func readPush(buf []byte, pc *int, op opcode, start, dataStart, n int) (ScriptItem, bool, error) {
	dataEnd := dataStart + n
	if n < 0 || dataEnd > len(buf) {
		return ScriptItem{}, false, newScriptError(ErrBadOpcode, "%s requires %d bytes past offset %d", op.name, n, start)
	}
	*pc = dataEnd
	return ScriptItem{Op: op, Data: cloneBytes(buf[dataStart:dataEnd]), IsData: true}, true, nil
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// Parse decodes every item in a script buffer. It is the non-streaming
// convenience wrapper around repeated calls to Next. NewEngine (and so
// Interpret) decodes the whole script with Parse before executing any item,
// so a framing error anywhere in the buffer is reported before execution
// starts.
func Parse(buf []byte) (Script, error) {
	var items Script
	pc := 0
	for {
		item, ok, err := Next(buf, &pc)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items, nil
}

// IsPushOnly reports whether script consists solely of data pushes
// (including OP_0..OP_16 and OP_1NEGATE), the shape required of a
// signature script before it may be treated as pay-to-script-hash input.
func IsPushOnly(script []byte) (bool, error) {
	pc := 0
	for {
		item, ok, err := Next(script, &pc)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		if !item.IsData && !isPushValueOpcode(item.Op.value) {
			return false, nil
		}
	}
}

// DisasmString renders script as a single line of space-separated opcode
// mnemonics and hex-encoded data pushes, useful for logs and debugging.
func DisasmString(script []byte) (string, error) {
	items, err := Parse(script)
	if err != nil {
		return "", err
	}
	var out []byte
	for _, item := range items {
		out = append(out, itemDisasm(item)...)
		out = append(out, ' ')
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return string(out), nil
}

func itemDisasm(item ScriptItem) string {
	if item.IsData {
		return hex.EncodeToString(item.Data)
	}
	return item.Op.name
}
