package txscript

// Consensus-level resource bounds. None of these are configurable: they are
// fixed by the Bitcoin Script wire format and are enforced unconditionally.
const (
	// MaxScriptSize is the maximum number of bytes a single script may
	// occupy before Interpret refuses to even decode it.
	MaxScriptSize = 10000

	// MaxStackSize is the maximum combined number of elements the main
	// stack and the alt stack may hold at any point during execution.
	MaxStackSize = 1000

	// MaxOpsPerScript is the maximum number of non-push opcodes
	// (opcodes with a value greater than OP_16) a script may execute.
	MaxOpsPerScript = 201

	// MaxScriptElementSize is the maximum size, in bytes, of any single
	// value pushed onto either stack.
	MaxScriptElementSize = 520
)

// ScriptFlags is a bitmask of strictness toggles that are left open by the
// core consensus semantics (spec.md §9's Open Questions). They do not
// change the opcode set or the resource bounds, only how a small number of
// edge cases resolve.
type ScriptFlags uint32

const (
	// ScriptVerifyCleanStack requires the final stack, at clean script
	// end, to hold exactly one element. Without this flag any non-empty
	// final stack is accepted instead; either way the verdict is the top
	// element's truth value, never an unconditional true.
	ScriptVerifyCleanStack ScriptFlags = 1 << iota

	// ScriptVerifyMinimalData requires every script number read off the
	// stack (as opposed to a raw equality/size comparison) to be encoded
	// in the fewest possible bytes.
	ScriptVerifyMinimalData

	// ScriptVerifyNumericWithin makes OP_WITHIN compare its three
	// operands as script numbers instead of as raw byte strings.
	ScriptVerifyNumericWithin

	// ScriptVerifyDiscourageUpgradableNops rejects scripts that execute
	// OP_NOP1 or OP_NOP4..OP_NOP10, on the theory that a future soft fork
	// may give them consensus meaning.
	ScriptVerifyDiscourageUpgradableNops
)

// StandardFlags is the flag set a new, consensus-leaning deployment should
// default to; it resolves every Open Question in the strict/consensus-correct
// direction. See DESIGN.md for the reasoning behind each choice.
const StandardFlags = ScriptVerifyCleanStack | ScriptVerifyMinimalData | ScriptVerifyNumericWithin

func (f ScriptFlags) has(flag ScriptFlags) bool {
	return f&flag == flag
}
