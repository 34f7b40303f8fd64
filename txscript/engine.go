package txscript

import (
	"github.com/btcscriptvm/core/logging"
)

// condition tracks one level of nested OP_IF/OP_NOTIF execution.
type condition int

const (
	condFalse condition = iota
	condTrue
	condSkip // an OP_IF/OP_NOTIF reached inside a non-executing branch; OP_ELSE leaves it as is
)

// Engine is a script evaluator: it holds exactly the state needed to run a
// single script to completion (or failure) against a VerificationContext.
// It knows nothing about transactions, inputs or previous outputs; a caller
// that needs sighash-dependent opcodes supplies them through ctx.
type Engine struct {
	script Script
	pc     int // index into script of the next item Step will execute

	dstack stack
	astack stack

	condStack []condition
	numOps    int

	flags ScriptFlags
	ctx   VerificationContext

	done bool
}

// NewEngine parses raw and returns an Engine ready to execute it. It applies
// the MAX_SCRIPT_SIZE bound before doing anything else, since a
// pathologically large buffer should never even reach the decoder.
func NewEngine(raw []byte, flags ScriptFlags, ctx VerificationContext) (*Engine, error) {
	if len(raw) > MaxScriptSize {
		return nil, newScriptError(ErrScriptSize, "script size %d exceeds max of %d", len(raw), MaxScriptSize)
	}
	if ctx == nil {
		ctx = NopVerificationContext{}
	}

	script, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	vm := &Engine{
		script: script,
		flags:  flags,
		ctx:    ctx,
	}
	vm.dstack.verifyMinimalData = flags.has(ScriptVerifyMinimalData)
	vm.astack.verifyMinimalData = flags.has(ScriptVerifyMinimalData)
	return vm, nil
}

// isBranchExecuting reports whether the instruction at the current nesting
// level should actually run: true when the condition stack is empty (top
// level, always executing) or its top is condTrue.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == condTrue
}

// Step executes the single next item in the script and reports whether the
// script has more items left to run. Most callers want Execute instead;
// Step is exposed for callers that want to trace state between
// instructions (a debugger or the disassembler).
func (vm *Engine) Step() (bool, error) {
	if vm.pc >= len(vm.script) {
		vm.done = true
		return false, nil
	}

	item := vm.script[vm.pc]
	vm.pc++

	if err := vm.executeItem(item); err != nil {
		return false, err
	}

	if vm.dstack.Depth()+vm.astack.Depth() > MaxStackSize {
		return false, newScriptError(ErrStackOverflow, "combined stack depth exceeds max of %d", MaxStackSize)
	}

	more := vm.pc < len(vm.script)
	if !more {
		vm.done = true
	}
	return more, nil
}

// executeItem dispatches a single decoded item: a data push, or an opcode.
// Disabled opcodes, oversize pushes, the non-push op-count budget and the
// unconditionally-invalid OP_VERIF/OP_VERNOTIF opcodes are all checked
// before the branch-executing gate below, matching the Bitcoin consensus
// quirk that these invalidate the whole script regardless of whether they
// would actually have run.
func (vm *Engine) executeItem(item ScriptItem) error {
	if isDisabledOpcode(item.Op.value) {
		return newScriptError(ErrDisabledOpcode, "attempt to execute disabled opcode %s", item.Op.name)
	}

	// A push's element-size limit is checked unconditionally, even inside
	// a skipped conditional branch, so that a script cannot smuggle an
	// oversize element past validation just by guarding it with a
	// never-taken OP_IF.
	if item.IsData && len(item.Data) > MaxScriptElementSize {
		return newScriptError(ErrPushSize, "element size %d exceeds max of %d", len(item.Data), MaxScriptElementSize)
	}

	// The non-push op-count budget is charged unconditionally too: a
	// script can't dodge MAX_OPS_PER_SCRIPT by hiding opcodes behind a
	// never-taken OP_IF.
	if !isPushValueOpcode(item.Op.value) {
		vm.numOps++
		if vm.numOps > MaxOpsPerScript {
			return newScriptError(ErrOpCount, "script exceeds max of %d non-push opcodes", MaxOpsPerScript)
		}
	}

	if item.Op.value == OP_VERIF || item.Op.value == OP_VERNOTIF {
		return newScriptError(ErrInvalidOpcode, "%s is unconditionally invalid", item.Op.name)
	}

	executing := vm.isBranchExecuting()

	// Conditional-control opcodes manipulate the branch stack itself and
	// so must run regardless of whether the *enclosing* branch executes,
	// but their own truth value is only consulted when it does.
	switch item.Op.value {
	case OP_IF, OP_NOTIF:
		return vm.execIf(item.Op.value, executing)
	case OP_ELSE:
		return vm.execElse()
	case OP_ENDIF:
		return vm.execEndif()
	}

	if !executing {
		return nil
	}

	if item.IsData {
		return vm.dstack.PushByteArray(item.Data)
	}

	switch item.Op.value {
	case OP_RESERVED, OP_RESERVED1, OP_RESERVED2, OP_VER:
		return newScriptError(ErrInvalidOpcode, "%s is a reserved opcode", item.Op.name)
	}

	return vm.executeOpcode(item.Op.value)
}

func (vm *Engine) execIf(op byte, executing bool) error {
	cond := condFalse
	if executing {
		v, err := vm.dstack.PopBool()
		if err != nil {
			return err
		}
		if op == OP_NOTIF {
			v = !v
		}
		if v {
			cond = condTrue
		}
	} else {
		cond = condSkip
	}
	vm.condStack = append(vm.condStack, cond)
	return nil
}

func (vm *Engine) execElse() error {
	if len(vm.condStack) == 0 {
		return newScriptError(ErrUnbalancedConditional, "OP_ELSE without matching OP_IF")
	}
	top := len(vm.condStack) - 1
	switch vm.condStack[top] {
	case condTrue:
		vm.condStack[top] = condFalse
	case condFalse:
		vm.condStack[top] = condTrue
	case condSkip:
		// stays condSkip: the whole OP_IF sat inside an already-false branch
	}
	return nil
}

func (vm *Engine) execEndif() error {
	if len(vm.condStack) == 0 {
		return newScriptError(ErrUnbalancedConditional, "OP_ENDIF without matching OP_IF")
	}
	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

// Execute runs the script to completion, logging a disassembly trace the
// way the teacher's evaluator does, and returns the final verdict per
// CheckErrorCondition.
func (vm *Engine) Execute() (bool, error) {
	for {
		disasm, _ := vm.disasm(vm.pc)
		logging.CPrint(logging.DebugLevel, "executing script item", logging.LogFormat{"pc": vm.pc, "item": disasm})

		more, err := vm.Step()
		if err != nil {
			logging.CPrint(logging.ErrorLevel, "script execution failed", logging.LogFormat{"pc": vm.pc, "err": err})
			return false, err
		}
		if !more {
			break
		}
	}
	return vm.CheckErrorCondition()
}

// CheckErrorCondition evaluates the final stack state once the script has
// run to completion without error. With ScriptVerifyCleanStack set, exactly
// one element must remain on the stack; otherwise any non-empty final stack
// is accepted, as long as its top element is truthy.
func (vm *Engine) CheckErrorCondition() (bool, error) {
	if !vm.done {
		return false, newScriptError(ErrInvalidStackOperation, "CheckErrorCondition called before script finished")
	}
	if len(vm.condStack) != 0 {
		return false, newScriptError(ErrUnbalancedConditional, "unterminated conditional at end of script")
	}

	if vm.flags.has(ScriptVerifyCleanStack) && vm.dstack.Depth() != 1 {
		return false, newScriptError(ErrInvalidStackOperation, "clean stack required, final depth is %d", vm.dstack.Depth())
	}
	if vm.dstack.Depth() < 1 {
		return false, newScriptError(ErrInvalidStackOperation, "script finished with empty stack")
	}

	return vm.dstack.PeekBool(0)
}

// validPC reports whether pc addresses a real item in the script.
func (vm *Engine) validPC(pc int) bool {
	return pc >= 0 && pc < len(vm.script)
}

// disasm renders the single instruction at pc for trace logging.
func (vm *Engine) disasm(pc int) (string, error) {
	if !vm.validPC(pc) {
		return "<end>", nil
	}
	return itemDisasm(vm.script[pc]), nil
}

// DisasmPC returns the disassembly of the instruction about to be executed.
func (vm *Engine) DisasmPC() (string, error) {
	return vm.disasm(vm.pc)
}

// DisasmScript returns the full disassembly of the script under evaluation,
// independent of how far execution has progressed.
func (vm *Engine) DisasmScript() string {
	var out string
	for i, item := range vm.script {
		if i > 0 {
			out += " "
		}
		out += itemDisasm(item)
	}
	return out
}

// Interpret is the package's sole entry point for running a script to a
// pass/fail verdict. It never mutates raw and never retains a reference to
// it beyond the call.
func Interpret(raw []byte, flags ScriptFlags, ctx VerificationContext) (bool, error) {
	vm, err := NewEngine(raw, flags, ctx)
	if err != nil {
		return false, err
	}
	return vm.Execute()
}
