package txscript

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode classifies every way Parse or Interpret can fail. Callers should
// switch on Code() rather than match error strings.
type ErrorCode int

const (
	ErrParsing ErrorCode = iota
	ErrBadOpcode
	ErrDisabledOpcode
	ErrInvalidOpcode
	ErrPushSize
	ErrStackOverflow
	ErrInvalidStackOperation
	ErrInvalidAltStackOperation
	ErrNumberOverflow
	ErrScriptSize
	ErrOpCount
	ErrUnbalancedConditional
	ErrVerify
	ErrEqualVerify
	ErrNumEqualVerify
	ErrOpReturn
)

var errorCodeNames = map[ErrorCode]string{
	ErrParsing:                  "ErrParsing",
	ErrBadOpcode:                "ErrBadOpcode",
	ErrDisabledOpcode:           "ErrDisabledOpcode",
	ErrInvalidOpcode:            "ErrInvalidOpcode",
	ErrPushSize:                 "ErrPushSize",
	ErrStackOverflow:            "ErrStackOverflow",
	ErrInvalidStackOperation:    "ErrInvalidStackOperation",
	ErrInvalidAltStackOperation: "ErrInvalidAltStackOperation",
	ErrNumberOverflow:           "ErrNumberOverflow",
	ErrScriptSize:               "ErrScriptSize",
	ErrOpCount:                  "ErrOpCount",
	ErrUnbalancedConditional:    "ErrUnbalancedConditional",
	ErrVerify:                   "ErrVerify",
	ErrEqualVerify:              "ErrEqualVerify",
	ErrNumEqualVerify:           "ErrNumEqualVerify",
	ErrOpReturn:                 "ErrOpReturn",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// ScriptError is the error type returned by every exported entry point in
// this package. It carries a typed Code in addition to a human-readable
// message so that callers never need to pattern-match on error text.
type ScriptError struct {
	code    ErrorCode
	message string
	cause   error
}

func (e *ScriptError) Error() string {
	return e.message
}

// Code returns the typed classification of the failure.
func (e *ScriptError) Code() ErrorCode {
	return e.code
}

// Unwrap exposes the underlying cause, if any, to errors.Is/errors.As.
func (e *ScriptError) Unwrap() error {
	return e.cause
}

func newScriptError(code ErrorCode, format string, args ...interface{}) *ScriptError {
	wrapped := errors.Wrap(fmt.Errorf(format, args...), code.String())
	return &ScriptError{
		code:    code,
		message: wrapped.Error(),
		cause:   wrapped,
	}
}

func wrapScriptError(code ErrorCode, cause error) *ScriptError {
	return &ScriptError{
		code:    code,
		message: errors.Wrap(cause, code.String()).Error(),
		cause:   cause,
	}
}
