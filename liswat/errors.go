//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import "fmt"

// Error kind distinguishes where in the pipeline a LispError originated,
// which in turn controls how ErrorMessage() renders it.
type ErrorKind int

const (
	KindLex ErrorKind = iota
	KindParse
	KindRuntime
)

// Error constants, in the style of swatcl's TclError codes.
const (
	_              = iota
	ELEXER         // lexer tokenization failed
	ESYNTAX        // malformed syntax
	EUNBOUND       // unbound variable or set! to undefined name
	EARITY         // wrong number of arguments
	EBADTYPE       // value of the wrong type for an operation
	ENOTPROPERLIST // a proper list was required but not given
	ENOTAPPLICABLE // attempt to apply a non-procedure
	EDIVZERO       // division (or modulo/quotient/remainder) by zero
	EINVALNUM      // malformed numeric literal
	ENUMRANGE      // numeric value out of supported range
	ELETREC        // letrec binding read before initialization
	ESUPPORT       // recognized but unsupported construct
)

// LispError carries a classified error code, a human-readable message,
// and — for runtime errors — the chain of pending call frames collected
// as the evaluator unwinds.
type LispError struct {
	Kind    ErrorKind
	Code    int
	Message string
	Trace   []string // innermost-first as collected; reversed for display
}

// NewLispError constructs a LispError defaulting to the runtime kind.
func NewLispError(code int, msg string) *LispError {
	return &LispError{Kind: KindRuntime, Code: code, Message: msg}
}

// newLexError constructs a LispError of the lexer kind.
func newLexError(msg string) *LispError {
	return &LispError{Kind: KindLex, Code: ELEXER, Message: msg}
}

// newParseError constructs a LispError of the parser kind.
func newParseError(code int, msg string) *LispError {
	return &LispError{Kind: KindParse, Code: code, Message: msg}
}

// newRuntimeError constructs a LispError of the runtime kind.
func newRuntimeError(code int, msg string) *LispError {
	return &LispError{Kind: KindRuntime, Code: code, Message: msg}
}

// pushFrame records a pending (non-tail) combination's head symbol as the
// error unwinds through it. Called from the innermost failing frame
// outward, so frames accumulate innermost-first.
func (e *LispError) pushFrame(head string) {
	e.Trace = append(e.Trace, head)
}

// String returns the raw error message, without any stack trace. This
// matches the teacher's TclError.String() convention and is what parser
// and lexer errors print as.
func (e *LispError) String() string {
	return e.Message
}

// Error implements the standard error interface.
func (e *LispError) Error() string {
	return e.ErrorMessage()
}

// ErrorMessage renders the error the way the public façade does: runtime
// errors with a pending-call stack trace get the
// "<message>\n\nStack trace:\n<frames>" treatment; lex and parse errors
// are rendered as their bare message.
func (e *LispError) ErrorMessage() string {
	if e.Kind != KindRuntime || len(e.Trace) == 0 {
		return e.Message
	}
	frames := make([]string, len(e.Trace))
	// Trace was collected innermost-first; display innermost-last.
	for i, f := range e.Trace {
		frames[len(e.Trace)-1-i] = f
	}
	out := e.Message + "\n\nStack trace:\n"
	for i, f := range frames {
		if i > 0 {
			out += "\n"
		}
		out += f
	}
	return out
}

// unboundVariableError builds the specific "unbound variable" message
// required by spec.md §4.4.
func unboundVariableError(name Symbol) *LispError {
	return newRuntimeError(EUNBOUND, fmt.Sprintf("unbound variable: %s", name))
}
