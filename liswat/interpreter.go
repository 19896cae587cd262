//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

//
// Interpreter is the public façade over the lexer/parser/environment/
// evaluator pipeline (spec §6 "Library API"). Its shape — a constructor
// that panics only on a programmer error during setup, and an Evaluate
// method returning (value, *LispError) for a whole chunk of source text —
// follows the teacher's own swatcl.Interpreter (see swatcl/interpreter.go),
// generalized from Tcl command scripts to top-level Scheme forms.
//

// Interpreter holds the root environment of a single Scheme session.
type Interpreter struct {
	root *Environment
}

// NewInterpreter constructs an Interpreter with every built-in and the
// core prelude loaded. Per spec §4.6/§6, a failure to load the prelude
// is a programmer error and panics rather than returning an error.
func NewInterpreter() *Interpreter {
	root := NewRootEnvironment()
	if err := loadPrelude(root); err != nil {
		panic("liswat: failed to load core prelude: " + err.ErrorMessage())
	}
	return &Interpreter{root: root}
}

// Evaluate lexes, parses, and evaluates every top-level form in text in
// this interpreter's root environment, returning the value of the last
// form. Empty (or all-whitespace) input yields an error with an empty
// message, so a REPL can use that to silently skip blank lines, per
// spec §6.
func (ip *Interpreter) Evaluate(text string) (interface{}, *LispError) {
	if strings.TrimSpace(text) == "" {
		return nil, newParseError(ESYNTAX, "")
	}
	datums, perr := ParseAll(text)
	if perr != nil {
		return nil, perr
	}
	if len(datums) == 0 {
		return nil, newParseError(ESYNTAX, "")
	}
	var result interface{}
	for _, d := range datums {
		v, everr := eval(ip.root, d)
		if everr != nil {
			return nil, everr
		}
		result = v
	}
	return result, nil
}

// defaultRoot is the shared, prelude-loaded global environment backing
// the package-level Interpret function: built once (the prelude is only
// ever parsed and run a single time per process), then layered under a
// fresh child frame on every call so that one Interpret call's top-level
// defines never leak into another's.
var (
	defaultRootOnce sync.Once
	defaultRoot     *Environment
)

// Interpret evaluates text against a lazily-built default interpreter,
// in a session-local frame so repeated calls don't see each other's
// top-level definitions. Convenient for callers and tests that don't
// need a persistent session.
func Interpret(text string) (interface{}, *LispError) {
	defaultRootOnce.Do(func() {
		root := NewRootEnvironment()
		if err := loadPrelude(root); err != nil {
			panic("liswat: failed to load core prelude: " + err.ErrorMessage())
		}
		defaultRoot = root
	})
	session := &Interpreter{root: NewEnvironment(defaultRoot)}
	return session.Evaluate(text)
}

// RunREPL implements the read-eval-print loop of spec §6: prompts "> ",
// reads one line, evaluates it, prints the result or error, and loops
// until EOF on in.
func (ip *Interpreter) RunREPL(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		value, err := ip.Evaluate(line)
		if err != nil {
			if err.ErrorMessage() == "" {
				continue
			}
			fmt.Fprintln(out, err.ErrorMessage())
			continue
		}
		fmt.Fprintln(out, stringify(value))
	}
}
