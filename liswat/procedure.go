//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

// NativeFn is the signature of a built-in procedure: it receives the
// already-evaluated argument list and returns a Datum result or an error.
type NativeFn func(args []interface{}) (interface{}, *LispError)

// Native wraps a built-in procedure implemented in Go.
type Native struct {
	Name    string
	Fn      NativeFn
	MinArgs int // -1 means no lower bound beyond 0
	MaxArgs int // -1 means unbounded (variadic)
}

// checkArity validates the number of arguments against this native's
// declared arity, returning an EARITY error if it doesn't fit.
func (n *Native) checkArity(argc int) *LispError {
	if n.MinArgs >= 0 && argc < n.MinArgs {
		return newRuntimeError(EARITY, n.Name+": too few arguments")
	}
	if n.MaxArgs >= 0 && argc > n.MaxArgs {
		return newRuntimeError(EARITY, n.Name+": too many arguments")
	}
	return nil
}

// Lambda is a user-defined procedure: a closure over the environment in
// effect at the point the (lambda ...) form was evaluated.
type Lambda struct {
	Name   string        // set by (define (name ...) ...) sugar, else ""
	Params interface{}   // Symbol (rest-only), *Pair (proper/dotted list), or theEmptyList (no params)
	Body   []interface{} // one or more body expressions; the last runs in tail position
	Env    *Environment
}

// bind creates a fresh child environment binding this lambda's formal
// parameters to the given actual argument values, per the fixed/rest/mixed
// rules of spec §4.4.
func (l *Lambda) bind(args []interface{}) (*Environment, *LispError) {
	child := NewEnvironment(l.Env)
	switch params := l.Params.(type) {
	case Symbol:
		// rest-only: bind the whole argument list to one name.
		child.Define(params, SliceToList(args))
		return child, nil
	case emptyListType:
		if len(args) != 0 {
			return nil, newRuntimeError(EARITY, l.label()+": expects 0 arguments")
		}
		return child, nil
	case *Pair:
		names, rest := flattenParams(params)
		if rest == "" {
			if len(args) != len(names) {
				return nil, newRuntimeError(EARITY, l.label()+": wrong number of arguments")
			}
		} else if len(args) < len(names) {
			return nil, newRuntimeError(EARITY, l.label()+": too few arguments")
		}
		for i, name := range names {
			child.Define(name, args[i])
		}
		if rest != "" {
			child.Define(rest, SliceToList(args[len(names):]))
		}
		return child, nil
	default:
		return nil, newRuntimeError(EBADTYPE, l.label()+": malformed parameter list")
	}
}

func (l *Lambda) label() string {
	if l.Name != "" {
		return l.Name
	}
	return "#<anonymous>"
}

// flattenParams walks a (possibly dotted) parameter list, returning the
// fixed parameter names in order and the rest-parameter name, if any
// ("" if the list is fully proper).
func flattenParams(p *Pair) (names []Symbol, rest Symbol) {
	for p != nil {
		if sym, ok := p.car.(Symbol); ok {
			names = append(names, sym)
		}
		switch cdr := p.cdr.(type) {
		case emptyListType:
			return names, ""
		case *Pair:
			p = cdr
		case Symbol:
			return names, cdr
		default:
			return names, ""
		}
	}
	return names, ""
}

// SpecialForm tags one of the syntactic forms with distinct evaluation
// rules (quote, if, lambda, let, letrec, begin, define, set!, and, or,
// cond). Special forms are bound as ordinary values in the environment,
// but the evaluator dispatches on them without evaluating their operands,
// and they are not otherwise callable as procedures.
type SpecialForm struct {
	Tag string
}
