//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

//
// The evaluator reduces a Datum to a value under an Environment. It is
// structured as a register machine: a single loop holds the "registers"
// (the current env and the current expr) and special forms or tail-call
// applications rebind them and continue the loop rather than recursing,
// so self-recursive tail calls run in bounded Go-stack space (spec §4.4,
// §9's "trampoline" design note). Evaluating a non-tail sub-expression
// (an operator, an argument, a test, a non-final body expression) still
// recurses into eval — that recursion is bounded by the nesting depth of
// the source expression, not by how many times a loop iterates.
//

var (
	beginSym  = Symbol("begin")
	defineSym = Symbol("define")
	ifSym     = Symbol("if")
	lambdaSym = Symbol("lambda")
	letSym    = Symbol("let")
	letrecSym = Symbol("letrec")
	setSym    = Symbol("set!")
	andSym    = Symbol("and")
	orSym     = Symbol("or")
	condSym   = Symbol("cond")
	elseSym   = Symbol("else")
)

// specialFormTags lists the tags installed as SpecialForm values in the
// root environment; see installSpecialForms in builtins.go.
var specialFormTags = []Symbol{
	quoteSym, ifSym, lambdaSym, letSym, letrecSym, beginSym,
	defineSym, setSym, andSym, orSym, condSym,
}

// Run evaluates a single top-level Datum under env and returns its value,
// or a RuntimeError carrying the stack trace of pending combinations.
func Run(env *Environment, datum interface{}) (interface{}, *LispError) {
	return eval(env, datum)
}

// isTruthy implements "all values except #f are truthy" (spec §4.4).
func isTruthy(v interface{}) bool {
	b, isBool := v.(bool)
	return !isBool || b
}

// headName renders the operator of a combination for stack-trace frames,
// falling back to <anonymous> for anything that isn't a bare symbol.
func headName(op interface{}) string {
	if sym, ok := op.(Symbol); ok {
		return string(sym)
	}
	return "<anonymous>"
}

// nthRest walks n cdrs deep into a proper-prefixed list, returning
// theEmptyList if the spine ends early.
func nthRest(x interface{}, n int) interface{} {
	for i := 0; i < n; i++ {
		p, ok := x.(*Pair)
		if !ok {
			return theEmptyList
		}
		x = Cdr(p)
	}
	return x
}

func eval(env *Environment, expr interface{}) (interface{}, *LispError) {
	for {
		switch x := expr.(type) {
		case Symbol:
			v, ok := env.Lookup(x)
			if !ok {
				return nil, unboundVariableError(x)
			}
			if u, isUninit := v.(uninitialized); isUninit {
				return nil, newRuntimeError(ELETREC,
					"letrec: binding not yet initialized: "+string(u.name))
			}
			return v, nil

		case emptyListType:
			return nil, newRuntimeError(ESYNTAX,
				"the empty combination () cannot be evaluated; use (quote ()) for the empty list value")

		case *Pair:
			if x == nil {
				return nil, newRuntimeError(ESYNTAX, "the empty combination () cannot be evaluated")
			}
			head := headName(x.car)

			opVal, err := eval(env, x.car)
			if err != nil {
				err.pushFrame(head)
				return nil, err
			}

			if sf, isSpecial := opVal.(*SpecialForm); isSpecial {
				nextEnv, nextExpr, result, done, serr := evalSpecialForm(env, sf, x, head)
				if serr != nil {
					return nil, serr
				}
				if done {
					return result, nil
				}
				env, expr = nextEnv, nextExpr
				continue
			}

			// Ordinary procedure application: evaluate every argument
			// left to right in the current environment (non-tail).
			argExprs, ok := ListToSlice(x.Rest())
			if !ok {
				return nil, newRuntimeError(ENOTPROPERLIST, head+": argument list is not a proper list")
			}
			args := make([]interface{}, len(argExprs))
			for i, a := range argExprs {
				v, err := eval(env, a)
				if err != nil {
					err.pushFrame(head)
					return nil, err
				}
				args[i] = v
			}

			switch proc := opVal.(type) {
			case *Native:
				if aerr := proc.checkArity(len(args)); aerr != nil {
					aerr.pushFrame(head)
					return nil, aerr
				}
				v, aerr := proc.Fn(args)
				if aerr != nil {
					aerr.pushFrame(head)
					return nil, aerr
				}
				return v, nil

			case *Lambda:
				child, berr := proc.bind(args)
				if berr != nil {
					berr.pushFrame(head)
					return nil, berr
				}
				last, berr := evalAllButLast(child, proc.Body, head)
				if berr != nil {
					return nil, berr
				}
				env, expr = child, last
				continue

			default:
				return nil, newRuntimeError(ENOTAPPLICABLE, stringify(opVal)+" is not applicable")
			}

		default:
			// Self-evaluating: booleans, characters, strings, numbers,
			// vectors, and procedures/special-forms encountered as values.
			return expr, nil
		}
	}
}

// evalAllButLast evaluates every expression but the last (non-tail,
// discarding results except for side effects), and returns the last
// expression unevaluated for the caller to place in tail position.
func evalAllButLast(env *Environment, exprs []interface{}, head string) (interface{}, *LispError) {
	if len(exprs) == 0 {
		return nil, newRuntimeError(ESYNTAX, head+": empty body")
	}
	for _, e := range exprs[:len(exprs)-1] {
		if _, err := eval(env, e); err != nil {
			err.pushFrame(head)
			return nil, err
		}
	}
	return exprs[len(exprs)-1], nil
}

// evalSpecialForm dispatches a recognized special form. It returns either
// a final (result, done=true) pair, or (env, expr, done=false) for the
// caller's trampoline loop to continue with in tail position.
func evalSpecialForm(env *Environment, sf *SpecialForm, x *Pair, head string) (
	nextEnv *Environment, nextExpr interface{}, result interface{}, done bool, err *LispError) {

	switch sf.Tag {
	case "quote":
		if x.Len() != 2 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "quote: requires exactly 1 operand")
		}
		return nil, nil, x.Second(), true, nil

	case "if":
		n := x.Len()
		if n != 3 && n != 4 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "if: requires 2 or 3 operands")
		}
		testV, terr := eval(env, x.Second())
		if terr != nil {
			terr.pushFrame(head)
			return nil, nil, nil, false, terr
		}
		if isTruthy(testV) {
			return env, x.Third(), nil, false, nil
		}
		if n == 4 {
			elseBranch, ok := nthRest(x, 3).(*Pair)
			if !ok {
				return nil, nil, nil, false, newRuntimeError(ESYNTAX, "if: malformed else branch")
			}
			return env, elseBranch.First(), nil, false, nil
		}
		return nil, nil, theEmptyList, true, nil

	case "lambda":
		if x.Len() < 3 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "lambda: requires a parameter list and at least 1 body expression")
		}
		params := x.Second()
		body, ok := ListToSlice(nthRest(x, 2))
		if !ok || len(body) == 0 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "lambda: body must be a proper list of at least 1 expression")
		}
		return nil, nil, &Lambda{Params: params, Body: body, Env: env}, true, nil

	case "let":
		return evalLet(env, x, head)

	case "letrec":
		return evalLetrec(env, x, head)

	case "begin":
		body, ok := ListToSlice(x.Rest())
		if !ok || len(body) == 0 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "begin: requires at least 1 expression")
		}
		last, berr := evalAllButLast(env, body, head)
		if berr != nil {
			return nil, nil, nil, false, berr
		}
		return env, last, nil, false, nil

	case "define":
		return evalDefine(env, x, head)

	case "set!":
		if x.Len() != 3 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "set!: requires exactly 2 operands")
		}
		name, isSym := x.Second().(Symbol)
		if !isSym {
			return nil, nil, nil, false, newRuntimeError(EBADTYPE, "set!: can only assign to a symbol")
		}
		val, verr := eval(env, x.Third())
		if verr != nil {
			verr.pushFrame(head)
			return nil, nil, nil, false, verr
		}
		if serr := env.Set(name, val); serr != nil {
			return nil, nil, nil, false, serr
		}
		return nil, nil, val, true, nil

	case "and":
		args, _ := ListToSlice(x.Rest())
		if len(args) == 0 {
			return nil, nil, true, true, nil
		}
		for _, a := range args[:len(args)-1] {
			v, aerr := eval(env, a)
			if aerr != nil {
				aerr.pushFrame(head)
				return nil, nil, nil, false, aerr
			}
			if !isTruthy(v) {
				return nil, nil, false, true, nil
			}
		}
		return env, args[len(args)-1], nil, false, nil

	case "or":
		args, _ := ListToSlice(x.Rest())
		if len(args) == 0 {
			return nil, nil, false, true, nil
		}
		for _, a := range args[:len(args)-1] {
			v, aerr := eval(env, a)
			if aerr != nil {
				aerr.pushFrame(head)
				return nil, nil, nil, false, aerr
			}
			if isTruthy(v) {
				return nil, nil, v, true, nil
			}
		}
		return env, args[len(args)-1], nil, false, nil

	case "cond":
		return evalCond(env, x, head)
	}
	panic("unreachable special form tag: " + sf.Tag)
}

func evalLet(env *Environment, x *Pair, head string) (*Environment, interface{}, interface{}, bool, *LispError) {
	if x.Len() < 3 {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "let: requires a binding list and at least 1 body expression")
	}
	bindings, ok := ListToSlice(x.Second())
	if !ok {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "let: bindings must be a proper list")
	}
	names := make([]Symbol, len(bindings))
	values := make([]interface{}, len(bindings))
	for i, b := range bindings {
		bp, isPair := b.(*Pair)
		if !isPair || bp.Len() != 2 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "let: each binding must be (name value)")
		}
		name, isSym := bp.First().(Symbol)
		if !isSym {
			return nil, nil, nil, false, newRuntimeError(EBADTYPE, "let: binding name must be a symbol")
		}
		// Values are evaluated in the outer environment (parallel binding):
		// a binding cannot see any name bound by this same let.
		v, verr := eval(env, bp.Second())
		if verr != nil {
			verr.pushFrame(head)
			return nil, nil, nil, false, verr
		}
		names[i] = name
		values[i] = v
	}
	child := env.Extend(names, values)
	body, _ := ListToSlice(nthRest(x, 2))
	last, berr := evalAllButLast(child, body, head)
	if berr != nil {
		return nil, nil, nil, false, berr
	}
	return child, last, nil, false, nil
}

func evalLetrec(env *Environment, x *Pair, head string) (*Environment, interface{}, interface{}, bool, *LispError) {
	if x.Len() < 3 {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "letrec: requires a binding list and at least 1 body expression")
	}
	bindings, ok := ListToSlice(x.Second())
	if !ok {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "letrec: bindings must be a proper list")
	}
	names := make([]Symbol, len(bindings))
	exprs := make([]interface{}, len(bindings))
	for i, b := range bindings {
		bp, isPair := b.(*Pair)
		if !isPair || bp.Len() != 2 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "letrec: each binding must be (name value)")
		}
		name, isSym := bp.First().(Symbol)
		if !isSym {
			return nil, nil, nil, false, newRuntimeError(EBADTYPE, "letrec: binding name must be a symbol")
		}
		names[i] = name
		exprs[i] = bp.Second()
	}
	child := NewEnvironment(env)
	for _, name := range names {
		child.Define(name, uninitialized{name: name})
	}
	for i, name := range names {
		v, verr := eval(child, exprs[i])
		if verr != nil {
			verr.pushFrame(head)
			return nil, nil, nil, false, verr
		}
		child.Define(name, v)
	}
	body, _ := ListToSlice(nthRest(x, 2))
	last, berr := evalAllButLast(child, body, head)
	if berr != nil {
		return nil, nil, nil, false, berr
	}
	return child, last, nil, false, nil
}

func evalDefine(env *Environment, x *Pair, head string) (*Environment, interface{}, interface{}, bool, *LispError) {
	if x.Len() < 3 {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "define: requires a name and a value")
	}
	target := x.Second()
	if formals, isPair := target.(*Pair); isPair {
		// (define (f args...) body...) => (define f (lambda (args...) body...))
		name, isSym := formals.First().(Symbol)
		if !isSym {
			return nil, nil, nil, false, newRuntimeError(EBADTYPE, "define: procedure name must be a symbol")
		}
		body, ok := ListToSlice(nthRest(x, 2))
		if !ok || len(body) == 0 {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "define: procedure body must have at least 1 expression")
		}
		lambda := &Lambda{Name: string(name), Params: formals.Rest(), Body: body, Env: env}
		env.Define(name, lambda)
		return nil, nil, name, true, nil
	}
	name, isSym := target.(Symbol)
	if !isSym {
		return nil, nil, nil, false, newRuntimeError(EBADTYPE, "define: can only define a symbol")
	}
	if x.Len() != 3 {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "define: requires exactly 1 value expression")
	}
	val, verr := eval(env, x.Third())
	if verr != nil {
		verr.pushFrame(head)
		return nil, nil, nil, false, verr
	}
	env.Define(name, val)
	return nil, nil, name, true, nil
}

func evalCond(env *Environment, x *Pair, head string) (*Environment, interface{}, interface{}, bool, *LispError) {
	clauses, ok := ListToSlice(x.Rest())
	if !ok {
		return nil, nil, nil, false, newRuntimeError(ESYNTAX, "cond: clauses must be a proper list")
	}
	for _, c := range clauses {
		clause, isPair := c.(*Pair)
		if !isPair {
			return nil, nil, nil, false, newRuntimeError(ESYNTAX, "cond: each clause must be a list")
		}
		var testVal interface{}
		if clause.First() == elseSym {
			testVal = true
		} else {
			v, terr := eval(env, clause.First())
			if terr != nil {
				terr.pushFrame(head)
				return nil, nil, nil, false, terr
			}
			testVal = v
		}
		if !isTruthy(testVal) {
			continue
		}
		body, _ := ListToSlice(clause.Rest())
		if len(body) == 0 {
			return nil, nil, testVal, true, nil
		}
		last, berr := evalAllButLast(env, body, head)
		if berr != nil {
			return nil, nil, nil, false, berr
		}
		return env, last, nil, false, nil
	}
	return nil, nil, theEmptyList, true, nil
}
