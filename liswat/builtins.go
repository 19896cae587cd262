//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import "fmt"

//
// NewRootEnvironment builds the global environment: the special-form
// tags of spec §4.4 and the native procedure set of spec §4.5. This
// mirrors the teacher's own pattern of a single setup function wiring
// every builtin into one root frame (see swatcl/interpreter.go's command
// registration), adapted to Scheme's split between special forms (never
// evaluate their operands) and ordinary procedures (always do).
//

// NewRootEnvironment constructs a fresh root environment with every
// special form and native procedure installed, ready to load the core
// prelude on top of it.
func NewRootEnvironment() *Environment {
	env := NewEnvironment(nil)
	installSpecialForms(env)
	installArithmetic(env)
	installPairsAndLists(env)
	installPredicates(env)
	installHigherOrder(env)
	installSymbolsAndStrings(env)
	installVectors(env)
	return env
}

func installSpecialForms(env *Environment) {
	for _, tag := range specialFormTags {
		env.Define(tag, &SpecialForm{Tag: string(tag)})
	}
}

func native(env *Environment, name string, min, max int, fn NativeFn) {
	env.Define(Symbol(name), &Native{Name: name, Fn: fn, MinArgs: min, MaxArgs: max})
}

// asInt64 type-asserts a Datum as an exact integer, per spec's restriction
// to a single exact-integer numeric tower (spec §1, §4.5).
func asInt64(name string, v interface{}) (int64, *LispError) {
	n, ok := v.(int64)
	if !ok {
		return 0, newRuntimeError(EBADTYPE, name+": expected a number, got "+stringify(v))
	}
	return n, nil
}

func installArithmetic(env *Environment) {
	native(env, "+", 0, -1, func(args []interface{}) (interface{}, *LispError) {
		var sum int64
		for _, a := range args {
			n, err := asInt64("+", a)
			if err != nil {
				return nil, err
			}
			sum += n
		}
		return sum, nil
	})

	native(env, "*", 0, -1, func(args []interface{}) (interface{}, *LispError) {
		var product int64 = 1
		for _, a := range args {
			n, err := asInt64("*", a)
			if err != nil {
				return nil, err
			}
			product *= n
		}
		return product, nil
	})

	native(env, "-", 1, -1, func(args []interface{}) (interface{}, *LispError) {
		first, err := asInt64("-", args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			return -first, nil
		}
		result := first
		for _, a := range args[1:] {
			n, err := asInt64("-", a)
			if err != nil {
				return nil, err
			}
			result -= n
		}
		return result, nil
	})

	native(env, "/", 1, -1, func(args []interface{}) (interface{}, *LispError) {
		first, err := asInt64("/", args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			if first == 0 {
				return nil, newRuntimeError(EDIVZERO, "/: division by zero")
			}
			return 1 / first, nil
		}
		result := first
		for _, a := range args[1:] {
			n, err := asInt64("/", a)
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, newRuntimeError(EDIVZERO, "/: division by zero")
			}
			result /= n
		}
		return result, nil
	})

	native(env, "modulo", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		a, err := asInt64("modulo", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt64("modulo", args[1])
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, newRuntimeError(EDIVZERO, "modulo: division by zero")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	})

	native(env, "remainder", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		a, err := asInt64("remainder", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt64("remainder", args[1])
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, newRuntimeError(EDIVZERO, "remainder: division by zero")
		}
		return a % b, nil
	})

	native(env, "quotient", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		a, err := asInt64("quotient", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt64("quotient", args[1])
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, newRuntimeError(EDIVZERO, "quotient: division by zero")
		}
		return a / b, nil
	})

	installComparison(env, "=", func(a, b int64) bool { return a == b })
	installComparison(env, "<", func(a, b int64) bool { return a < b })
	installComparison(env, ">", func(a, b int64) bool { return a > b })
	installComparison(env, "<=", func(a, b int64) bool { return a <= b })
	installComparison(env, ">=", func(a, b int64) bool { return a >= b })
}

// installComparison wires one of the variadic chained comparisons: #t iff
// every adjacent pair satisfies cmp; vacuously #t for 0 or 1 arguments.
func installComparison(env *Environment, name string, cmp func(a, b int64) bool) {
	native(env, name, 0, -1, func(args []interface{}) (interface{}, *LispError) {
		nums := make([]int64, len(args))
		for i, a := range args {
			n, err := asInt64(name, a)
			if err != nil {
				return nil, err
			}
			nums[i] = n
		}
		for i := 1; i < len(nums); i++ {
			if !cmp(nums[i-1], nums[i]) {
				return false, nil
			}
		}
		return true, nil
	})
}

func installPairsAndLists(env *Environment) {
	native(env, "cons", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		return Cons(args[0], args[1]), nil
	})

	native(env, "car", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		p, ok := args[0].(*Pair)
		if !ok || p == nil {
			return nil, newRuntimeError(EBADTYPE, "car: not a pair: "+stringify(args[0]))
		}
		return p.First(), nil
	})

	native(env, "cdr", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		p, ok := args[0].(*Pair)
		if !ok || p == nil {
			return nil, newRuntimeError(EBADTYPE, "cdr: not a pair: "+stringify(args[0]))
		}
		return p.Rest(), nil
	})

	native(env, "list", 0, -1, func(args []interface{}) (interface{}, *LispError) {
		return SliceToList(args), nil
	})

	native(env, "length", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		items, ok := ListToSlice(args[0])
		if !ok {
			return nil, newRuntimeError(ENOTPROPERLIST, "length: not a proper list: "+stringify(args[0]))
		}
		return int64(len(items)), nil
	})

	native(env, "append", 0, -1, func(args []interface{}) (interface{}, *LispError) {
		if len(args) == 0 {
			return theEmptyList, nil
		}
		var result []interface{}
		for _, a := range args[:len(args)-1] {
			items, ok := ListToSlice(a)
			if !ok {
				return nil, newRuntimeError(ENOTPROPERLIST, "append: not a proper list: "+stringify(a))
			}
			result = append(result, items...)
		}
		last := args[len(args)-1]
		if len(result) == 0 {
			return last, nil
		}
		list := NewList(result...)
		list.Join(last)
		return list, nil
	})

	native(env, "null?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		return args[0] == theEmptyList, nil
	})

	native(env, "pair?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		p, ok := args[0].(*Pair)
		return ok && p != nil, nil
	})

	native(env, "list?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		return IsProperList(args[0]), nil
	})
}

func installPredicates(env *Environment) {
	native(env, "boolean?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		_, ok := args[0].(bool)
		return ok, nil
	})
	native(env, "symbol?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		_, ok := args[0].(Symbol)
		return ok, nil
	})
	native(env, "string?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		_, ok := args[0].(*String)
		return ok, nil
	})
	native(env, "number?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		_, ok := args[0].(int64)
		return ok, nil
	})
	native(env, "procedure?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		switch args[0].(type) {
		case *Native, *Lambda:
			return true, nil
		default:
			return false, nil
		}
	})
	native(env, "vector?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		_, ok := args[0].(*Vector)
		return ok, nil
	})
	native(env, "char?", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		_, ok := args[0].(Character)
		return ok, nil
	})
	native(env, "eq?", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		return eqDatum(args[0], args[1]), nil
	})
	native(env, "eqv?", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		return eqDatum(args[0], args[1]), nil
	})
	native(env, "equal?", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		return equalDatum(args[0], args[1]), nil
	})
}

// eqDatum implements eq?/eqv? identity: identical for atoms (booleans,
// symbols, characters, and — since this implementation has no boxed
// small-integer identity distinction — integers), pointer identity for
// pairs, strings, and vectors.
func eqDatum(a, b interface{}) bool {
	switch av := a.(type) {
	case *Pair:
		bv, ok := b.(*Pair)
		return ok && av == bv
	case *String:
		bv, ok := b.(*String)
		return ok && av == bv
	case *Vector:
		bv, ok := b.(*Vector)
		return ok && av == bv
	default:
		return a == b
	}
}

// equalDatum implements structural equality, recursing into pairs,
// vectors, and strings.
func equalDatum(a, b interface{}) bool {
	switch av := a.(type) {
	case *Pair:
		bv, ok := b.(*Pair)
		if !ok {
			return false
		}
		if av == nil || bv == nil {
			return av == bv
		}
		return equalDatum(av.car, bv.car) && equalDatum(av.cdr, bv.cdr)
	case *String:
		bv, ok := b.(*String)
		return ok && av.String() == bv.String()
	case *Vector:
		bv, ok := b.(*Vector)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !equalDatum(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func installHigherOrder(env *Environment) {
	native(env, "apply", 2, -1, func(args []interface{}) (interface{}, *LispError) {
		proc := args[0]
		fixed := args[1 : len(args)-1]
		last := args[len(args)-1]
		tail, ok := ListToSlice(last)
		if !ok {
			return nil, newRuntimeError(ENOTPROPERLIST, "apply: final argument must be a proper list")
		}
		callArgs := make([]interface{}, 0, len(fixed)+len(tail))
		callArgs = append(callArgs, fixed...)
		callArgs = append(callArgs, tail...)
		return applyProcedure(proc, callArgs)
	})

	native(env, "map", 2, -1, func(args []interface{}) (interface{}, *LispError) {
		proc := args[0]
		lists := make([][]interface{}, len(args)-1)
		n := -1
		for i, l := range args[1:] {
			items, ok := ListToSlice(l)
			if !ok {
				return nil, newRuntimeError(ENOTPROPERLIST, "map: argument is not a proper list")
			}
			if n == -1 {
				n = len(items)
			} else if len(items) != n {
				return nil, newRuntimeError(EARITY, "map: lists are not all the same length")
			}
			lists[i] = items
		}
		results := make([]interface{}, n)
		for i := 0; i < n; i++ {
			callArgs := make([]interface{}, len(lists))
			for j, l := range lists {
				callArgs[j] = l[i]
			}
			v, err := applyProcedure(proc, callArgs)
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return SliceToList(results), nil
	})
}

// applyProcedure invokes a *Native or *Lambda with already-evaluated
// arguments, running a lambda's body to completion (not in tail position:
// apply and map are themselves native procedures, called from inside
// eval's own non-tail argument-evaluation path).
func applyProcedure(proc interface{}, args []interface{}) (interface{}, *LispError) {
	switch p := proc.(type) {
	case *Native:
		if err := p.checkArity(len(args)); err != nil {
			return nil, err
		}
		return p.Fn(args)
	case *Lambda:
		child, err := p.bind(args)
		if err != nil {
			return nil, err
		}
		var result interface{} = theEmptyList
		for _, e := range p.Body {
			v, everr := eval(child, e)
			if everr != nil {
				everr.pushFrame(p.label())
				return nil, everr
			}
			result = v
		}
		return result, nil
	default:
		return nil, newRuntimeError(ENOTAPPLICABLE, stringify(proc)+" is not applicable")
	}
}

func installSymbolsAndStrings(env *Environment) {
	native(env, "symbol->string", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		sym, ok := args[0].(Symbol)
		if !ok {
			return nil, newRuntimeError(EBADTYPE, "symbol->string: not a symbol: "+stringify(args[0]))
		}
		return NewString(string(sym)), nil
	})

	// string->symbol preserves the case of the given string, unlike the
	// reader's lowercasing of symbol tokens read from source text (spec §4.7).
	native(env, "string->symbol", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		s, ok := args[0].(*String)
		if !ok {
			return nil, newRuntimeError(EBADTYPE, "string->symbol: not a string: "+stringify(args[0]))
		}
		return Symbol(s.String()), nil
	})
}

func installVectors(env *Environment) {
	native(env, "vector", 0, -1, func(args []interface{}) (interface{}, *LispError) {
		items := make([]interface{}, len(args))
		copy(items, args)
		return &Vector{Items: items}, nil
	})

	native(env, "make-vector", 1, 2, func(args []interface{}) (interface{}, *LispError) {
		n, err := asInt64("make-vector", args[0])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, newRuntimeError(EBADTYPE, "make-vector: length must be non-negative")
		}
		var fill interface{} = theEmptyList
		if len(args) == 2 {
			fill = args[1]
		}
		items := make([]interface{}, n)
		for i := range items {
			items[i] = fill
		}
		return &Vector{Items: items}, nil
	})

	native(env, "vector-length", 1, 1, func(args []interface{}) (interface{}, *LispError) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, newRuntimeError(EBADTYPE, "vector-length: not a vector: "+stringify(args[0]))
		}
		return int64(len(v.Items)), nil
	})

	native(env, "vector-ref", 2, 2, func(args []interface{}) (interface{}, *LispError) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, newRuntimeError(EBADTYPE, "vector-ref: not a vector: "+stringify(args[0]))
		}
		i, err := asInt64("vector-ref", args[1])
		if err != nil {
			return nil, err
		}
		if i < 0 || int(i) >= len(v.Items) {
			return nil, newRuntimeError(ENUMRANGE, fmt.Sprintf("vector-ref: index %d out of range", i))
		}
		return v.Items[i], nil
	})

	native(env, "vector-set!", 3, 3, func(args []interface{}) (interface{}, *LispError) {
		v, ok := args[0].(*Vector)
		if !ok {
			return nil, newRuntimeError(EBADTYPE, "vector-set!: not a vector: "+stringify(args[0]))
		}
		i, err := asInt64("vector-set!", args[1])
		if err != nil {
			return nil, err
		}
		if i < 0 || int(i) >= len(v.Items) {
			return nil, newRuntimeError(ENUMRANGE, fmt.Sprintf("vector-set!: index %d out of range", i))
		}
		v.Items[i] = args[2]
		return theEmptyList, nil
	})
}
