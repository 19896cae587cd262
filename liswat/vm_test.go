//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evalCase struct {
	name string
	in   string
	want string
}

func runEvalCases(t *testing.T, cases []evalCase) {
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := Interpret(c.in)
			require.Nil(t, err, "Interpret(%q)", c.in)
			assert.Equal(t, c.want, stringify(result))
		})
	}
}

type evalErrorCase struct {
	name string
	in   string
	want string // substring expected in the error message
}

func runEvalErrorCases(t *testing.T, cases []evalErrorCase) {
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Interpret(c.in)
			require.Error(t, err, "Interpret(%q) should have failed", c.in)
			assert.Contains(t, err.ErrorMessage(), c.want)
		})
	}
}

func TestEvalSelfEvaluating(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"integer", "42", "42"},
		{"true", "#t", "#t"},
		{"false", "#f", "#f"},
		{"string", `"hi"`, `"hi"`},
		{"character", `#\a`, `#\a`},
		{"quoted-symbol", "'foo", "foo"},
		{"quoted-list", "'(1 2)", "(1 2)"},
	})
}

func TestEvalIf(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"true-branch", "(if (= 2 2) 1 3)", "1"},
		{"false-branch", "(if #f 1 2)", "2"},
		{"no-else-on-false", "(if #f 1)", "()"},
	})
	runEvalErrorCases(t, []evalErrorCase{
		{"no-operands", "(if)", "if:"},
		{"too-many-operands", "(if (= 2 4) 1 3 5)", "if:"},
	})
}

func TestEvalLetVsLetrec(t *testing.T) {
	runEvalErrorCases(t, []evalErrorCase{
		{"let-does-not-see-own-bindings", "(let ((a 1) (b a)) (+ a b))", "unbound variable"},
	})
	runEvalCases(t, []evalCase{
		{"letrec-sees-own-bindings", "(letrec ((a 1) (b a)) (+ a b))", "2"},
	})
}

func TestEvalLetShapeErrors(t *testing.T) {
	runEvalErrorCases(t, []evalErrorCase{
		{"no-bindings-no-body", "(let)", "let:"},
		{"empty-bindings-no-body", "(let ())", "let:"},
		{"bindings-no-body", "(let ((x 1)))", "let:"},
	})
}

func TestEvalLambdaRestParams(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"dotted-rest", "((lambda (x . y) y) 1 2 3 4 5)", "(2 3 4 5)"},
		{"bare-rest", "((lambda x x) 1 2 3)", "(1 2 3)"},
	})
	runEvalErrorCases(t, []evalErrorCase{
		{"no-params-no-body", "(lambda)", "lambda:"},
		{"zero-body", "((lambda ()))", "lambda:"},
	})
}

func TestEvalApply(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"fixed-plus-list", "(apply + 4 '(1 2 3))", "10"},
	})
	runEvalErrorCases(t, []evalErrorCase{
		{"list-where-number-expected", "(apply + '(4 5 6) '(1 2 3))", "+:"},
		{"no-procedure", "(apply '(1 2 3))", "apply:"},
		{"no-procedure-empty", "(apply '())", "apply:"},
	})
}

func TestEvalMap(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"single-list", "(map (lambda (x) (* x x)) '(1 2 3 4))", "(1 4 9 16)"},
		{"two-lists", "(map + '(1 2 3 4) '(2 3 4 5))", "(3 5 7 9)"},
	})
}

func TestEvalAppend(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"dotted-tail", "(append '(a b) '(c . d))", "(a b c . d)"},
		{"non-list-last-arg", "(append '() 5)", "5"},
		{"no-args", "(append)", "()"},
	})
}

func TestEvalSymbolStringCaseAsymmetry(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"reader-lowercases", `(symbol->string 'Martin)`, `"martin"`},
		{"string->symbol-preserves-case", `(string->symbol "mISSISSIppi")`, "mISSISSIppi"},
	})
}

func TestEvalSetBang(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"mutates-binding", "(let ((x 1)) (set! x 2) x)", "2"},
	})
	runEvalErrorCases(t, []evalErrorCase{
		{"unbound-target", "(set! nonexistent-zyx 1)", "unbound variable"},
	})
}

func TestEvalAndOr(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"and-empty", "(and)", "#t"},
		{"and-all-true", "(and 1 2 3)", "3"},
		{"and-short-circuits", "(and 1 #f 3)", "#f"},
		{"or-empty", "(or)", "#f"},
		{"or-finds-truthy", "(or #f #f 3)", "3"},
		{"or-all-false", "(or #f #f)", "#f"},
	})
}

func TestEvalCond(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"matches-middle-clause", "(cond (#f 1) (#t 2) (else 3))", "2"},
		{"falls-to-else", "(cond (#f 1) (else 3))", "3"},
		{"no-clause-matches", "(cond (#f 1))", "()"},
	})
}

func TestEvalDefineProcedureSugar(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"define-function-shorthand", "(begin (define (sq x) (* x x)) (sq 7))", "49"},
	})
}

func TestEvalTailRecursionDoesNotOverflow(t *testing.T) {
	src := `
	(begin
	  (define (loop n acc)
	    (if (= n 0) acc (loop (- n 1) (+ acc 1))))
	  (loop 100000 0))`
	result, err := Interpret(src)
	require.Nil(t, err)
	assert.Equal(t, "100000", stringify(result))
}

func TestEvalCarCdrErrors(t *testing.T) {
	runEvalErrorCases(t, []evalErrorCase{
		{"car-of-empty-list", "(car '())", "car:"},
		{"cdr-of-non-pair", "(cdr 5)", "cdr:"},
		{"car-arity", "(car '(1 2) '(3 4))", "car:"},
		{"integer-as-operator", "(1 2 3)", "is not applicable"},
		{"quoted-special-form-not-callable", "((quote if) #f 1 2)", "is not applicable"},
	})
}

func TestEvalSymbolPredicateExcludesEmptyList(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"empty-list-is-not-a-symbol", "(symbol? '())", "#f"},
	})
}

func TestEvalPreludeDerivedForms(t *testing.T) {
	runEvalCases(t, []evalCase{
		{"not", "(not #f)", "#t"},
		{"cadr", "(cadr '(1 2 3))", "2"},
		{"reverse", "(reverse '(1 2 3))", "(3 2 1)"},
		{"list-ref", "(list-ref '(a b c) 1)", "b"},
		{"member", "(member 2 '(1 2 3))", "(2 3)"},
		{"assoc", "(assoc 'b '((a . 1) (b . 2)))", "(b . 2)"},
		{"vector-to-list", "(vector->list (vector 1 2 3))", "(1 2 3)"},
		{"list-to-vector", "(vector-length (list->vector '(1 2 3)))", "3"},
	})
}
